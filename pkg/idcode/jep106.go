package idcode

// jep106 maps the JEP106 manufacturer codes most often seen in JTAG
// chains to vendor names. Unknown codes are reported numerically.
var jep106 = map[uint16]string{
	0x001: "AMD",
	0x004: "Fujitsu",
	0x007: "Hitachi",
	0x009: "Intel",
	0x015: "Philips Semiconductors",
	0x017: "Texas Instruments",
	0x018: "Toshiba",
	0x01F: "Atmel",
	0x020: "STMicroelectronics",
	0x025: "Analog Devices",
	0x02E: "Cypress",
	0x049: "Xilinx",
	0x06E: "Altera",
	0x070: "Qualcomm",
	0x097: "Microsemi (Actel)",
	0x0BF: "Broadcom",
	0x15B: "Infineon",
	0x21C: "Lattice Semiconductor",
	0x23B: "ARM",
	0x29A: "Nordic Semiconductor",
	0x426: "SiFive",
	0x493: "Raspberry Pi (RP2040)",
}

// ManufacturerName resolves a JEP106 code to a vendor name.
func ManufacturerName(code uint16) (string, bool) {
	name, ok := jep106[code]
	return name, ok
}
