// Package idcode decodes IEEE 1149.1 JTAG IDCODE values into their
// revision, part number and JEP106 manufacturer fields.
package idcode

import "fmt"

// IDCode is a parsed 32-bit IDCODE.
type IDCode struct {
	Raw              uint32
	Version          uint8  // bits [31:28]
	PartNumber       uint16 // bits [27:12]
	ManufacturerCode uint16 // bits [11:1], JEP106
	HasIDCode        bool   // bit 0 must be 1 for a valid IDCODE
}

// Parse splits a raw IDCODE into its component bit fields.
func Parse(raw uint32) IDCode {
	return IDCode{
		Raw:              raw,
		Version:          uint8((raw >> 28) & 0xF),
		PartNumber:       uint16((raw >> 12) & 0xFFFF),
		ManufacturerCode: uint16((raw >> 1) & 0x7FF),
		HasIDCode:        raw&0x1 == 0x1,
	}
}

// String renders the decoded fields in the classic xsvftool layout, with
// the manufacturer name appended when the JEP106 code is known.
func (id IDCode) String() string {
	s := fmt.Sprintf("idcode=0x%08x, revision=0x%01x, part=0x%04x, manufacturer=0x%03x",
		id.Raw, id.Version, id.PartNumber, id.ManufacturerCode)
	if name, ok := ManufacturerName(id.ManufacturerCode); ok {
		s += fmt.Sprintf(" (%s)", name)
	}
	return s
}
