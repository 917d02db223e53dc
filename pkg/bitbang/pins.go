package bitbang

// FT232R bitbang bit assignments for the JTAG signal lines. These follow
// the FT232RL/FT245RL pinout used by the classic xsvftool wiring:
//
//	Bit 3: CTS pin  - TDI (output)
//	Bit 5: DSR pin  - TCK (output)
//	Bit 6: DCD pin  - TDO (input)
//	Bit 7: RI pin   - TMS (output)
const (
	MaskTDI = 1 << 3
	MaskTCK = 1 << 5
	MaskTDO = 1 << 6
	MaskTMS = 1 << 7

	// DirMask marks the output pins for synchronous bitbang mode.
	// TDO and all unused bits stay inputs and are never driven.
	DirMask = MaskTMS | MaskTDI | MaskTCK
)

// PinRegister models the emulated 8-bit output register of the bitbang
// port. TMS and TDI persist across pulses; TCK is toggled transiently by
// the transport's pulse routine and is always presented low here.
type PinRegister struct {
	reg byte
}

// SetTMS drives the mode-select line for subsequent pulses.
func (p *PinRegister) SetTMS(level bool) {
	if level {
		p.reg |= MaskTMS
	} else {
		p.reg &^= MaskTMS
	}
}

// SetTDI drives the data-in line for subsequent pulses.
func (p *PinRegister) SetTDI(level bool) {
	if level {
		p.reg |= MaskTDI
	} else {
		p.reg &^= MaskTDI
	}
}

// OutputByte returns the register value with TCK forced low, the form the
// pulse routine uses as its base phase.
func (p *PinRegister) OutputByte() byte {
	return p.reg &^ MaskTCK
}
