package bitbang

import "testing"

func TestPinRegisterPersistence(t *testing.T) {
	var p PinRegister

	p.SetTMS(true)
	if p.OutputByte()&MaskTMS == 0 {
		t.Fatalf("TMS not set: %08b", p.OutputByte())
	}

	p.SetTDI(true)
	if p.OutputByte()&MaskTDI == 0 {
		t.Fatalf("TDI not set: %08b", p.OutputByte())
	}
	if p.OutputByte()&MaskTMS == 0 {
		t.Fatalf("TMS lost after SetTDI: %08b", p.OutputByte())
	}

	p.SetTMS(false)
	if p.OutputByte()&MaskTMS != 0 {
		t.Fatalf("TMS not cleared: %08b", p.OutputByte())
	}
	if p.OutputByte()&MaskTDI == 0 {
		t.Fatalf("TDI lost after SetTMS(false): %08b", p.OutputByte())
	}
}

func TestPinRegisterNeverDrivesInputs(t *testing.T) {
	var p PinRegister
	p.SetTMS(true)
	p.SetTDI(true)

	out := p.OutputByte()
	if out&^DirMask != 0 {
		t.Fatalf("non-output bits driven: %08b", out)
	}
	if out&MaskTDO != 0 {
		t.Fatalf("TDO asserted by output register: %08b", out)
	}
}

func TestOutputByteForcesTCKLow(t *testing.T) {
	var p PinRegister
	p.SetTMS(true)
	if p.OutputByte()&MaskTCK != 0 {
		t.Fatalf("TCK high in output byte: %08b", p.OutputByte())
	}
}
