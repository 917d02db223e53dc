package bitbang

import "testing"

// Every pulse must present the clock low, high, low, with no other bit
// differing between the first and second phase and the first and third
// phases identical.
func TestPulsePhaseShape(t *testing.T) {
	sim := NewSimTransport()
	var p PinRegister

	drives := []struct{ tms, tdi bool }{
		{false, false}, {true, false}, {true, true}, {false, true},
	}
	for _, d := range drives {
		p.SetTMS(d.tms)
		p.SetTDI(d.tdi)
		if _, err := sim.Pulse(p.OutputByte()); err != nil {
			t.Fatalf("Pulse returned error: %v", err)
		}
	}

	for i, phases := range sim.Pulses() {
		if phases[0]&MaskTCK != 0 || phases[2]&MaskTCK != 0 {
			t.Fatalf("pulse %d: clock not low in phase 1/3: %08b %08b", i, phases[0], phases[2])
		}
		if phases[1] != phases[0]|MaskTCK {
			t.Fatalf("pulse %d: phase 2 differs beyond the clock bit: %08b vs %08b", i, phases[1], phases[0])
		}
		if phases[0] != phases[2] {
			t.Fatalf("pulse %d: phase 1 and 3 differ: %08b vs %08b", i, phases[0], phases[2])
		}
	}
}

func TestSimTransportEchoesTDI(t *testing.T) {
	sim := NewSimTransport()
	var p PinRegister

	p.SetTDI(true)
	bit, err := sim.Pulse(p.OutputByte())
	if err != nil || bit != 1 {
		t.Fatalf("Pulse = %d, %v; want 1, nil", bit, err)
	}

	p.SetTDI(false)
	bit, err = sim.Pulse(p.OutputByte())
	if err != nil || bit != 0 {
		t.Fatalf("Pulse = %d, %v; want 0, nil", bit, err)
	}
}

func TestSimTransportHook(t *testing.T) {
	sim := NewSimTransport()
	sim.OnPulse = func(phases [3]byte) int {
		if phases[1]&MaskTCK == 0 {
			t.Fatalf("hook phase 2 missing clock: %08b", phases[1])
		}
		return 1
	}

	bit, err := sim.Pulse(0)
	if err != nil || bit != 1 {
		t.Fatalf("Pulse = %d, %v; want scripted 1, nil", bit, err)
	}
}

func TestSimTransportOpenClose(t *testing.T) {
	sim := NewSimTransport()
	if err := sim.Open(); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if !sim.Opened() {
		t.Fatalf("transport not marked open")
	}
	sim.Close()
	sim.Close()
	if sim.Opened() {
		t.Fatalf("transport still open after Close")
	}
	if sim.CloseCount() != 2 {
		t.Fatalf("CloseCount = %d, want 2", sim.CloseCount())
	}
}
