package engine

import "testing"

type nopPlayer struct{}

func (nopPlayer) Play(h Host, mode Mode) error { return nil }

func TestRegistration(t *testing.T) {
	Register(nil)
	if _, err := Registered(); err == nil {
		t.Fatalf("expected error with no engine registered")
	}

	Register(nopPlayer{})
	p, err := Registered()
	if err != nil {
		t.Fatalf("Registered returned error: %v", err)
	}
	if err := p.Play(nil, ModeScan); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
}

func TestModeStrings(t *testing.T) {
	cases := map[Mode]string{
		ModeSVF:  "svf",
		ModeXSVF: "xsvf",
		ModeScan: "scan",
	}
	for mode, want := range cases {
		if mode.String() != want {
			t.Fatalf("Mode(%d).String() = %q, want %q", int(mode), mode.String(), want)
		}
	}
}

func TestMemClassNames(t *testing.T) {
	if MemSVFCommandBuf.String() != "svf_commandbuf" {
		t.Fatalf("name = %q", MemSVFCommandBuf.String())
	}
	if MemClass(200).String() != "mem_200" {
		t.Fatalf("out-of-range name = %q", MemClass(200).String())
	}
}
