package bitbang

// PulseHook lets tests script the TDO line. It receives the three phase
// bytes of a pulse and returns the bit sampled on the third exchange.
type PulseHook func(phases [3]byte) int

// SimTransport is an in-memory Transport for running without hardware.
// It records every pulse for inspection and either delegates TDO to
// OnPulse or echoes TDI back, which keeps scripted runs predictable.
type SimTransport struct {
	OnPulse PulseHook

	// OpenErr, when set, is returned by Open to exercise setup failures.
	OpenErr error

	opened bool
	closes int
	pulses [][3]byte
}

// NewSimTransport constructs a simulator transport.
func NewSimTransport() *SimTransport {
	return &SimTransport{}
}

func (s *SimTransport) Open() error {
	if s.OpenErr != nil {
		return s.OpenErr
	}
	s.opened = true
	return nil
}

func (s *SimTransport) Pulse(out byte) (int, error) {
	phases := [3]byte{out &^ MaskTCK, out | MaskTCK, out &^ MaskTCK}
	s.pulses = append(s.pulses, phases)

	if s.OnPulse != nil {
		return s.OnPulse(phases), nil
	}
	if out&MaskTDI != 0 {
		return 1, nil
	}
	return 0, nil
}

func (s *SimTransport) Close() {
	s.opened = false
	s.closes++
}

// Opened reports whether the transport is currently open.
func (s *SimTransport) Opened() bool { return s.opened }

// CloseCount reports how many times Close has been called.
func (s *SimTransport) CloseCount() int { return s.closes }

// Pulses returns a copy of all recorded pulse phase triples.
func (s *SimTransport) Pulses() [][3]byte {
	out := make([][3]byte, len(s.pulses))
	copy(out, s.pulses)
	return out
}
