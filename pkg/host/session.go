// Package host implements the capability adapter that the external
// sequencing engine drives: the emulated pin register, the three-phase
// bitbang pulse protocol, delay compensation, read-back capture and
// allocator profiling are all wired together here behind engine.Host.
package host

import (
	"fmt"
	"io"
	"os"
)

// Session carries the mutable state of one playback run: the input byte
// stream, verbosity, the pulse/bit counters, the capture buffer and the
// allocator profile. Exactly one session is active at a time; nothing in
// it is safe for concurrent use and nothing needs to be.
type Session struct {
	In      io.ByteReader
	Verbose int

	// Diag receives verbosity-gated diagnostics, Out the capture and
	// device reports. They default to stderr and stdout.
	Diag io.Writer
	Out  io.Writer

	ClockCount int64 // total TCK pulses issued
	TDIBits    int64 // significant TDI bits driven
	TDOBits    int64 // significant TDO bits compared

	Capture Capture
	Profile ReallocProfile
}

// NewSession builds a session reading test vectors from in.
func NewSession(in io.ByteReader, verbose int) *Session {
	return &Session{
		In:      in,
		Verbose: verbose,
		Diag:    os.Stderr,
		Out:     os.Stdout,
	}
}

// logf writes a diagnostic line when the session verbosity is at least
// the given level.
func (s *Session) logf(level int, format string, args ...any) {
	if s.Verbose >= level {
		fmt.Fprintf(s.Diag, format+"\n", args...)
	}
}

// warnf writes an operator-visible warning regardless of verbosity.
func (s *Session) warnf(format string, args ...any) {
	fmt.Fprintf(s.Diag, "WARNING: "+format+"\n", args...)
}

// Summary prints the run totals and verdict at verbosity >= 1.
func (s *Session) Summary(failed bool) {
	if s.Verbose < 1 {
		return
	}
	fmt.Fprintf(s.Diag, "Total number of clock cycles: %d\n", s.ClockCount)
	fmt.Fprintf(s.Diag, "Number of significant TDI bits: %d\n", s.TDIBits)
	fmt.Fprintf(s.Diag, "Number of significant TDO bits: %d\n", s.TDOBits)
	if failed {
		fmt.Fprintf(s.Diag, "Finished with errors!\n")
	} else {
		fmt.Fprintf(s.Diag, "Finished without errors.\n")
	}
	if n := s.Capture.Dropped(); n > 0 {
		s.warnf("%d captured bits beyond the %d-bit buffer were dropped", n, CaptureCap)
	}
}
