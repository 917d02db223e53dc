// Package engine defines the contract between this tool and the external
// SVF/XSVF sequencing engine. The engine owns the playback loop, the test
// vector grammars and the TAP state machine; it drives the hardware only
// through the Host capability table and never inspects its internals.
package engine

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/xsvfbang/pkg/tap"
)

// Mode selects what the engine should play.
type Mode int

const (
	// ModeSVF replays an SVF test vector stream.
	ModeSVF Mode = iota
	// ModeXSVF replays a binary XSVF stream.
	ModeXSVF
	// ModeScan enumerates the devices in the chain; device IDs surface
	// through Host.ReportDevice.
	ModeScan
)

func (m Mode) String() string {
	switch m {
	case ModeSVF:
		return "svf"
	case ModeXSVF:
		return "xsvf"
	case ModeScan:
		return "scan"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ErrVerification signals that a sampled TDO bit differed from the value
// the engine expected. It is distinct from the sampled bit itself, so a
// read of 0 is never conflated with a failed comparison. The engine
// decides whether a mismatch aborts the sequence.
var ErrVerification = errors.New("engine: tdo verification mismatch")

// Host is the capability table the engine calls into. All operations are
// synchronous and single-threaded; the host never calls back into the
// engine.
type Host interface {
	// Setup opens the hardware link. A setup failure is fatal to the
	// session; no pulses may be attempted after it.
	Setup() error

	// Shutdown closes the hardware link, leaving the pins in a
	// non-driving state. Repeated shutdowns without a setup are no-ops.
	Shutdown() error

	// NextByte returns the next byte of the test vector stream, or
	// io.EOF at end of input.
	NextByte() (byte, error)

	// UDelay waits for the requested number of microseconds, issuing
	// numTCK clock pulses with TMS held at the given level first. The
	// time consumed by the pulses counts against the requested delay.
	UDelay(usecs int64, tms bool, numTCK int64)

	// PulseTCK sets TMS, optionally sets TDI (tdi >= 0), issues one
	// clock pulse and returns the sampled TDO bit. When rmask is set the
	// sampled bit is retained in the capture buffer. When tdo >= 0 the
	// sample is compared against it and a differing bit is reported as
	// ErrVerification alongside the sample. The sync flag is accepted
	// for engine compatibility; every pulse on this transport is
	// already synchronous.
	PulseTCK(tms bool, tdi, tdo int, rmask, sync bool) (int, error)

	// PulseSCK requests a free-running clock pulse. Synchronous bitbang
	// cannot pulse a clock outside a read/write cycle, so the request is
	// warned about and ignored.
	PulseSCK()

	// SetTRST drives the test reset line. No such line exists on this
	// transport; the request is warned about and ignored.
	SetTRST(level int)

	// SetFrequency applies a TCK frequency hint. The bitbang rate is
	// fixed by the baud divisor, so the hint is warned about and
	// ignored, never failed.
	SetFrequency(hz int) error

	// ReportTAPState mirrors the engine's TAP state for diagnostics.
	ReportTAPState(state tap.State)

	// ReportDevice announces a device discovered in the chain.
	ReportDevice(id uint32)

	// ReportStatus forwards engine progress text.
	ReportStatus(message string)

	// ReportError forwards an engine error with its origin location.
	ReportError(file string, line int, message string)

	// Realloc resizes an engine working buffer of the given memory
	// class, recording the high-water mark per class. It never fails.
	Realloc(buf []byte, size int, class MemClass) []byte
}

// Player is the sequencing engine's entry point.
type Player interface {
	Play(h Host, mode Mode) error
}

var registered Player

// Register installs the sequencing engine implementation. It is intended
// to be called from the engine package's init or from main.
func Register(p Player) {
	registered = p
}

// Registered returns the installed engine, or an error if none has been
// linked into the binary.
func Registered() (Player, error) {
	if registered == nil {
		return nil, errors.New("engine: no sequencing engine registered")
	}
	return registered, nil
}
