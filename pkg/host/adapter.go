package host

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/xsvfbang/pkg/bitbang"
	"github.com/OpenTraceLab/xsvfbang/pkg/engine"
	"github.com/OpenTraceLab/xsvfbang/pkg/idcode"
	"github.com/OpenTraceLab/xsvfbang/pkg/tap"
)

// Adapter implements engine.Host over a bitbang transport. It owns the
// emulated pin register and the delay compensator and records counters
// and captures into the session. The adapter holds no playback state of
// its own; the TAP machine lives in the engine and is only mirrored here
// for diagnostics.
type Adapter struct {
	sess *Session
	pins bitbang.PinRegister
	tr   bitbang.Transport
	comp *bitbang.Compensator

	opened bool
}

var _ engine.Host = (*Adapter)(nil)

// NewAdapter wires a session to a transport.
func NewAdapter(sess *Session, tr bitbang.Transport) *Adapter {
	a := &Adapter{sess: sess, tr: tr}
	a.comp = bitbang.NewCompensator(a.pins.SetTMS, a.pulse)
	return a
}

// pulse issues one clock pulse from the current register state. Short
// transfers are warned about and swallowed so a single flaky exchange
// does not kill the run; the transport already returned its best-effort
// sample.
func (a *Adapter) pulse() error {
	_, err := a.tr.Pulse(a.pins.OutputByte())
	if err != nil && errors.Is(err, bitbang.ErrShortTransfer) {
		a.sess.warnf("%v", err)
		return nil
	}
	return err
}

// Setup opens the transport.
func (a *Adapter) Setup() error {
	a.sess.logf(2, "[SETUP]")
	if err := a.tr.Open(); err != nil {
		return fmt.Errorf("host: setup: %w", err)
	}
	a.opened = true
	return nil
}

// Shutdown closes the transport so the pins stop driving. Calling it
// again, or without a prior Setup, is a no-op.
func (a *Adapter) Shutdown() error {
	a.sess.logf(2, "[SHUTDOWN]")
	if !a.opened {
		return nil
	}
	a.tr.Close()
	a.opened = false
	return nil
}

// NextByte pulls the next test vector byte from the session stream.
func (a *Adapter) NextByte() (byte, error) {
	return a.sess.In.ReadByte()
}

// UDelay satisfies the engine's timed-delay callback: numTCK pulses with
// TMS held, then the residual sleep.
func (a *Adapter) UDelay(usecs int64, tms bool, numTCK int64) {
	a.sess.logf(3, "[DELAY:%d, TMS:%v, NUM_TCK:%d]", usecs, tms, numTCK)
	a.comp.Delay(usecs, tms, numTCK)
	a.sess.ClockCount += numTCK
}

// PulseTCK performs one clocked-bit exchange as described on engine.Host.
func (a *Adapter) PulseTCK(tms bool, tdi, tdo int, rmask, sync bool) (int, error) {
	a.pins.SetTMS(tms)
	if tdi >= 0 {
		a.sess.TDIBits++
		a.pins.SetTDI(tdi != 0)
	}

	line, err := a.tr.Pulse(a.pins.OutputByte())
	if err != nil {
		if !errors.Is(err, bitbang.ErrShortTransfer) {
			return line, err
		}
		a.sess.warnf("%v", err)
	}

	if rmask {
		a.sess.Capture.Append(line)
	}

	var verr error
	if tdo >= 0 && line >= 0 {
		a.sess.TDOBits++
		if tdo != line {
			verr = fmt.Errorf("%w: expected %d, sampled %d", engine.ErrVerification, tdo, line)
		}
	}

	a.sess.logf(4, "[TMS:%v, TDI:%d, TDO_ARG:%d, TDO_LINE:%d, RMASK:%v]", tms, tdi, tdo, line, rmask)
	a.sess.ClockCount++
	return line, verr
}

// PulseSCK warns and returns: synchronous bitbang cannot run the clock
// outside a write/read exchange.
func (a *Adapter) PulseSCK() {
	a.sess.warnf("pulsing SCK ignored (no free-running clock in synchronous bitbang)")
}

// SetTRST warns and returns: the wiring has no test reset line.
func (a *Adapter) SetTRST(level int) {
	a.sess.warnf("setting TRST to %d ignored (no reset line on this transport)", level)
}

// SetFrequency warns and returns: the TCK rate is fixed by the baud
// divisor. Accepting the hint keeps frequency-bearing vectors playable.
func (a *Adapter) SetFrequency(hz int) error {
	a.sess.warnf("setting JTAG clock frequency to %d ignored (rate fixed at %d baud x16)",
		hz, bitbang.BitbangBaudRate)
	return nil
}

// ReportTAPState mirrors the engine's state at verbosity >= 3.
func (a *Adapter) ReportTAPState(state tap.State) {
	a.sess.logf(3, "[%s]", state)
}

// ReportDevice decodes and prints a chain member's IDCODE.
func (a *Adapter) ReportDevice(id uint32) {
	fmt.Fprintln(a.sess.Out, idcode.Parse(id))
}

// ReportStatus forwards engine progress text at verbosity >= 2.
func (a *Adapter) ReportStatus(message string) {
	a.sess.logf(2, "[STATUS] %s", message)
}

// ReportError forwards an engine error unconditionally.
func (a *Adapter) ReportError(file string, line int, message string) {
	fmt.Fprintf(a.sess.Diag, "[%s:%d] %s\n", file, line, message)
}

// Realloc resizes an engine buffer and records the class high-water mark.
func (a *Adapter) Realloc(buf []byte, size int, class engine.MemClass) []byte {
	a.sess.Profile.Record(class, size)
	a.sess.logf(3, "[REALLOC:%s:%d]", class, size)
	if size <= cap(buf) {
		return buf[:size]
	}
	next := make([]byte, size)
	copy(next, buf)
	return next
}
