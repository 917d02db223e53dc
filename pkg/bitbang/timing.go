package bitbang

import "time"

// Compensator turns a requested (delay, clock count) pair into actual
// pulses plus a corrected residual sleep. Test-vector formats specify
// total elapsed time including clocking, so the wall-clock time consumed
// by the pulse loop is subtracted from the requested delay before the
// remainder is slept off.
type Compensator struct {
	// SetTMS drives the mode-select line before any clock activity.
	SetTMS func(level bool)

	// Pulse issues one clock pulse. Errors are swallowed here; the
	// transport reports short transfers on its own and a delay loop has
	// no better recourse than to keep counting.
	Pulse func() error

	now   func() time.Time
	sleep func(time.Duration)
}

// NewCompensator builds a wall-clock compensator around the given pin and
// pulse callbacks.
func NewCompensator(setTMS func(bool), pulse func() error) *Compensator {
	return &Compensator{
		SetTMS: setTMS,
		Pulse:  pulse,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Delay issues exactly numTCK pulses with TMS held at the given level,
// then sleeps for whatever remains of the requested microsecond delay
// after subtracting the time the pulses took. With numTCK zero no pulse
// is issued and the full delay is slept. The residual is clamped at zero.
func (c *Compensator) Delay(usecs int64, tms bool, numTCK int64) {
	if numTCK > 0 {
		start := c.now()
		c.SetTMS(tms)
		for i := int64(0); i < numTCK; i++ {
			_ = c.Pulse()
		}
		usecs -= c.now().Sub(start).Microseconds()
	}
	if usecs > 0 {
		c.sleep(time.Duration(usecs) * time.Microsecond)
	}
}
