package bitbang

import "errors"

// Transport drives the synchronous bitbang port. Exactly one pulse is in
// flight at a time: each Pulse is a single paired write+read exchange and
// exchanges are never reordered or pipelined, otherwise the sampled TDO
// would belong to the wrong clock edge.
type Transport interface {
	// Open locates and configures the hardware link.
	Open() error

	// Pulse clocks the port once. The argument is the output register
	// with TCK low; the transport writes it with TCK low, high, then low
	// again and returns the TDO bit sampled on the third exchange (after
	// the rising edge, before the falling edge).
	Pulse(out byte) (int, error)

	// Close resets the port and releases the link. It is idempotent and
	// never fails the caller; problems are logged, not surfaced.
	Close()
}

var (
	// ErrDeviceNotFound means no device with the expected VID/PID is attached.
	ErrDeviceNotFound = errors.New("bitbang: device not found")

	// ErrConfigFailed means the device rejected a configuration step.
	ErrConfigFailed = errors.New("bitbang: device configuration failed")

	// ErrShortTransfer means a pulse wrote or read fewer than the three
	// expected bytes. The pulse still returns whatever TDO data was
	// obtained; callers report and continue.
	ErrShortTransfer = errors.New("bitbang: short bitbang transfer")
)
