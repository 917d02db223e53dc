package bitbang

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gousb"
)

const (
	// FT232R USB identifiers
	VendorIDFTDI    = 0x0403
	ProductIDFT232R = 0x6001

	// FTDI SIO vendor control requests
	sioReset           = 0x00
	sioSetBaudrate     = 0x03
	sioSetLatencyTimer = 0x09
	sioSetBitmode      = 0x0B

	sioResetSIO = 0

	bitmodeReset    = 0x00
	bitmodeSyncBang = 0x04

	// The chip clocks bitbang data at 16x the configured baud rate and a
	// write+read cycle costs about six of those clocks, so 62500 baud
	// gives a usable TCK rate.
	BitbangBaudRate = 62500

	// FT232R baud divisors are computed against a 3 MHz reference.
	baudBase = 3_000_000

	// Minimum latency timer, so read data is flushed to the bus as soon
	// as possible.
	latencyTimerMS = 1

	// Every IN transfer starts with two modem status bytes that must be
	// stripped before the bitbang data.
	modemStatusLen = 2
)

// FTDITransport implements Transport over an FT232R in synchronous
// bitbang mode, using raw vendor control requests and bulk transfers.
type FTDITransport struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface

	epOut *gousb.OutEndpoint
	epIn  *gousb.InEndpoint

	// Diag receives non-fatal close/reset complaints. Defaults to stderr.
	Diag io.Writer
}

// NewFTDITransport returns an unopened FT232R transport.
func NewFTDITransport() *FTDITransport {
	return &FTDITransport{Diag: os.Stderr}
}

// Open finds the first attached FT232R, configures the baud rate, latency
// timer and synchronous bitbang mode, and claims the bulk endpoints.
func (t *FTDITransport) Open() error {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(VendorIDFTDI), gousb.ID(ProductIDFT232R))
	if err != nil {
		ctx.Close()
		return fmt.Errorf("%w: %v", ErrDeviceNotFound, err)
	}
	if dev == nil {
		ctx.Close()
		return fmt.Errorf("%w (VID:%04X PID:%04X)", ErrDeviceNotFound, VendorIDFTDI, ProductIDFT232R)
	}

	// Detach ftdi_sio if the kernel grabbed the port. Not fatal on
	// platforms without kernel drivers.
	_ = dev.SetAutoDetach(true)

	t.ctx = ctx
	t.dev = dev

	if err := t.configure(); err != nil {
		t.Close()
		return err
	}
	if err := t.claimEndpoints(); err != nil {
		t.Close()
		return err
	}
	return nil
}

// configure issues the SIO control requests that put the chip into
// synchronous bitbang mode at the fixed base rate.
func (t *FTDITransport) configure() error {
	if err := t.control(sioReset, sioResetSIO, 0); err != nil {
		return fmt.Errorf("%w: reset: %v", ErrConfigFailed, err)
	}

	divisor := uint16(baudBase / BitbangBaudRate)
	if err := t.control(sioSetBaudrate, divisor, 0); err != nil {
		return fmt.Errorf("%w: set baudrate: %v", ErrConfigFailed, err)
	}

	if err := t.control(sioSetLatencyTimer, latencyTimerMS, 0); err != nil {
		return fmt.Errorf("%w: set latency timer: %v", ErrConfigFailed, err)
	}

	mode := uint16(bitmodeSyncBang)<<8 | uint16(DirMask)
	if err := t.control(sioSetBitmode, mode, 0); err != nil {
		return fmt.Errorf("%w: set bitmode: %v", ErrConfigFailed, err)
	}
	return nil
}

func (t *FTDITransport) control(request uint8, value, index uint16) error {
	rType := uint8(gousb.ControlOut | gousb.ControlVendor | gousb.ControlDevice)
	_, err := t.dev.Control(rType, request, value, index, nil)
	return err
}

// claimEndpoints claims interface 0 and opens its bulk IN/OUT pair.
func (t *FTDITransport) claimEndpoints() error {
	cfg, err := t.dev.Config(1)
	if err != nil {
		return fmt.Errorf("%w: get config: %v", ErrConfigFailed, err)
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		return fmt.Errorf("%w: claim interface: %v", ErrConfigFailed, err)
	}
	t.intf = intf

	var inNum, outNum int
	for _, ep := range intf.Setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch ep.Direction {
		case gousb.EndpointDirectionIn:
			inNum = ep.Number
		case gousb.EndpointDirectionOut:
			outNum = ep.Number
		}
	}
	if inNum == 0 || outNum == 0 {
		return fmt.Errorf("%w: bulk endpoints not found", ErrConfigFailed)
	}

	epOut, err := t.intf.OutEndpoint(outNum)
	if err != nil {
		return fmt.Errorf("%w: open OUT endpoint: %v", ErrConfigFailed, err)
	}
	t.epOut = epOut

	epIn, err := t.intf.InEndpoint(inNum)
	if err != nil {
		return fmt.Errorf("%w: open IN endpoint: %v", ErrConfigFailed, err)
	}
	t.epIn = epIn

	return nil
}

// Pulse writes the three-phase clock pattern and returns the TDO bit from
// the third read-back byte. In synchronous bitbang mode the chip samples
// the input lines before applying each written byte, so the third byte
// carries TDO as it stood after the rising edge of TCK.
func (t *FTDITransport) Pulse(out byte) (int, error) {
	phases := [3]byte{out &^ MaskTCK, out | MaskTCK, out &^ MaskTCK}

	n, werr := t.epOut.Write(phases[:])
	data, rerr := t.readData(3)

	bit := 0
	if len(data) > 0 && data[len(data)-1]&MaskTDO != 0 {
		bit = 1
	}
	if werr != nil || rerr != nil || n != 3 || len(data) != 3 {
		return bit, fmt.Errorf("%w: wrote %d, read %d (write err %v, read err %v)",
			ErrShortTransfer, n, len(data), werr, rerr)
	}
	return bit, nil
}

// readData collects want bitbang bytes from the IN endpoint.
func (t *FTDITransport) readData(want int) ([]byte, error) {
	return collectBitbangData(t.epIn.Read, want)
}

// maxReadAttempts bounds the status-only retry loop so a dead link
// cannot spin forever.
const maxReadAttempts = 8

// collectBitbangData accumulates want bitbang bytes from a transfer
// function whose every result carries a two-byte modem status prefix.
// The latency timer may flush status-only packets before the bitbang
// data arrives, and a transfer may split the data, so reads repeat until
// enough bytes are in hand or the attempt bound is hit. On a transfer
// error the data gathered so far is still returned.
func collectBitbangData(read func([]byte) (int, error), want int) ([]byte, error) {
	data := make([]byte, 0, want)
	buf := make([]byte, want+modemStatusLen)

	for attempts := 0; len(data) < want && attempts < maxReadAttempts; attempts++ {
		n, err := read(buf)
		if n > modemStatusLen {
			data = append(data, buf[modemStatusLen:n]...)
		}
		if err != nil {
			return data, err
		}
	}
	if len(data) > want {
		data = data[:want]
	}
	return data, nil
}

// Close resets the bitbang mode and releases the USB handle. Safe to call
// repeatedly and without a successful Open; errors are reported to Diag
// so a failing teardown cannot mask the original failure.
func (t *FTDITransport) Close() {
	if t.dev != nil {
		if err := t.control(sioSetBitmode, bitmodeReset<<8|0, 0); err != nil {
			fmt.Fprintf(t.diag(), "bitbang: bitmode reset failed: %v\n", err)
		}
	}
	if t.intf != nil {
		t.intf.Close()
		t.intf = nil
	}
	t.epOut = nil
	t.epIn = nil
	if t.dev != nil {
		if err := t.dev.Close(); err != nil {
			fmt.Fprintf(t.diag(), "bitbang: device close failed: %v\n", err)
		}
		t.dev = nil
	}
	if t.ctx != nil {
		if err := t.ctx.Close(); err != nil {
			fmt.Fprintf(t.diag(), "bitbang: context close failed: %v\n", err)
		}
		t.ctx = nil
	}
}

func (t *FTDITransport) diag() io.Writer {
	if t.Diag != nil {
		return t.Diag
	}
	return os.Stderr
}
