package host

import (
	"fmt"
	"strings"
)

// CaptureCap bounds the retained read-back sequence. The cap is a hard
// contract inherited from the downstream formatting, which assumes a
// bounded pre-sized sequence; bits beyond it are dropped from the tail
// and counted rather than grown into.
const CaptureCap = 256

// Format selects how captured bits are rendered.
type Format int

const (
	// FormatDecimal prints the bit count followed by each bit in capture
	// order.
	FormatDecimal Format = iota
	// FormatHexLE packs bits four at a time, first-captured bit of each
	// group in the nibble's high position.
	FormatHexLE
	// FormatHexBE packs bits four at a time, first-captured bit of each
	// group in the nibble's low position.
	FormatHexBE
)

// Capture accumulates the TDO bits the engine asked to retain (the rmask
// bits), in pulse order.
type Capture struct {
	bits    []byte
	dropped int
}

// Append retains one sampled bit. Beyond CaptureCap further bits are
// dropped and counted; the caller is not signalled.
func (c *Capture) Append(bit int) {
	if len(c.bits) >= CaptureCap {
		c.dropped++
		return
	}
	var b byte
	if bit != 0 {
		b = 1
	}
	c.bits = append(c.bits, b)
}

// Len returns the number of retained bits.
func (c *Capture) Len() int { return len(c.bits) }

// Dropped returns how many bits were discarded past the cap.
func (c *Capture) Dropped() int { return c.dropped }

// Bits returns a copy of the retained bits in capture order.
func (c *Capture) Bits() []byte {
	out := make([]byte, len(c.bits))
	copy(out, c.bits)
	return out
}

// Padded reports whether hex rendering had to zero-pad a trailing group
// smaller than four bits.
func (c *Capture) Padded() bool { return len(c.bits)%4 != 0 }

// Render formats the captured sequence as one line, without a trailing
// newline. Hex modes zero-pad a trailing partial group.
func (c *Capture) Render(f Format) string {
	var sb strings.Builder
	switch f {
	case FormatHexLE, FormatHexBE:
		sb.WriteString("0x")
		for i := 0; i < len(c.bits); i += 4 {
			sb.WriteByte(hexDigit(nibbleAt(c.bits, i, f)))
		}
	default:
		fmt.Fprintf(&sb, "%d rmask bits:", len(c.bits))
		for _, b := range c.bits {
			fmt.Fprintf(&sb, " %d", b)
		}
	}
	return sb.String()
}

// nibbleAt packs the 4-bit group starting at i. Little-endian places the
// earliest-captured bit of the group in the high position of the nibble,
// big-endian in the low position. Missing bits of a partial group read
// as zero.
func nibbleAt(bits []byte, i int, f Format) byte {
	var v byte
	for j := 0; j < 4; j++ {
		var b byte
		if i+j < len(bits) {
			b = bits[i+j]
		}
		if f == FormatHexLE {
			v |= b << (3 - j)
		} else {
			v |= b << j
		}
	}
	return v
}

func hexDigit(v byte) byte {
	const digits = "0123456789abcdef"
	return digits[v&0xF]
}
