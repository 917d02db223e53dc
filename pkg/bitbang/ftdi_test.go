package bitbang

import (
	"bytes"
	"errors"
	"testing"
)

// The FT232R derives its bitbang clock from a 3 MHz reference; the fixed
// rate must divide it exactly so the divisor register holds a whole
// number.
func TestBaudDivisor(t *testing.T) {
	if baudBase%BitbangBaudRate != 0 {
		t.Fatalf("baud rate %d does not divide the %d reference", BitbangBaudRate, baudBase)
	}
	if divisor := baudBase / BitbangBaudRate; divisor != 48 {
		t.Fatalf("divisor = %d, want 48", divisor)
	}
}

// scriptedReads feeds collectBitbangData one canned transfer per call.
// Every chunk already carries its two-byte modem status prefix, as the
// chip would send it.
type scriptedReads struct {
	chunks [][]byte
	errs   []error
	calls  int
}

func (s *scriptedReads) read(p []byte) (int, error) {
	i := s.calls
	s.calls++
	var n int
	if i < len(s.chunks) {
		n = copy(p, s.chunks[i])
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return n, err
}

func TestCollectBitbangData(t *testing.T) {
	status := []byte{0x01, 0x60}

	tests := []struct {
		name     string
		chunks   [][]byte
		errs     []error
		want     []byte
		wantErr  error
		wantCall int
	}{
		{
			name:     "single transfer",
			chunks:   [][]byte{append(status, 0x10, 0x30, 0x10)},
			want:     []byte{0x10, 0x30, 0x10},
			wantCall: 1,
		},
		{
			name: "status-only packet before data",
			chunks: [][]byte{
				status,
				append(status, 0x10, 0x30, 0x10),
			},
			want:     []byte{0x10, 0x30, 0x10},
			wantCall: 2,
		},
		{
			name: "split transfer accumulates",
			chunks: [][]byte{
				append(status, 0x10),
				append(status, 0x30),
				append(status, 0x10),
			},
			want:     []byte{0x10, 0x30, 0x10},
			wantCall: 3,
		},
		{
			name: "over-read truncated to want",
			chunks: [][]byte{
				append(status, 0x10, 0x30),
				append(status, 0x10, 0x55),
			},
			want:     []byte{0x10, 0x30, 0x10},
			wantCall: 2,
		},
		{
			name:     "error returns partial data",
			chunks:   [][]byte{append(status, 0x10), nil},
			errs:     []error{nil, errors.New("pipe stall")},
			want:     []byte{0x10},
			wantErr:  errors.New("pipe stall"),
			wantCall: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &scriptedReads{chunks: tt.chunks, errs: tt.errs}
			got, err := collectBitbangData(s.read, 3)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("data = %X, want %X", got, tt.want)
			}
			if (err == nil) != (tt.wantErr == nil) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if s.calls != tt.wantCall {
				t.Fatalf("read called %d times, want %d", s.calls, tt.wantCall)
			}
		})
	}
}

// A link that only ever flushes status bytes must not spin forever: the
// loop gives up after its attempt bound and hands back what it has, so
// the caller can report a short transfer.
func TestCollectBitbangDataBoundedRetries(t *testing.T) {
	calls := 0
	statusOnly := func(p []byte) (int, error) {
		calls++
		return copy(p, []byte{0x01, 0x60}), nil
	}

	got, err := collectBitbangData(statusOnly, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("data = %X, want none", got)
	}
	if calls != maxReadAttempts {
		t.Fatalf("read called %d times, want %d", calls, maxReadAttempts)
	}
}
