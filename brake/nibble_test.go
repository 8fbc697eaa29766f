package brake

import (
	"errors"
	"testing"
)

func TestHexChar(t *testing.T) {
	const digits = "0123456789ABCDEF"
	for n := byte(0); n < 16; n++ {
		c, err := HexChar(n)
		if err != nil {
			t.Fatalf("HexChar(%d) error: %v", n, err)
		}
		if c != digits[n] {
			t.Errorf("HexChar(%d) = %q, want %q", n, c, digits[n])
		}
	}

	for _, n := range []byte{16, 0x7f, 0xff} {
		if _, err := HexChar(n); !errors.Is(err, ErrInvalidNibble) {
			t.Errorf("HexChar(%d) error = %v, want ErrInvalidNibble", n, err)
		}
	}
}

func TestHexNibble(t *testing.T) {
	tests := []struct {
		c       byte
		want    byte
		wantErr bool
	}{
		{'0', 0, false},
		{'9', 9, false},
		{'A', 10, false},
		{'F', 15, false},
		{'a', 10, false},
		{'f', 15, false},
		{0x00, 0, false}, // uninitialized brake buffer
		{'G', 0, true},
		{'g', 0, true},
		{' ', 0, true},
		{StartOfFrame, 0, true},
		{EndOfFrame, 0, true},
	}

	for _, tt := range tests {
		got, err := HexNibble(tt.c)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidHexDigit) {
				t.Errorf("HexNibble(0x%02x) error = %v, want ErrInvalidHexDigit", tt.c, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("HexNibble(0x%02x) unexpected error: %v", tt.c, err)
		} else if got != tt.want {
			t.Errorf("HexNibble(0x%02x) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestHexNibble_RoundTrip(t *testing.T) {
	for n := byte(0); n < 16; n++ {
		c, _ := HexChar(n)
		got, err := HexNibble(c)
		if err != nil || got != n {
			t.Errorf("HexNibble(HexChar(%d)) = %d, %v", n, got, err)
		}
	}
}
