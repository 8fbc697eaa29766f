package brake

import (
	"math/rand"
	"testing"

	"github.com/sigurn/crc16"
)

func TestParity16(t *testing.T) {
	for _, v := range []uint16{0x0000, 0x0001, 0x0003, 0x0100, 0x01ff, 0xffff, 0x8000} {
		want := uint16(0)
		for b := v; b != 0; b >>= 1 {
			want ^= b & 1
		}
		if got := parity16(v); got != want {
			t.Errorf("parity16(0x%04x) = %d, want %d", v, got, want)
		}
	}
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "empty data",
			data:     nil,
			expected: ChecksumSeed,
		},
		{
			name:     "version command",
			data:     []byte("02000000"),
			expected: 0xa843,
		},
		{
			name:     "ergo run command",
			data:     []byte("0108010082000000020A1004"),
			expected: 0x9b30,
		},
		{
			// captured: answer to an illegal command
			name:     "error answer",
			data:     []byte("FF020000CDFF"),
			expected: 0x819d,
		},
		{
			// captured: version answer
			name:     "version answer",
			data:     []byte("030C000065090000BAC47718080C0000"),
			expected: 0x70c4,
		},
		{
			// captured: version answer while powering up
			name:     "uninitialized version answer",
			data:     []byte("030C000065090000BAC47718080C\x00\x00\x00\x00"),
			expected: 0x6bdf,
		},
		{
			name:     "single char",
			data:     []byte("0"),
			expected: 0x8401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Checksum(tt.data)
			if result != tt.expected {
				t.Errorf("Checksum() = 0x%04X, want 0x%04X", result, tt.expected)
			}
		})
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	data := []byte("0313020000000000")
	a := Checksum(data)
	b := Checksum(append([]byte(nil), data...))
	if a != b {
		t.Errorf("Checksum() not deterministic: 0x%04X != 0x%04X", a, b)
	}
}

func TestChecksum_StartMarkerFoldedInSeed(t *testing.T) {
	// the seed is the register after 0x01 went through from zero
	data := []byte("02000000")
	reg := uint16(0)
	for _, a := range append([]byte{StartOfFrame}, data...) {
		tmp := uint16(a) ^ (reg & 0xff)
		reg >>= 8
		if parity16(tmp) == 1 {
			reg ^= ChecksumPoly
		}
		tmp ^= tmp << 1
		reg ^= tmp << 6
	}
	if got := Checksum(data); got != reg {
		t.Errorf("Checksum() = 0x%04X, from zero with start marker = 0x%04X", got, reg)
	}
}

// The register is a bytewise CRC-16/ARC that already went through the start marker.
func TestChecksum_MatchesCRC16ARC(t *testing.T) {
	table := crc16.MakeTable(crc16.CRC16_ARC)
	rnd := rand.New(rand.NewSource(19200))
	for n := 0; n < 100; n++ {
		p := make([]byte, rnd.Intn(64))
		rnd.Read(p)
		hex := Marshal(p)[1 : 1+2*len(p)]
		want := crc16.Checksum(append([]byte{StartOfFrame}, hex...), table)
		if got := Checksum(hex); got != want {
			t.Fatalf("Checksum(%q) = 0x%04X, CRC-16/ARC = 0x%04X", hex, got, want)
		}
	}
}
