package brake

import "fmt"

// HexChar converts a 4-bit value to its upper case ascii hex digit.
func HexChar(n byte) (byte, error) {
	switch {
	case n < 10:
		return '0' + n, nil
	case n < 16:
		return 'A' + n - 10, nil
	}
	return 0, fmt.Errorf("%w: 0x%02x", ErrInvalidNibble, n)
}

// HexNibble converts an ascii hex digit back to its value. NUL decodes to 0:
// a freshly powered brake sends parts of its buffer uninitialized.
func HexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c == 0:
		return 0, nil
	}
	return 0, fmt.Errorf("%w: 0x%02x", ErrInvalidHexDigit, c)
}

// appendHex appends the two hex digits of b, high nibble first.
func appendHex(dst []byte, b byte) []byte {
	// nibbles are always < 16
	hi, _ := HexChar(b >> 4)
	lo, _ := HexChar(b & 0xf)
	return append(dst, hi, lo)
}

// hexByte decodes two hex digits, high nibble first.
func hexByte(hi, lo byte) (byte, error) {
	h, err := HexNibble(hi)
	if err != nil {
		return 0, err
	}
	l, err := HexNibble(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}
