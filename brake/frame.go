package brake

import "fmt"

// Marshal wraps payload into a wire frame:
//
//	[0x01][HEX(payload)...][HEX(chk&0xff)][HEX(chk>>8)][0x17]
//
// The checksum is computed over the hex text, not over payload.
func Marshal(payload []byte) []byte {
	frame := make([]byte, 1, 2+2*(len(payload)+2))
	frame[0] = StartOfFrame
	for _, b := range payload {
		frame = appendHex(frame, b)
	}
	chk := Checksum(frame[1:])
	frame = appendHex(frame, byte(chk))
	frame = appendHex(frame, byte(chk>>8))
	return append(frame, EndOfFrame)
}

// Unmarshal validates a complete frame and returns its decoded payload.
// Errors are one of ErrFrameTooShort, ErrInvalidFraming,
// ErrChecksumMismatch or ErrInvalidHexDigit (wrapped).
func Unmarshal(frame []byte) ([]byte, error) {
	n := len(frame)
	if n < MinFrameSize {
		return nil, fmt.Errorf("%w: got %d bytes, minimum is %d", ErrFrameTooShort, n, MinFrameSize)
	}
	if frame[0] != StartOfFrame || frame[n-1] != EndOfFrame {
		return nil, fmt.Errorf("%w: markers 0x%02x..0x%02x", ErrInvalidFraming, frame[0], frame[n-1])
	}

	body := frame[1 : n-5]
	trailer := frame[n-5 : n-1]
	if len(body)%2 != 0 {
		return nil, fmt.Errorf("%w: odd hex length %d", ErrInvalidFraming, len(body))
	}

	lo, err := hexByte(trailer[0], trailer[1])
	if err != nil {
		return nil, err
	}
	hi, err := hexByte(trailer[2], trailer[3])
	if err != nil {
		return nil, err
	}
	got := uint16(hi)<<8 | uint16(lo)
	if want := Checksum(body); got != want {
		return nil, fmt.Errorf("%w: frame says 0x%04x, computed 0x%04x", ErrChecksumMismatch, got, want)
	}

	payload := make([]byte, 0, len(body)/2)
	for i := 0; i < len(body); i += 2 {
		b, err := hexByte(body[i], body[i+1])
		if err != nil {
			return nil, err
		}
		payload = append(payload, b)
	}
	return payload, nil
}
