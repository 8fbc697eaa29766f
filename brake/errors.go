package brake

import "errors"

// Frame errors are expected while the brake powers up,
// callers discard the frame and carry on.
var (
	ErrInvalidNibble    = errors.New("only 4bit nibbles allowed")
	ErrInvalidHexDigit  = errors.New("only ascii hex chars allowed")
	ErrFrameTooShort    = errors.New("frame too short")
	ErrInvalidFraming   = errors.New("no valid frame")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// ErrInvalidMode is a caller bug, never device behaviour.
var ErrInvalidMode = errors.New("invalid brake mode")

var ErrClosedPort = errors.New("serial port is closed")
var ErrNoSerialPortFound = errors.New("didn't find any available serial port")

// IsFrameError returns true if err comes from decoding a received frame.
func IsFrameError(err error) bool {
	for _, v := range []error{ErrInvalidHexDigit, ErrFrameTooShort, ErrInvalidFraming, ErrChecksumMismatch} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
