package brake

// see ttyT1941 traces

const (
	StartOfFrame byte = 0x01
	EndOfFrame   byte = 0x17
)

// MinFrameSize is a frame with an empty payload:
// start marker, 4 checksum hex chars, end marker.
const MinFrameSize = 6

const (
	ChecksumSeed uint16 = 0xc0c1 // shift register after StartOfFrame
	ChecksumPoly uint16 = 0xc001
)

// Command opcodes, first byte of an outbound payload.
const (
	CmdRun     byte = 0x01
	CmdVersion byte = 0x02
)

// RespHeader is the first byte of every regular brake response.
const RespHeader byte = 0x03

const (
	IdentityLength  byte = 12
	TelemetryLength byte = 19

	IdentitySize  = 4 + int(IdentityLength)
	TelemetrySize = 4 + int(TelemetryLength)
)

// Brake mode byte (payload offset 8 of a run command).
const (
	ModeByteOff       byte = 0x00
	ModeByteActive    byte = 0x02 // ergo & slope
	ModeByteCalibrate byte = 0x03
)

const (
	WeightErgo    byte = 0x0a // weight value switching an active brake to ergo
	WeightDefault byte = 0x52 // off & calibrate modes
)

const (
	LoadPerWatt        = 13.0
	SlopeOffset        = -0.4
	SlopeScale         = 650.0 // 13 * 5 * 10
	SpeedScale         = 290.0
	DefaultCalibration = 0x0410 // 8 * 130
)

const RunCommandSize = 12
