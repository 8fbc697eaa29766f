package brake

import (
	"encoding/binary"
	"fmt"
)

//go:generate stringer -type=Kind
type Kind int

const (
	Unrecognized Kind = Kind(iota)
	Identity     Kind = Kind(iota)
	Telemetry    Kind = Kind(iota)
)

// Version is a 4 bytes version as sent by the brake, least significant byte first.
type Version struct {
	Major, Minor, Patch, Build byte
}

func (v Version) String() string {
	return fmt.Sprintf("%x.%x.%x.%x", v.Major, v.Minor, v.Patch, v.Build)
}

func versionLE(b []byte) Version {
	return Version{Major: b[3], Minor: b[2], Patch: b[1], Build: b[0]}
}

// SerialNumber of the motor brake itself (not the head unit),
// e.g. 410502330: brake type 41 (T1941), year 05, unit 02330.
type SerialNumber uint32

func (s SerialNumber) BrakeType() int { return int(s) / 10000000 }
func (s SerialNumber) Year() int      { return int(s) / 100000 % 100 }
func (s SerialNumber) Unit() int      { return int(s) % 100000 }

func (s SerialNumber) String() string {
	return fmt.Sprintf("%02d.%02d.%05d", s.BrakeType(), s.Year(), s.Unit())
}

// IdentityReport answers BuildIdentityQuery.
//
//	03 0c 00 00 | FIRMWARE(4) | SERIAL(4) | EXTRA(4)
type IdentityReport struct {
	Firmware Version
	Serial   SerialNumber
	Extra    Version
}

// TelemetryReport answers a run command.
//
//	03 13 02 00 | DISTANCE(4) | WHEEL(2) | ?(4) | LOAD(2) | DESIRED(2) | CAD_SENSOR | ? | CADENCE | ?(2)
type TelemetryReport struct {
	Distance      uint32
	Wheel         uint16
	Cadence       byte
	CadenceSensor byte
	CurrentLoad   uint16
	DesiredLoad   uint16
}

// SpeedKmh is the wheel speed in km/h.
func (t TelemetryReport) SpeedKmh() float64 {
	return float64(t.Wheel) / SpeedScale
}

// Watt is the power currently applied by the brake.
func (t TelemetryReport) Watt() float64 {
	return float64(t.CurrentLoad) / LoadPerWatt
}

func (t TelemetryReport) DesiredWatt() float64 {
	return float64(t.DesiredLoad) / LoadPerWatt
}

// Response is a classified brake answer. Raw always holds the decoded
// payload, Err is set when the frame couldn't be decoded at all.
type Response struct {
	Kind      Kind
	Identity  *IdentityReport
	Telemetry *TelemetryReport
	Raw       []byte
	Err       error
}

func hasHeader(p []byte, size int, h1, h2 byte) bool {
	return len(p) >= size && p[0] == RespHeader && p[1] == h1 && p[2] == h2 && p[3] == 0
}

// Classify interprets a decoded payload. Anything that is neither an
// identity nor a telemetry report comes back Unrecognized, which is
// business as usual while the brake powers up.
func Classify(p []byte) Response {
	res := Response{Kind: Unrecognized, Raw: p}
	switch {
	case hasHeader(p, IdentitySize, IdentityLength, 0x00):
		res.Kind = Identity
		res.Identity = &IdentityReport{
			Firmware: versionLE(p[4:8]),
			Serial:   SerialNumber(binary.LittleEndian.Uint32(p[8:12])),
			Extra:    versionLE(p[12:16]),
		}
	case hasHeader(p, TelemetrySize, TelemetryLength, 0x02):
		res.Kind = Telemetry
		res.Telemetry = &TelemetryReport{
			Distance:      binary.LittleEndian.Uint32(p[4:8]),
			Wheel:         binary.LittleEndian.Uint16(p[8:10]),
			CurrentLoad:   binary.LittleEndian.Uint16(p[14:16]),
			DesiredLoad:   binary.LittleEndian.Uint16(p[16:18]),
			CadenceSensor: p[18],
			Cadence:       p[20],
		}
	}
	return res
}

// Decode unmarshals frame and classifies its payload.
func Decode(frame []byte) Response {
	p, err := Unmarshal(frame)
	if err != nil {
		return Response{Kind: Unrecognized, Err: err}
	}
	return Classify(p)
}
