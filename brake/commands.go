package brake

import (
	"encoding/binary"
	"fmt"
	"math"
)

//go:generate stringer -type=Mode
type Mode int

const (
	Off       Mode = Mode(iota)
	Ergo      Mode = Mode(iota) // brake tracks TargetWatt
	Slope     Mode = Mode(iota) // brake simulates TargetSlope for Weight kg
	Calibrate Mode = Mode(iota) // brake spins the wheel at TargetSpeed
)

// Targets are the user selected values a run command is built from.
type Targets struct {
	Mode        Mode
	TargetWatt  float64 // ergo, in watts
	TargetSlope float64 // slope, in %
	TargetSpeed float64 // calibrate, in km/h
	Weight      byte    // slope, total weight of rider & bike in kg
	Calibration uint16
}

// BrakeCommand is the decoded content of a run command.
type BrakeCommand struct {
	ModeByte    byte
	Load        int16
	CadenceEcho byte
	Weight      byte
	Calibration uint16
}

// BuildIdentityQuery returns the version command, answered by an IdentityReport.
func BuildIdentityQuery() []byte {
	return []byte{CmdVersion, 0x00, 0x00, 0x00}
}

// Load computes the raw load value for t.Mode. Values out of the
// 16 bits range are truncated, not clamped: the brake sees whatever
// ends up in the two low bytes.
func Load(t Targets) (int16, error) {
	var v float64
	switch t.Mode {
	case Off:
		return 0, nil
	case Ergo:
		v = t.TargetWatt * LoadPerWatt
	case Slope:
		v = (t.TargetSlope + SlopeOffset) * SlopeScale
	case Calibrate:
		// yes, a division: typical speeds give 0
		v = t.TargetSpeed / SpeedScale
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidMode, t.Mode)
	}
	return int16(uint16(int64(math.Round(v)))), nil
}

// NewBrakeCommand computes the run command for t. cadenceEcho is the
// cadence sensor bit from the last telemetry report.
func NewBrakeCommand(t Targets, cadenceEcho byte) (BrakeCommand, error) {
	load, err := Load(t)
	if err != nil {
		return BrakeCommand{}, err
	}
	c := BrakeCommand{
		Load:        load,
		CadenceEcho: cadenceEcho & 0x1,
	}
	switch t.Mode {
	case Off:
		c.ModeByte, c.Weight, c.Calibration = ModeByteOff, WeightDefault, t.Calibration
	case Ergo:
		c.ModeByte, c.Weight, c.Calibration = ModeByteActive, WeightErgo, t.Calibration
	case Slope:
		c.ModeByte, c.Weight, c.Calibration = ModeByteActive, t.Weight, t.Calibration
	case Calibrate:
		c.ModeByte, c.Weight, c.Calibration = ModeByteCalibrate, WeightDefault, 0
	}
	return c, nil
}

// Payload packs c:
//
//	01 08 01 00 LOAD_LSB LOAD_MSB CAD_ECHO 00 MODE WEIGHT CALIBRATE_LSB CALIBRATE_MSB
func (c BrakeCommand) Payload() []byte {
	p := make([]byte, RunCommandSize)
	p[0], p[1], p[2], p[3] = CmdRun, 0x08, 0x01, 0x00
	binary.LittleEndian.PutUint16(p[4:6], uint16(c.Load))
	p[6] = c.CadenceEcho
	p[7] = 0x00
	p[8] = c.ModeByte
	p[9] = c.Weight
	binary.LittleEndian.PutUint16(p[10:12], c.Calibration)
	return p
}

// BuildRunCommand returns the run command payload for t.
func BuildRunCommand(t Targets, cadenceEcho byte) ([]byte, error) {
	c, err := NewBrakeCommand(t, cadenceEcho)
	if err != nil {
		return nil, err
	}
	return c.Payload(), nil
}
