package main

import (
	"fmt"

	"github.com/solar3s/gotacx/brake"
)

// formatEvent renders ev as a single console line.
func formatEvent(ev brake.Event, verbose bool) string {
	switch ev.Type {
	case brake.EventTelemetry:
		tm := ev.Telemetry
		return fmt.Sprintf("Distance=%5d, Wheel=%4d, Speed=%4.1f, Cad=%3d, CadSensor=%1d, "+
			"LoadCurrent=%5d, LoadDesired=%5d, WattCurrent=%5.1f WattDesired=%5.1f",
			tm.Distance, tm.Wheel, tm.SpeedKmh(), tm.Cadence, tm.CadenceSensor&0x1,
			tm.CurrentLoad, tm.DesiredLoad, tm.Watt(), tm.DesiredWatt())
	case brake.EventIdentity:
		id := ev.Identity
		return fmt.Sprintf("firmwareVersion=%s, Serial=%10d (%s), Unknown=%s",
			id.Firmware, uint32(id.Serial), id.Serial, id.Extra)
	}

	s := fmt.Sprintf("%s [%s] payload=[%s]", ev.Type, ev.Phase, brake.HexDump(ev.Payload))
	if verbose {
		s += fmt.Sprintf(" raw=[%s]", brake.HexDump(ev.Raw))
		if ev.Err != nil {
			s += fmt.Sprintf(" err=%s", ev.Err)
		}
	}
	return s
}
