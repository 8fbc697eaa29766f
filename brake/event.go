package brake

import "time"

const (
	EventIdentity   = "Identity"
	EventTelemetry  = "Telemetry"
	EventDiagnostic = "Diagnostic"
)

// Event is the outcome of one Iterate. Identity and Telemetry are set
// for the matching event types only, a Diagnostic carries whatever was
// received in Raw & Payload, and why it couldn't be used in Err if known.
type Event struct {
	Time      time.Time
	Type      string
	Phase     Phase
	State     State
	Targets   Targets
	Identity  *IdentityReport
	Telemetry *TelemetryReport
	Sent      []byte // payload of the command
	Raw       []byte // bytes read from the wire
	Payload   []byte // decoded response payload
	Err       error
}

func (ev Event) Erroneous() bool {
	return ev.Err != nil
}
