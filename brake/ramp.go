package brake

// RampConfig drives Ramp, a step of 0 leaves the target untouched.
type RampConfig struct {
	WattStep  float64 // added to TargetWatt after each iteration
	MaxWatt   float64
	SlopeStep float64 // added to TargetSlope after each iteration
	MaxSlope  float64
}

var DefaultRampConfig = RampConfig{
	WattStep:  0.5,
	MaxWatt:   400,
	SlopeStep: 0,
	MaxSlope:  20,
}

// Ramp slowly raises the targets, handy to exercise a brake on a bench.
type Ramp struct {
	cfg *RampConfig
}

func NewRamp(cfg *RampConfig) *Ramp {
	if cfg == nil {
		cfg = &DefaultRampConfig
	}
	return &Ramp{cfg: cfg}
}

func (r *Ramp) Update(t Targets) Targets {
	t.TargetWatt = step(t.TargetWatt, r.cfg.WattStep, r.cfg.MaxWatt)
	t.TargetSlope = step(t.TargetSlope, r.cfg.SlopeStep, r.cfg.MaxSlope)
	return t
}

func step(v, by, max float64) float64 {
	if by == 0 {
		return v
	}
	v += by
	if max > 0 && v > max {
		v = max
	}
	return v
}

// PolicyFunc adapts a plain function to TargetPolicy.
type PolicyFunc func(Targets) Targets

func (f PolicyFunc) Update(t Targets) Targets {
	return f(t)
}
