package brake

import "testing"

func TestRamp_Update(t *testing.T) {
	r := NewRamp(&RampConfig{WattStep: 0.5, MaxWatt: 11, SlopeStep: 0.1, MaxSlope: 1})
	tg := Targets{Mode: Ergo, TargetWatt: 10, TargetSlope: 0.95}

	tg = r.Update(tg)
	if tg.TargetWatt != 10.5 {
		t.Errorf("TargetWatt = %f, want 10.5", tg.TargetWatt)
	}
	if tg.TargetSlope != 1 {
		t.Errorf("TargetSlope = %f, want 1 (capped)", tg.TargetSlope)
	}

	for i := 0; i < 10; i++ {
		tg = r.Update(tg)
	}
	if tg.TargetWatt != 11 {
		t.Errorf("TargetWatt = %f, want 11 (capped)", tg.TargetWatt)
	}
	if tg.Mode != Ergo {
		t.Errorf("Mode changed to %s", tg.Mode)
	}
}

func TestRamp_Default(t *testing.T) {
	tg := NewRamp(nil).Update(DefaultConfig.Targets)
	if tg.TargetWatt != DefaultConfig.Targets.TargetWatt+DefaultRampConfig.WattStep {
		t.Errorf("TargetWatt = %f", tg.TargetWatt)
	}
	if tg.TargetSlope != DefaultConfig.Targets.TargetSlope {
		t.Errorf("TargetSlope = %f, want unchanged", tg.TargetSlope)
	}
}

func TestPolicyFunc(t *testing.T) {
	var p TargetPolicy = PolicyFunc(func(t Targets) Targets {
		t.Mode = Off
		return t
	})
	if got := p.Update(Targets{Mode: Slope}); got.Mode != Off {
		t.Errorf("Update() mode = %s, want Off", got.Mode)
	}
}
