package prayer

import (
	"math"
	"strings"
	"testing"
)

func TestMethodParameters(t *testing.T) {
	tests := []struct {
		method   Method
		fajr     float64
		isha     float64
		interval int
	}{
		{MethodMuslimWorldLeague, 18, 17, 0},
		{MethodEgyptian, 19.5, 17.5, 0},
		{MethodKarachi, 18, 18, 0},
		{MethodUmmAlQura, 18.5, 0, 90},
		{MethodDubai, 18.2, 18.2, 0},
		{MethodMoonsightingCommittee, 18, 18, 0},
		{MethodNorthAmerica, 15, 15, 0},
		{MethodKuwait, 18, 17.5, 0},
		{MethodQatar, 18, 0, 90},
		{MethodSingapore, 20, 18, 0},
		{MethodFrance, 12, 12, 0},
		{MethodTurkey, 18, 17, 0},
		{MethodRussia, 16, 15, 0},
		{MethodIreland, 16, 14, 0},
		{MethodTehran, 17.7, 14, 0},
		{MethodShia, 16, 14, 0},
		{MethodGulf, 19.5, 0, 90},
		{MethodOther, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			p := tt.method.Parameters()
			if p.Method != tt.method {
				t.Errorf("Method = %v, want %v", p.Method, tt.method)
			}
			if p.FajrAngle != tt.fajr || p.IshaAngle != tt.isha || p.IshaInterval != tt.interval {
				t.Errorf("got fajr=%v isha=%v interval=%d, want fajr=%v isha=%v interval=%d",
					p.FajrAngle, p.IshaAngle, p.IshaInterval, tt.fajr, tt.isha, tt.interval)
			}
			if p.HighLatitudeRule != MiddleOfTheNight {
				t.Errorf("HighLatitudeRule = %v, want %v", p.HighLatitudeRule, MiddleOfTheNight)
			}
		})
	}
}

func TestMethodParameters_Specifics(t *testing.T) {
	if got := MethodIreland.Parameters().Madhab; got != Hanafi {
		t.Errorf("ireland madhab = %v, want hanafi", got)
	}
	if got := MethodMuslimWorldLeague.Parameters().Madhab; got != Shafi {
		t.Errorf("mwl madhab = %v, want shafi", got)
	}
	for _, m := range []Method{MethodTehran, MethodShia} {
		if got := m.Parameters().MethodAdjustments; got != (Adjustments{Maghrib: 4}) {
			t.Errorf("%s method adjustments = %+v, want maghrib +4", m, got)
		}
	}
	if got := Method(99).Parameters().Method; got != MethodOther {
		t.Errorf("unknown method resolved to %v, want other", got)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(strings.ToUpper(m.String()))
		if err != nil {
			t.Errorf("ParseMethod(%q) unexpected error: %v", m, err)
			continue
		}
		if got != m {
			t.Errorf("ParseMethod(%q) = %v, want %v", m, got, m)
		}
	}

	got, err := ParseMethod("hanafi-standard")
	if err == nil {
		t.Fatal("expected error for unknown method, got nil")
	}
	if got != MethodOther {
		t.Errorf("unknown method fell back to %v, want other", got)
	}
	if !strings.Contains(err.Error(), "mwl") {
		t.Errorf("error should list valid methods, got: %v", err)
	}
}

func TestMethodNames_NoDuplicates(t *testing.T) {
	keys := make(map[string]bool)
	names := make(map[string]bool)
	for _, m := range Methods {
		if keys[m.String()] {
			t.Errorf("duplicate method key %q", m.String())
		}
		if names[m.Name()] {
			t.Errorf("duplicate method name %q", m.Name())
		}
		keys[m.String()] = true
		names[m.Name()] = true
	}
	if len(MethodKeys()) != len(Methods) {
		t.Errorf("MethodKeys() has %d entries, want %d", len(MethodKeys()), len(Methods))
	}
	if got := Method(-1).String(); got != "Method(-1)" {
		t.Errorf("invalid method String() = %q", got)
	}
}

func TestReferenceLocation(t *testing.T) {
	for _, m := range Methods {
		c, ok := m.ReferenceLocation()
		switch m {
		case MethodMoonsightingCommittee, MethodOther:
			if ok {
				t.Errorf("%s: expected no reference location, got %v", m, c)
			}
			continue
		}
		if !ok {
			t.Errorf("%s: missing reference location", m)
			continue
		}
		if err := c.Validate(); err != nil {
			t.Errorf("%s: %v", m, err)
		}
	}

	ankara, _ := MethodTurkey.ReferenceLocation()
	if math.Abs(ankara.Latitude-39.93) > 0.01 || math.Abs(ankara.Longitude-32.86) > 0.01 {
		t.Errorf("turkey reference = %v, want Ankara", ankara)
	}
	moscow, _ := MethodRussia.ReferenceLocation()
	if math.Abs(moscow.Latitude-55.76) > 0.01 || math.Abs(moscow.Longitude-37.62) > 0.01 {
		t.Errorf("russia reference = %v, want Moscow", moscow)
	}
}
