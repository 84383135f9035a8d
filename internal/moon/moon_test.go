package moon

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

var (
	london   = astro.Coordinates{Latitude: 51.5074, Longitude: -0.1278}
	phoenix  = astro.Coordinates{Latitude: 33.4484, Longitude: -112.074}
	svalbard = astro.Coordinates{Latitude: 78.2232, Longitude: 15.6267}
)

func diffMinutes(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Minutes())
}

// ---------------------------------------------------------------------------
// phaseIndex
// ---------------------------------------------------------------------------

func TestPhaseIndex(t *testing.T) {
	tests := []struct {
		name          string
		current, next float64
		want          int
	}{
		{"wraps past new moon", 0.97, 0.02, 0},
		{"starts at zero", 0, 0.03, 0},
		{"waxing crescent", 0.05, 0.08, 1},
		{"unchanged value", 0.1, 0.1, 1},
		{"crosses first quarter", 0.23, 0.27, 2},
		{"waxing gibbous", 0.3, 0.33, 3},
		{"crosses full", 0.49, 0.52, 4},
		{"waning gibbous", 0.6, 0.63, 5},
		{"crosses last quarter", 0.74, 0.77, 6},
		{"waning crescent", 0.8, 0.83, 7},
		{"touches one", 0.98, 1.0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := phaseIndex(tt.current, tt.next); got != tt.want {
				t.Errorf("phaseIndex(%v, %v) = %d, want %d", tt.current, tt.next, got, tt.want)
			}
		})
	}
}

func TestPhaseFromIndex(t *testing.T) {
	for i := 0; i < 8; i++ {
		p, err := PhaseFromIndex(i)
		if err != nil {
			t.Errorf("PhaseFromIndex(%d) unexpected error: %v", i, err)
		}
		if int(p) != i {
			t.Errorf("PhaseFromIndex(%d) = %d", i, p)
		}
	}

	for _, i := range []int{-1, 8} {
		if _, err := PhaseFromIndex(i); !errors.Is(err, ErrPhaseIndex) {
			t.Errorf("PhaseFromIndex(%d) err = %v, want ErrPhaseIndex", i, err)
		}
	}
}

func TestPhaseNamesAndEmoji(t *testing.T) {
	tests := []struct {
		phase Phase
		name  string
		title string
		emoji string
	}{
		{NewMoon, "NEW_MOON", "New Moon", "\U0001F311"},
		{WaxingCrescent, "WAXING_CRESCENT", "Waxing Crescent", "\U0001F312"},
		{FirstQuarter, "FIRST_QUARTER", "First Quarter", "\U0001F313"},
		{WaxingGibbous, "WAXING_GIBBOUS", "Waxing Gibbous", "\U0001F314"},
		{FullMoon, "FULL_MOON", "Full Moon", "\U0001F315"},
		{WaningGibbous, "WANING_GIBBOUS", "Waning Gibbous", "\U0001F316"},
		{LastQuarter, "LAST_QUARTER", "Last Quarter", "\U0001F317"},
		{WaningCrescent, "WANING_CRESCENT", "Waning Crescent", "\U0001F318"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.phase.Title(); got != tt.title {
				t.Errorf("Title() = %q, want %q", got, tt.title)
			}
			if got := tt.phase.Emoji(); got != tt.emoji {
				t.Errorf("Emoji() = %q, want %q", got, tt.emoji)
			}
		})
	}

	if _, err := Phase(8).MarshalText(); !errors.Is(err, ErrPhaseIndex) {
		t.Errorf("MarshalText of invalid phase err = %v, want ErrPhaseIndex", err)
	}
}

// ---------------------------------------------------------------------------
// IlluminationAt
// ---------------------------------------------------------------------------

func TestIlluminationAt_PhaseNames(t *testing.T) {
	tests := []struct {
		date string
		want Phase
	}{
		{"2024-01-11", NewMoon},
		{"2024-01-14", WaxingCrescent},
		{"2024-01-18", FirstQuarter},
		{"2024-01-21", WaxingGibbous},
		{"2024-01-25", FullMoon},
		{"2024-01-29", WaningGibbous},
		{"2024-02-02", LastQuarter},
		{"2024-02-05", WaningCrescent},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse(time.DateOnly, tt.date)
			if err != nil {
				t.Fatal(err)
			}
			ill, err := IlluminationAt(d)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ill.Name != tt.want {
				t.Errorf("phase = %s (value %.4f), want %s", ill.Name, ill.Phase, tt.want)
			}
		})
	}
}

func TestIlluminationAt_Fraction(t *testing.T) {
	full, err := IlluminationAt(time.Date(2024, 1, 25, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if full.Fraction < 0.97 {
		t.Errorf("fraction near full moon = %.4f, want > 0.97", full.Fraction)
	}

	dark, err := IlluminationAt(time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dark.Fraction > 0.03 {
		t.Errorf("fraction near new moon = %.4f, want < 0.03", dark.Fraction)
	}
}

func TestIlluminationAt_WaxingAngleNegative(t *testing.T) {
	ill, err := IlluminationAt(time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ill.Angle >= 0 {
		t.Errorf("waxing angle = %v, want negative", ill.Angle)
	}
	if ill.Phase <= 0 || ill.Phase >= 0.5 {
		t.Errorf("waxing phase value = %v, want within (0, 0.5)", ill.Phase)
	}
}

// ---------------------------------------------------------------------------
// PositionAt
// ---------------------------------------------------------------------------

func TestPositionAt_Ranges(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24*30; h += 7 {
		p := PositionAt(start.Add(time.Duration(h)*time.Hour), london)

		if math.Abs(p.Altitude) > math.Pi/2 {
			t.Fatalf("altitude %v out of range", p.Altitude)
		}
		if p.Distance < 356000 || p.Distance > 407000 {
			t.Fatalf("distance %v km out of range", p.Distance)
		}
		if b := p.Bearing(); b < 0 || b >= 360 {
			t.Fatalf("bearing %v out of range", b)
		}
	}
}

func TestPositionAt_FullMoonAtMidnight(t *testing.T) {
	p := PositionAt(time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), london)
	if alt := p.AltitudeDegrees(); alt < 40 {
		t.Errorf("altitude = %.1f°, want a high winter full moon", alt)
	}
	if b := p.Bearing(); b < 150 || b > 210 {
		t.Errorf("bearing = %.1f°, want roughly south", b)
	}
}

// ---------------------------------------------------------------------------
// TimesFor
// ---------------------------------------------------------------------------

func TestTimesFor_Phoenix(t *testing.T) {
	mst := time.FixedZone("MST", -7*3600)
	times := TimesFor(time.Date(2025, 11, 30, 15, 0, 0, 0, mst), phoenix)

	if !times.HasRise || !times.HasSet {
		t.Fatalf("expected rise and set, got %+v", times)
	}

	wantRise := time.Date(2025, 11, 30, 21, 10, 0, 0, time.UTC)
	wantSet := time.Date(2025, 11, 30, 9, 13, 0, 0, time.UTC)
	if d := diffMinutes(times.Rise, wantRise); d > 45 {
		t.Errorf("moonrise = %s, want about %s (off by %.0f min)", times.Rise.UTC().Format(time.RFC3339), wantRise.Format(time.RFC3339), d)
	}
	if d := diffMinutes(times.Set, wantSet); d > 45 {
		t.Errorf("moonset = %s, want about %s (off by %.0f min)", times.Set.UTC().Format(time.RFC3339), wantSet.Format(time.RFC3339), d)
	}
	if times.AlwaysUp || times.AlwaysDown {
		t.Errorf("unexpected always flags: %+v", times)
	}
}

func TestTimesFor_WithinLocalDay(t *testing.T) {
	mst := time.FixedZone("MST", -7*3600)
	start := time.Date(2025, 11, 30, 0, 0, 0, 0, mst)
	times := TimesFor(start.Add(13*time.Hour), phoenix)

	for name, ts := range map[string]time.Time{"rise": times.Rise, "set": times.Set} {
		if ts.Before(start) || !ts.Before(start.Add(24*time.Hour)) {
			t.Errorf("%s %s outside the local day", name, ts)
		}
	}
}

func TestTimesFor_AltitudeNearHorizonAtRise(t *testing.T) {
	times := TimesFor(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), london)
	if !times.HasRise {
		t.Fatalf("expected a moonrise, got %+v", times)
	}
	alt := PositionAt(times.Rise, london).Altitude - horizon
	if math.Abs(alt) > 0.01 {
		t.Errorf("altitude at moonrise = %v rad, want about 0", alt)
	}
}

func TestTimesFor_PolarAlwaysDown(t *testing.T) {
	times := TimesFor(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), svalbard)

	if times.HasRise || times.HasSet {
		t.Fatalf("expected no rise or set, got %+v", times)
	}
	if !times.AlwaysDown || times.AlwaysUp {
		t.Errorf("expected always down, got %+v", times)
	}
	if !times.Rise.IsZero() || !times.Set.IsZero() {
		t.Errorf("times should be zero when absent: %+v", times)
	}
}
