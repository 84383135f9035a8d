package prayer

import (
	"fmt"
	"strconv"
	"strings"
)

// Madhab is the juristic school, which decides the Asr shadow length.
type Madhab int

const (
	Shafi Madhab = iota
	Hanafi
)

func (m Madhab) String() string {
	switch m {
	case Shafi:
		return "shafi"
	case Hanafi:
		return "hanafi"
	default:
		return fmt.Sprintf("Madhab(%d)", int(m))
	}
}

// ShadowLength returns the shadow factor used for Asr: 1 for Shafi, 2 for
// Hanafi. It panics on a value outside the enumeration.
func (m Madhab) ShadowLength() float64 {
	switch m {
	case Shafi:
		return 1
	case Hanafi:
		return 2
	default:
		panic(fmt.Sprintf("prayer: invalid madhab %d", int(m)))
	}
}

// ParseMadhab resolves "shafi" or "hanafi" (case-insensitive). The numeric
// forms "0" and "1" are also accepted.
func ParseMadhab(s string) (Madhab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shafi", "0":
		return Shafi, nil
	case "hanafi", "1":
		return Hanafi, nil
	default:
		return Shafi, fmt.Errorf("invalid madhab %q: must be \"shafi\" or \"hanafi\"", s)
	}
}

// HighLatitudeRule bounds Fajr and Isha by a portion of the night.
type HighLatitudeRule int

const (
	MiddleOfTheNight HighLatitudeRule = iota
	SeventhOfTheNight
	TwilightAngle
)

func (r HighLatitudeRule) String() string {
	switch r {
	case MiddleOfTheNight:
		return "middle_of_the_night"
	case SeventhOfTheNight:
		return "seventh_of_the_night"
	case TwilightAngle:
		return "twilight_angle"
	default:
		return fmt.Sprintf("HighLatitudeRule(%d)", int(r))
	}
}

// ParseHighLatitudeRule resolves a rule name. Dashes and underscores are
// interchangeable.
func ParseHighLatitudeRule(s string) (HighLatitudeRule, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch key {
	case "middle_of_the_night", "middle":
		return MiddleOfTheNight, nil
	case "seventh_of_the_night", "seventh":
		return SeventhOfTheNight, nil
	case "twilight_angle", "angle":
		return TwilightAngle, nil
	default:
		return MiddleOfTheNight, fmt.Errorf("invalid high latitude rule %q: must be middle_of_the_night, seventh_of_the_night or twilight_angle", s)
	}
}

// NightPortions are the fractions of the night that bound Fajr and Isha.
type NightPortions struct {
	Fajr float64
	Isha float64
}

// Adjustments are signed minute offsets applied to each time.
type Adjustments struct {
	Fajr    int `json:"fajr"`
	Sunrise int `json:"sunrise"`
	Dhuhr   int `json:"dhuhr"`
	Asr     int `json:"asr"`
	Maghrib int `json:"maghrib"`
	Isha    int `json:"isha"`
}

// Add returns the element-wise sum of a and b.
func (a Adjustments) Add(b Adjustments) Adjustments {
	return Adjustments{
		Fajr:    a.Fajr + b.Fajr,
		Sunrise: a.Sunrise + b.Sunrise,
		Dhuhr:   a.Dhuhr + b.Dhuhr,
		Asr:     a.Asr + b.Asr,
		Maghrib: a.Maghrib + b.Maghrib,
		Isha:    a.Isha + b.Isha,
	}
}

// ParseAdjustments parses six comma-separated integers in the order
// fajr, sunrise, dhuhr, asr, maghrib, isha.
func ParseAdjustments(s string) (Adjustments, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return Adjustments{}, fmt.Errorf("invalid adjustments %q: want 6 comma-separated minutes (fajr,sunrise,dhuhr,asr,maghrib,isha)", s)
	}
	var v [6]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Adjustments{}, fmt.Errorf("invalid adjustments %q: %q is not an integer", s, strings.TrimSpace(p))
		}
		v[i] = n
	}
	return Adjustments{v[0], v[1], v[2], v[3], v[4], v[5]}, nil
}

func (a Adjustments) String() string {
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", a.Fajr, a.Sunrise, a.Dhuhr, a.Asr, a.Maghrib, a.Isha)
}

// Parameters configures a prayer time calculation.
type Parameters struct {
	Method           Method
	FajrAngle        float64
	IshaAngle        float64
	IshaInterval     int // minutes after maghrib; overrides IshaAngle when > 0
	Madhab           Madhab
	HighLatitudeRule HighLatitudeRule

	// Adjustments are the caller's offsets. MethodAdjustments are the
	// offsets the method itself prescribes; both are applied.
	Adjustments       Adjustments
	MethodAdjustments Adjustments
}

// NightPortions returns the night fractions for the high latitude rule.
func (p Parameters) NightPortions() NightPortions {
	switch p.HighLatitudeRule {
	case SeventhOfTheNight:
		return NightPortions{Fajr: 1.0 / 7.0, Isha: 1.0 / 7.0}
	case TwilightAngle:
		return NightPortions{Fajr: p.FajrAngle / 60, Isha: p.IshaAngle / 60}
	default:
		return NightPortions{Fajr: 1.0 / 2.0, Isha: 1.0 / 2.0}
	}
}
