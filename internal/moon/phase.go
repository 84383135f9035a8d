package moon

import (
	"errors"
	"fmt"
	"time"

	"github.com/sixdouglas/suncalc"
)

// ErrPhaseIndex is returned when the phase value lands exactly on the full
// cycle boundary and no phase name applies.
var ErrPhaseIndex = errors.New("moon phase index out of range 0-7")

// Phase is one of the eight named lunar phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	NewMoon:        "NEW_MOON",
	WaxingCrescent: "WAXING_CRESCENT",
	FirstQuarter:   "FIRST_QUARTER",
	WaxingGibbous:  "WAXING_GIBBOUS",
	FullMoon:       "FULL_MOON",
	WaningGibbous:  "WANING_GIBBOUS",
	LastQuarter:    "LAST_QUARTER",
	WaningCrescent: "WANING_CRESCENT",
}

var phaseTitles = [...]string{
	NewMoon:        "New Moon",
	WaxingCrescent: "Waxing Crescent",
	FirstQuarter:   "First Quarter",
	WaxingGibbous:  "Waxing Gibbous",
	FullMoon:       "Full Moon",
	WaningGibbous:  "Waning Gibbous",
	LastQuarter:    "Last Quarter",
	WaningCrescent: "Waning Crescent",
}

func (p Phase) valid() bool {
	return p >= NewMoon && p <= WaningCrescent
}

func (p Phase) String() string {
	if !p.valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Title returns the phase name for display, e.g. "Waxing Gibbous".
func (p Phase) Title() string {
	if !p.valid() {
		return p.String()
	}
	return phaseTitles[p]
}

// Emoji returns the moon emoji for the phase, U+1F311 through U+1F318.
func (p Phase) Emoji() string {
	if !p.valid() {
		return ""
	}
	return string(rune(0x1F311 + int(p)))
}

// MarshalText encodes the phase as its name.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("%w: %d", ErrPhaseIndex, int(p))
	}
	return []byte(p.String()), nil
}

// PhaseFromIndex converts a bucket index to a Phase.
func PhaseFromIndex(index int) (Phase, error) {
	p := Phase(index)
	if !p.valid() {
		return 0, fmt.Errorf("%w: %d", ErrPhaseIndex, index)
	}
	return p, nil
}

// Illumination describes the lit part of the moon at an instant.
type Illumination struct {
	// Fraction of the disc that is lit, 0 to 1.
	Fraction float64 `json:"fraction"`
	// Phase runs from 0 (new) through 0.5 (full) back toward 1.
	Phase float64 `json:"phase"`
	// Angle is the midpoint angle of the lit limb, in radians. It is
	// negative while waxing.
	Angle float64 `json:"angle"`
	// Name of the phase, from comparing this day with the next.
	Name Phase `json:"name"`
}

// Emoji is a shortcut for i.Name.Emoji().
func (i Illumination) Emoji() string {
	return i.Name.Emoji()
}

// IlluminationAt returns the illumination at t, with the phase named by
// comparing t against the same instant a day later.
func IlluminationAt(t time.Time) (Illumination, error) {
	current := suncalc.GetMoonIllumination(t)
	next := suncalc.GetMoonIllumination(t.AddDate(0, 0, 1))

	name, err := PhaseFromIndex(phaseIndex(current.Phase, next.Phase))
	if err != nil {
		return Illumination{}, err
	}

	return Illumination{
		Fraction: current.Fraction,
		Phase:    current.Phase,
		Angle:    current.Angle,
		Name:     name,
	}, nil
}

var phaseThresholds = [...]float64{0, 0.25, 0.5, 0.75, 1}

// phaseIndex buckets the phase value of one day against the next. A
// threshold crossed between the two days gives an even index (a principal
// phase); otherwise the odd index of the span before the next threshold is
// used. A decreasing value has wrapped past new moon and gives 0. Crossing
// exactly 1 gives 8, which has no name.
func phaseIndex(current, next float64) int {
	index := 0
	if current <= next {
		for i, threshold := range phaseThresholds {
			if threshold >= current && threshold <= next {
				index = 2 * i
				break
			}
			if threshold > current {
				index = 2*i - 1
				break
			}
		}
	}
	return index % 27
}
