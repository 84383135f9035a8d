package moon

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

// horizon is the altitude of the moon's center at rise and set.
const horizon = 0.133 * rad

// Times are the moonrise and moonset on one calendar day.
type Times struct {
	Rise    time.Time `json:"rise,omitempty"`
	Set     time.Time `json:"set,omitempty"`
	HasRise bool      `json:"has_rise"`
	HasSet  bool      `json:"has_set"`
	// AlwaysUp and AlwaysDown are set when the moon neither rises nor sets.
	AlwaysUp   bool `json:"always_up"`
	AlwaysDown bool `json:"always_down"`
}

// TimesFor finds the moonrise and moonset between midnight of date, in
// date's own location, and 24 hours later. Altitudes are sampled every
// hour and a parabola through each window of three samples locates the
// horizon crossings.
func TimesFor(date time.Time, observer astro.Coordinates) Times {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, date.Location())

	altitudeAt := func(hours float64) float64 {
		return PositionAt(hoursLater(start, hours), observer).Altitude - horizon
	}

	var (
		rise, set       float64
		hasRise, hasSet bool
		ye              float64
	)

	h0 := altitudeAt(0)
	for i := 1.0; i <= 24; i += 2 {
		h1 := altitudeAt(i)
		h2 := altitudeAt(i + 1)

		a := (h0+h2)/2 - h1
		b := (h2 - h0) / 2
		xe := -b / (2 * a)
		ye = (a*xe+b)*xe + h1
		d := b*b - 4*a*h1

		roots := 0
		var x1, x2 float64
		if d >= 0 {
			dx := math.Sqrt(d) / (math.Abs(a) * 2)
			x1 = xe - dx
			x2 = xe + dx
			if math.Abs(x1) <= 1 {
				roots++
			}
			if math.Abs(x2) <= 1 {
				roots++
			}
			if x1 < -1 {
				x1 = x2
			}
		}

		switch roots {
		case 1:
			if h0 < 0 {
				rise, hasRise = i+x1, true
			} else {
				set, hasSet = i+x1, true
			}
		case 2:
			if ye < 0 {
				rise, set = i+x2, i+x1
			} else {
				rise, set = i+x1, i+x2
			}
			hasRise, hasSet = true, true
		}

		if hasRise && hasSet {
			break
		}
		h0 = h2
	}

	t := Times{HasRise: hasRise, HasSet: hasSet}
	if hasRise {
		t.Rise = hoursLater(start, rise)
	}
	if hasSet {
		t.Set = hoursLater(start, set)
	}
	if !hasRise && !hasSet {
		t.AlwaysUp = ye > 0
		t.AlwaysDown = !t.AlwaysUp
	}
	return t
}

func hoursLater(t time.Time, hours float64) time.Time {
	return t.Add(time.Duration(hours * float64(time.Hour)))
}
