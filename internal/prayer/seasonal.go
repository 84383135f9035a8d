package prayer

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

// SeasonAdjustedMorningTwilight returns the Moonsighting Committee estimate
// of dawn: sunrise minus a latitude and season dependent number of minutes.
func SeasonAdjustedMorningTwilight(latitude float64, dayOfYear, year int, sunrise time.Time) time.Time {
	l := math.Abs(latitude) / 55
	a := 75 + 28.65*l
	b := 75 + 19.44*l
	c := 75 + 32.74*l
	d := 75 + 48.10*l

	adjustment := seasonalAdjustment(a, b, c, d, daysSinceSolstice(dayOfYear, year, latitude))
	return sunrise.Add(-time.Duration(roundHalfUp(adjustment*60)) * time.Second)
}

// SeasonAdjustedEveningTwilight returns the Moonsighting Committee estimate
// of the end of twilight: sunset plus a latitude and season dependent number
// of minutes.
func SeasonAdjustedEveningTwilight(latitude float64, dayOfYear, year int, sunset time.Time) time.Time {
	l := math.Abs(latitude) / 55
	a := 75 + 25.60*l
	b := 75 + 2.050*l
	c := 75 - 9.210*l
	d := 75 + 6.140*l

	adjustment := seasonalAdjustment(a, b, c, d, daysSinceSolstice(dayOfYear, year, latitude))
	return sunset.Add(time.Duration(roundHalfUp(adjustment*60)) * time.Second)
}

// seasonalAdjustment interpolates linearly between the coefficients at
// the knots 0, 91, 137, 183, 229 and 275 days after the winter solstice.
func seasonalAdjustment(a, b, c, d float64, dyy int) float64 {
	x := float64(dyy)
	switch {
	case dyy < 91:
		return a + (b-a)/91*x
	case dyy < 137:
		return b + (c-b)/46*(x-91)
	case dyy < 183:
		return c + (d-c)/46*(x-137)
	case dyy < 229:
		return d + (c-d)/46*(x-183)
	case dyy < 275:
		return c + (b-c)/46*(x-229)
	default:
		return b + (a-b)/91*(x-275)
	}
}

// daysSinceSolstice counts days since the local winter solstice, wrapped
// into [0, days in year).
func daysSinceSolstice(dayOfYear, year int, latitude float64) int {
	const northernOffset = 10

	daysInYear := 365
	southernOffset := 172
	if astro.IsLeapYear(year) {
		daysInYear = 366
		southernOffset = 173
	}

	if latitude >= 0 {
		dss := dayOfYear + northernOffset
		if dss >= daysInYear {
			dss -= daysInYear
		}
		return dss
	}

	dss := dayOfYear - southernOffset
	if dss < 0 {
		dss += daysInYear
	}
	return dss
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
