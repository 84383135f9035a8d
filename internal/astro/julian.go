package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the Julian day of 2000-01-01 12:00 TT.
const J2000 = 2451545.0

// JulianDay returns the Julian day at 0h of the given proleptic Gregorian date.
func JulianDay(year int, month time.Month, day int) float64 {
	return JulianDayHours(year, month, day, 0)
}

// JulianDayHours returns the Julian day for a Gregorian date plus a number
// of hours into that day (Meeus, Astronomical Algorithms, ch. 7).
func JulianDayHours(year int, month time.Month, day int, hours float64) float64 {
	return julian.CalendarGregorianToJD(year, int(month), float64(day)+hours/24)
}

// JulianCentury converts a Julian day to Julian centuries since J2000.
func JulianCentury(jd float64) float64 {
	return (jd - J2000) / 36525
}

// CalendarDate converts a Julian day back to its Gregorian calendar date.
// The fractional day is discarded.
func CalendarDate(jd float64) (int, time.Month, int) {
	y, m, d := julian.JDToCalendar(jd)
	return y, time.Month(m), int(math.Floor(d + 1e-9))
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return julian.LeapYearGregorian(year)
}
