package astro

import (
	"math"
	"time"
)

// sunAltitude is the altitude of the sun's upper limb at rise and set,
// corrected for refraction and semidiameter.
const sunAltitude = -50.0 / 60.0

// SolarTime holds the sun's transit, rise and set for one calendar day at
// one location, as fractional hours from 0h UTC of that day.
//
// Coordinates for the previous and next day are kept so that every event
// can be interpolated across local midnight.
type SolarTime struct {
	year  int
	month time.Month
	day   int

	observer Coordinates
	solar    SolarCoordinates
	prev     SolarCoordinates
	next     SolarCoordinates

	approxTransit float64
	transit       float64
	sunrise       float64
	sunset        float64
	hasSunrise    bool
	hasSunset     bool
}

// NewSolarTime computes the solar events on the calendar date of date.
// The time of day and location of date are ignored.
func NewSolarTime(date time.Time, coordinates Coordinates) SolarTime {
	year, month, day := date.Date()
	jd := JulianDay(year, month, day)

	s := SolarTime{
		year:     year,
		month:    month,
		day:      day,
		observer: coordinates,
		prev:     NewSolarCoordinates(JulianCentury(jd - 1)),
		solar:    NewSolarCoordinates(JulianCentury(jd)),
		next:     NewSolarCoordinates(JulianCentury(jd + 1)),
	}

	s.approxTransit = approximateTransit(coordinates.Longitude,
		s.solar.ApparentSiderealTime, s.solar.RightAscension)
	s.transit = correctedTransit(s.approxTransit, coordinates.Longitude,
		s.solar.ApparentSiderealTime, s.solar.RightAscension,
		s.prev.RightAscension, s.next.RightAscension)
	s.sunrise, s.hasSunrise = s.HourAngle(sunAltitude, false)
	s.sunset, s.hasSunset = s.HourAngle(sunAltitude, true)

	return s
}

// Transit returns the hour of apparent solar noon.
func (s SolarTime) Transit() float64 {
	return s.transit
}

// Sunrise returns the hour of sunrise. ok is false during polar day or night.
func (s SolarTime) Sunrise() (float64, bool) {
	return s.sunrise, s.hasSunrise
}

// Sunset returns the hour of sunset. ok is false during polar day or night.
func (s SolarTime) Sunset() (float64, bool) {
	return s.sunset, s.hasSunset
}

// Declination returns the sun's declination on the day, in degrees.
func (s SolarTime) Declination() float64 {
	return s.solar.Declination
}

// HourAngle returns the hour at which the sun reaches angle degrees of
// altitude, on the morning side of transit or, when afterTransit is set, on
// the evening side.
func (s SolarTime) HourAngle(angle float64, afterTransit bool) (float64, bool) {
	return correctedHourAngle(s.approxTransit, angle, s.observer, afterTransit,
		s.solar.ApparentSiderealTime,
		s.solar.RightAscension, s.prev.RightAscension, s.next.RightAscension,
		s.solar.Declination, s.prev.Declination, s.next.Declination)
}

// Afternoon returns the hour at which an object's shadow equals shadowLength
// times its height plus its shadow at noon.
func (s SolarTime) Afternoon(shadowLength float64) (float64, bool) {
	tangent := math.Abs(s.observer.Latitude - s.solar.Declination)
	inverse := shadowLength + math.Tan(degreesToRadians(tangent))
	angle := radiansToDegrees(math.Atan(1.0 / inverse))
	return s.HourAngle(angle, true)
}

// Time places fractional hours on the calendar day of s. Hours, minutes and
// seconds are each truncated; values outside [0, 24) spill into the
// neighbouring days.
func (s SolarTime) Time(hours float64) (time.Time, bool) {
	return TimeFromHours(time.Date(s.year, s.month, s.day, 0, 0, 0, 0, time.UTC), hours)
}

// TimeFromHours places fractional hours on the calendar day of date, in UTC.
func TimeFromHours(date time.Time, hours float64) (time.Time, bool) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return time.Time{}, false
	}
	h := math.Floor(hours)
	m := math.Floor((hours - h) * 60)
	sec := math.Floor((hours - (h + m/60)) * 3600)

	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	offset := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
	return midnight.Add(offset), true
}
