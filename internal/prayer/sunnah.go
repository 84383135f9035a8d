package prayer

import "time"

// SunnahTimes divide the night between maghrib and the following fajr.
type SunnahTimes struct {
	FirstThirdOfTheNight time.Time
	MiddleOfTheNight     time.Time
	LastThirdOfTheNight  time.Time
}

// NewSunnahTimes computes the night markers from today's times and the
// next day's times.
func NewSunnahTimes(today, tomorrow Times) SunnahTimes {
	night := tomorrow.Fajr.Sub(today.Maghrib)
	return SunnahTimes{
		FirstThirdOfTheNight: roundToMinute(today.Maghrib.Add(night / 3)),
		MiddleOfTheNight:     roundToMinute(today.Maghrib.Add(night / 2)),
		LastThirdOfTheNight:  roundToMinute(today.Maghrib.Add(night * 2 / 3)),
	}
}
