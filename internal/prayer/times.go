package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

// ErrUnavailable is returned when the sun never reaches an altitude a time
// depends on, as happens near the poles. No partial result is returned.
var ErrUnavailable = errors.New("prayer times unavailable for this date and location")

// moonsightingLatitude is the latitude from which the Moonsighting
// Committee method derives Fajr and Isha from the night length.
const moonsightingLatitude = 55

// Times are the six daily times for one calendar day, as UTC instants.
type Times struct {
	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time
}

// Calculate computes the prayer times on the calendar day of date (its
// clock and location are ignored) at the given coordinates.
func Calculate(coordinates astro.Coordinates, date time.Time, params Parameters) (Times, error) {
	if err := coordinates.Validate(); err != nil {
		return Times{}, err
	}

	year, month, day := date.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	solar := astro.NewSolarTime(today, coordinates)
	tomorrowSolar := astro.NewSolarTime(tomorrow, coordinates)

	dhuhr, ok := solar.Time(solar.Transit())
	if !ok {
		return Times{}, fmt.Errorf("transit: %w", ErrUnavailable)
	}
	sunrise, ok := eventTime(solar, solar.Sunrise)
	if !ok {
		return Times{}, fmt.Errorf("sunrise: %w", ErrUnavailable)
	}
	maghrib, ok := eventTime(solar, solar.Sunset)
	if !ok {
		return Times{}, fmt.Errorf("sunset: %w", ErrUnavailable)
	}
	tomorrowSunrise, ok := eventTime(tomorrowSolar, tomorrowSolar.Sunrise)
	if !ok {
		return Times{}, fmt.Errorf("next sunrise: %w", ErrUnavailable)
	}
	asr, ok := eventTime(solar, func() (float64, bool) {
		return solar.Afternoon(params.Madhab.ShadowLength())
	})
	if !ok {
		return Times{}, fmt.Errorf("asr: %w", ErrUnavailable)
	}

	night := tomorrowSunrise.Sub(maghrib)
	moonsighting := params.Method == MethodMoonsightingCommittee
	highLatitude := moonsighting && math.Abs(coordinates.Latitude) >= moonsightingLatitude
	portions := params.NightPortions()

	fajr, hasFajr := eventTime(solar, func() (float64, bool) {
		return solar.HourAngle(-params.FajrAngle, false)
	})
	if highLatitude {
		fajr, hasFajr = sunrise.Add(-seventhOfNight(night)), true
	}
	var safeFajr time.Time
	if moonsighting {
		safeFajr = SeasonAdjustedMorningTwilight(coordinates.Latitude, today.YearDay(), year, sunrise)
	} else {
		safeFajr = sunrise.Add(-nightFraction(portions.Fajr, night))
	}
	fajr = boundFajr(fajr, hasFajr, safeFajr)

	var isha time.Time
	if params.IshaInterval > 0 {
		isha = maghrib.Add(time.Duration(params.IshaInterval) * time.Minute)
	} else {
		computed, hasIsha := eventTime(solar, func() (float64, bool) {
			return solar.HourAngle(-params.IshaAngle, true)
		})
		if highLatitude {
			computed, hasIsha = maghrib.Add(seventhOfNight(night)), true
		}
		var safeIsha time.Time
		if moonsighting {
			safeIsha = SeasonAdjustedEveningTwilight(coordinates.Latitude, today.YearDay(), year, maghrib)
		} else {
			safeIsha = maghrib.Add(nightFraction(portions.Isha, night))
		}
		isha = boundIsha(computed, hasIsha, safeIsha)
	}

	adj := params.Adjustments.Add(params.MethodAdjustments)
	return Times{
		Fajr:    adjust(fajr, adj.Fajr),
		Sunrise: adjust(sunrise, adj.Sunrise),
		Dhuhr:   adjust(dhuhr, adj.Dhuhr),
		Asr:     adjust(asr, adj.Asr),
		Maghrib: adjust(maghrib, adj.Maghrib),
		Isha:    adjust(isha, adj.Isha),
	}, nil
}

func eventTime(solar astro.SolarTime, event func() (float64, bool)) (time.Time, bool) {
	hours, ok := event()
	if !ok {
		return time.Time{}, false
	}
	return solar.Time(hours)
}

func adjust(t time.Time, minutes int) time.Time {
	return roundToMinute(t.Add(time.Duration(minutes) * time.Minute))
}

// In returns the times converted to loc.
func (t Times) In(loc *time.Location) Times {
	return Times{
		Fajr:    t.Fajr.In(loc),
		Sunrise: t.Sunrise.In(loc),
		Dhuhr:   t.Dhuhr.In(loc),
		Asr:     t.Asr.In(loc),
		Maghrib: t.Maghrib.In(loc),
		Isha:    t.Isha.In(loc),
	}
}
