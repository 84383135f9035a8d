package config

import (
	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

// Resolve turns the stored settings into calculation parameters.
//
// Values that do not parse (a hand-edited file) fall back with a warning:
// an unknown method becomes "other", an unknown madhab becomes shafi. The
// angle and interval keys override the method's own values.
func (c *Config) Resolve() prayer.Parameters {
	method := prayer.MethodMuslimWorldLeague
	if c.Method != "" {
		m, err := prayer.ParseMethod(c.Method)
		if err != nil {
			log.Warn().Err(err).Msg("using custom angles")
		}
		method = m
	}
	p := method.Parameters()

	if c.Madhab != "" {
		m, err := prayer.ParseMadhab(c.Madhab)
		if err != nil {
			log.Warn().Err(err).Msg("using shafi")
		}
		p.Madhab = m
	}

	if c.HighLatitudeRule != "" {
		r, err := prayer.ParseHighLatitudeRule(c.HighLatitudeRule)
		if err != nil {
			log.Warn().Err(err).Msg("using middle_of_the_night")
		}
		p.HighLatitudeRule = r
	}

	if c.FajrAngle != nil {
		p.FajrAngle = *c.FajrAngle
	}
	if c.IshaAngle != nil {
		p.IshaAngle = *c.IshaAngle
		if c.IshaInterval == nil {
			p.IshaInterval = 0
		}
	}
	if c.IshaInterval != nil {
		p.IshaInterval = *c.IshaInterval
	}

	if p.FajrAngle <= 0 {
		log.Warn().Str("method", p.Method.String()).Msg("no fajr_angle set, using 18")
		p.FajrAngle = 18
	}
	if p.IshaAngle <= 0 && p.IshaInterval <= 0 {
		log.Warn().Str("method", p.Method.String()).Msg("no isha_angle or isha_interval set, using 17")
		p.IshaAngle = 17
	}

	if c.Adjustments != "" {
		a, err := prayer.ParseAdjustments(c.Adjustments)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring adjustments")
		} else {
			p.Adjustments = a
		}
	}

	return p
}
