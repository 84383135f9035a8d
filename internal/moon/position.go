// Package moon computes the position, illumination, phase and rise/set of
// the moon. Angles are in radians unless a name says otherwise.
package moon

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

const rad = math.Pi / 180

// Position is the moon as seen from a point on Earth.
type Position struct {
	// Altitude above the horizon, corrected for refraction.
	Altitude float64
	// Azimuth measured from south, positive westward.
	Azimuth float64
	// Distance from the center of the Earth in km.
	Distance float64
	// ParallacticAngle (Meeus 14.1).
	ParallacticAngle float64
}

// PositionAt returns the moon's position at t for the observer.
func PositionAt(t time.Time, observer astro.Coordinates) Position {
	p := suncalc.GetMoonPosition(t, observer.Latitude, observer.Longitude)
	return Position{
		Altitude:         p.Altitude,
		Azimuth:          p.Azimuth,
		Distance:         p.Distance,
		ParallacticAngle: p.ParallacticAngle,
	}
}

// AltitudeDegrees returns the altitude in degrees.
func (p Position) AltitudeDegrees() float64 {
	return p.Altitude / rad
}

// Bearing returns the azimuth as a compass bearing in degrees, clockwise
// from north.
func (p Position) Bearing() float64 {
	return astro.UnwindAngle(p.Azimuth/rad + 180)
}
