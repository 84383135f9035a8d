package prayer

import (
	"math"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

// Kaaba is the location of the Kaaba in Makkah.
var Kaaba = astro.Coordinates{Latitude: 21.4225241, Longitude: 39.8261818}

// Qibla returns the initial great-circle bearing from coordinates to the
// Kaaba, in degrees clockwise from true north.
func Qibla(coordinates astro.Coordinates) float64 {
	lat := coordinates.Latitude * math.Pi / 180
	kaabaLat := Kaaba.Latitude * math.Pi / 180
	dLon := (Kaaba.Longitude - coordinates.Longitude) * math.Pi / 180

	term1 := math.Sin(dLon)
	term2 := math.Cos(lat) * math.Tan(kaabaLat)
	term3 := math.Sin(lat) * math.Cos(dLon)

	return astro.UnwindAngle(math.Atan2(term1, term2-term3) * 180 / math.Pi)
}
