package astro

import "math"

// SolarCoordinates is the apparent position of the sun at an instant.
type SolarCoordinates struct {
	// Declination in degrees, within [-90, 90].
	Declination float64
	// RightAscension in degrees, within [0, 360).
	RightAscension float64
	// ApparentSiderealTime at Greenwich in degrees, within [0, 360).
	ApparentSiderealTime float64
}

// NewSolarCoordinates computes the sun's coordinates for T Julian centuries
// since J2000.
func NewSolarCoordinates(T float64) SolarCoordinates {
	l0 := meanSolarLongitude(T)
	lp := meanLunarLongitude(T)
	omega := ascendingLunarNodeLongitude(T)
	lambda := degreesToRadians(apparentSolarLongitude(T, l0))
	theta0 := meanSiderealTime(T)
	dPsi := nutationInLongitude(l0, lp, omega)
	dEpsilon := nutationInObliquity(l0, lp, omega)
	epsilon0 := meanObliquityOfTheEcliptic(T)
	epsilonApp := degreesToRadians(apparentObliquityOfTheEcliptic(T, epsilon0))

	declination := radiansToDegrees(math.Asin(math.Sin(epsilonApp) * math.Sin(lambda)))
	rightAscension := UnwindAngle(radiansToDegrees(
		math.Atan2(math.Cos(epsilonApp)*math.Sin(lambda), math.Cos(lambda))))
	apparentSidereal := theta0 + (dPsi*3600)*math.Cos(degreesToRadians(epsilon0+dEpsilon))/3600

	return SolarCoordinates{
		Declination:          declination,
		RightAscension:       rightAscension,
		ApparentSiderealTime: UnwindAngle(apparentSidereal),
	}
}
