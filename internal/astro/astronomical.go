package astro

import "math"

// Series below follow Meeus, Astronomical Algorithms (2nd ed.). T is the
// time in Julian centuries since J2000; all angles are in degrees.

// meanSolarLongitude is the geometric mean longitude of the sun (p. 163).
func meanSolarLongitude(T float64) float64 {
	l0 := 280.4664567 + 36000.76983*T + 0.0003032*T*T
	return UnwindAngle(l0)
}

// meanLunarLongitude is the mean longitude of the moon (p. 144).
func meanLunarLongitude(T float64) float64 {
	return UnwindAngle(218.3165 + 481267.8813*T)
}

// ascendingLunarNodeLongitude is the longitude of the moon's ascending node (p. 144).
func ascendingLunarNodeLongitude(T float64) float64 {
	omega := 125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000
	return UnwindAngle(omega)
}

// meanSolarAnomaly (p. 163).
func meanSolarAnomaly(T float64) float64 {
	m := 357.52911 + 35999.05029*T - 0.0001537*T*T
	return UnwindAngle(m)
}

// solarEquationOfTheCenter (p. 164).
func solarEquationOfTheCenter(T, M float64) float64 {
	mRad := degreesToRadians(M)
	term1 := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(mRad)
	term2 := (0.019993 - 0.000101*T) * math.Sin(2*mRad)
	term3 := 0.000289 * math.Sin(3*mRad)
	return term1 + term2 + term3
}

// apparentSolarLongitude corrects the true longitude for nutation and
// aberration (p. 164).
func apparentSolarLongitude(T, L0 float64) float64 {
	longitude := L0 + solarEquationOfTheCenter(T, meanSolarAnomaly(T))
	omega := 125.04 - 1934.136*T
	lambda := longitude - 0.00569 - 0.00478*math.Sin(degreesToRadians(omega))
	return UnwindAngle(lambda)
}

// meanObliquityOfTheEcliptic (p. 147).
func meanObliquityOfTheEcliptic(T float64) float64 {
	return 23.439291 - 0.013004167*T - 0.0000001639*T*T + 0.0000005036*T*T*T
}

// apparentObliquityOfTheEcliptic (p. 165).
func apparentObliquityOfTheEcliptic(T, epsilon0 float64) float64 {
	o := 125.04 - 1934.136*T
	return epsilon0 + 0.00256*math.Cos(degreesToRadians(o))
}

// meanSiderealTime is the mean sidereal time at Greenwich (p. 88).
func meanSiderealTime(T float64) float64 {
	jd := T*36525 + J2000
	theta := 280.46061837 + 360.98564736629*(jd-J2000) + 0.000387933*T*T - T*T*T/38710000
	return UnwindAngle(theta)
}

// nutationInLongitude (p. 144).
func nutationInLongitude(L0, Lp, omega float64) float64 {
	term1 := (-17.2 / 3600) * math.Sin(degreesToRadians(omega))
	term2 := (1.32 / 3600) * math.Sin(2*degreesToRadians(L0))
	term3 := (0.23 / 3600) * math.Sin(2*degreesToRadians(Lp))
	term4 := (0.21 / 3600) * math.Sin(2*degreesToRadians(omega))
	return term1 - term2 - term3 + term4
}

// nutationInObliquity (p. 144).
func nutationInObliquity(L0, Lp, omega float64) float64 {
	term1 := (9.2 / 3600) * math.Cos(degreesToRadians(omega))
	term2 := (0.57 / 3600) * math.Cos(2*degreesToRadians(L0))
	term3 := (0.10 / 3600) * math.Cos(2*degreesToRadians(Lp))
	term4 := (0.09 / 3600) * math.Cos(2*degreesToRadians(omega))
	return term1 + term2 + term3 - term4
}

// altitudeOfCelestialBody returns the altitude for observer latitude phi,
// declination delta and local hour angle H (p. 93).
func altitudeOfCelestialBody(phi, delta, H float64) float64 {
	term1 := math.Sin(degreesToRadians(phi)) * math.Sin(degreesToRadians(delta))
	term2 := math.Cos(degreesToRadians(phi)) * math.Cos(degreesToRadians(delta)) * math.Cos(degreesToRadians(H))
	return radiansToDegrees(math.Asin(term1 + term2))
}

// approximateTransit returns the fraction of the day at which the body
// crosses the meridian at longitude L (p. 102).
func approximateTransit(L, theta0, alpha2 float64) float64 {
	lw := -L
	return normalizeWithBound((alpha2+lw-theta0)/360, 1)
}

// correctedTransit refines m0 with one interpolation step over the right
// ascensions of the previous, current and next day. The result is in hours.
func correctedTransit(m0, L, theta0, alpha2, alpha1, alpha3 float64) float64 {
	lw := -L
	theta := UnwindAngle(theta0 + 360.985647*m0)
	alpha := UnwindAngle(interpolateAngles(alpha2, alpha1, alpha3, m0))
	H := closestAngle(theta - lw - alpha)
	dm := H / -360
	return (m0 + dm) * 24
}

// correctedHourAngle returns the hour at which the body reaches altitude h0,
// before or after transit. ok is false when the body never reaches h0 on
// that day.
func correctedHourAngle(m0, h0 float64, coordinates Coordinates, afterTransit bool,
	theta0, alpha2, alpha1, alpha3, delta2, delta1, delta3 float64) (hours float64, ok bool) {
	lw := -coordinates.Longitude
	lat := degreesToRadians(coordinates.Latitude)

	term1 := math.Sin(degreesToRadians(h0)) - math.Sin(lat)*math.Sin(degreesToRadians(delta2))
	term2 := math.Cos(lat) * math.Cos(degreesToRadians(delta2))
	cosH0 := term1 / term2
	if math.IsNaN(cosH0) || cosH0 < -1 || cosH0 > 1 {
		return 0, false
	}
	H0 := radiansToDegrees(math.Acos(cosH0))

	m := m0 - H0/360
	if afterTransit {
		m = m0 + H0/360
	}

	theta := UnwindAngle(theta0 + 360.985647*m)
	alpha := UnwindAngle(interpolateAngles(alpha2, alpha1, alpha3, m))
	delta := interpolate(delta2, delta1, delta3, m)
	H := theta - lw - alpha
	h := altitudeOfCelestialBody(coordinates.Latitude, delta, H)

	term3 := h - h0
	term4 := 360 * math.Cos(degreesToRadians(delta)) * math.Cos(lat) * math.Sin(degreesToRadians(H))
	dm := term3 / term4

	hours = (m + dm) * 24
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, false
	}
	return hours, true
}

// interpolate is Meeus' three-point interpolation (p. 24): y2 is the
// central value, y1 and y3 the previous and next, n the interpolation factor.
func interpolate(y2, y1, y3, n float64) float64 {
	a := y2 - y1
	b := y3 - y2
	c := b - a
	return y2 + (n/2)*(a+b+n*c)
}

// interpolateAngles is interpolate for angles that may wrap at 360.
func interpolateAngles(y2, y1, y3, n float64) float64 {
	a := UnwindAngle(y2 - y1)
	b := UnwindAngle(y3 - y2)
	c := b - a
	return y2 + (n/2)*(a+b+n*c)
}
