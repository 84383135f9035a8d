package astro

import "math"

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func radiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// normalizeWithBound wraps value into [0, bound).
func normalizeWithBound(value, bound float64) float64 {
	return value - bound*math.Floor(value/bound)
}

// UnwindAngle wraps an angle in degrees into [0, 360).
func UnwindAngle(angle float64) float64 {
	return normalizeWithBound(angle, 360)
}

// closestAngle maps an angle onto the equivalent value in [-180, 180].
func closestAngle(angle float64) float64 {
	if angle >= -180 && angle <= 180 {
		return angle
	}
	return angle - 360*math.Floor(angle/360+0.5)
}
