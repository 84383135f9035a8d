package prayer

import "time"

// boundFajr keeps fajr unless it is missing or earlier than safe, in which
// case safe is used.
func boundFajr(fajr time.Time, ok bool, safe time.Time) time.Time {
	if !ok || fajr.Before(safe) {
		return safe
	}
	return fajr
}

// boundIsha keeps isha unless it is missing or later than safe, in which
// case safe is used.
func boundIsha(isha time.Time, ok bool, safe time.Time) time.Time {
	if !ok || isha.After(safe) {
		return safe
	}
	return isha
}

// nightFraction is portion of night, truncated to whole seconds.
func nightFraction(portion float64, night time.Duration) time.Duration {
	seconds := int64(portion * float64(night.Milliseconds()) / 1000)
	return time.Duration(seconds) * time.Second
}

// seventhOfNight is a seventh of night, truncated to whole seconds.
func seventhOfNight(night time.Duration) time.Duration {
	return time.Duration(night.Milliseconds()/7000) * time.Second
}

// roundToMinute rounds t to the nearest minute; 30 seconds rounds up.
func roundToMinute(t time.Time) time.Time {
	r := t.Truncate(time.Minute)
	if t.Sub(r) >= 30*time.Second {
		r = r.Add(time.Minute)
	}
	return r
}
