package prayer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

// AllPrayerNames lists every event a Day can produce, in chronological order.
var AllPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
	"Firstthird", "Midnight", "Lastthird",
}

// DefaultPrayerNames are the prayers tracked by default.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":       "F",
	"Sunrise":    "S",
	"Dhuhr":      "D",
	"Asr":        "A",
	"Maghrib":    "M",
	"Isha":       "I",
	"Firstthird": "F3",
	"Midnight":   "Mi",
	"Lastthird":  "L3",
}

// ArabicNames maps prayer names to their Arabic forms.
var ArabicNames = map[string]string{
	"Fajr":       "الفجر",
	"Sunrise":    "الشروق",
	"Dhuhr":      "الظهر",
	"Asr":        "العصر",
	"Maghrib":    "المغرب",
	"Isha":       "العشاء",
	"Firstthird": "الثلث الأول",
	"Midnight":   "منتصف الليل",
	"Lastthird":  "الثلث الأخير",
}

// IsValidName reports whether name is one of AllPrayerNames.
func IsValidName(name string) bool {
	for _, n := range AllPrayerNames {
		if n == name {
			return true
		}
	}
	return false
}

// TimeFor returns the time of one of the six daily prayers.
func (t Times) TimeFor(name string) (time.Time, bool) {
	switch name {
	case "Fajr":
		return t.Fajr, true
	case "Sunrise":
		return t.Sunrise, true
	case "Dhuhr":
		return t.Dhuhr, true
	case "Asr":
		return t.Asr, true
	case "Maghrib":
		return t.Maghrib, true
	case "Isha":
		return t.Isha, true
	default:
		return time.Time{}, false
	}
}

// Prayers returns the selected prayers in chronological order.
func (t Times) Prayers(selected []string) ([]Prayer, error) {
	return collect(selected, t.TimeFor)
}

// Day is one day's prayer times together with the night markers, which
// depend on the following day's Fajr. HasSunnah is false when the following
// day has no times of its own.
type Day struct {
	Date      time.Time
	Times     Times
	Sunnah    SunnahTimes
	HasSunnah bool
}

// CalculateDay computes the prayer times for date and for the day after, and
// derives the night markers from both. Only a failure for date itself is an
// error.
func CalculateDay(coordinates astro.Coordinates, date time.Time, params Parameters) (Day, error) {
	today, err := Calculate(coordinates, date, params)
	if err != nil {
		return Day{}, err
	}
	day := Day{Date: date, Times: today}

	tomorrow, err := Calculate(coordinates, date.AddDate(0, 0, 1), params)
	switch {
	case err == nil:
		day.Sunnah = NewSunnahTimes(today, tomorrow)
		day.HasSunnah = true
	case !errors.Is(err, ErrUnavailable):
		return Day{}, err
	}
	return day, nil
}

// TimeFor returns the time of any name in AllPrayerNames. The night markers
// report false when HasSunnah is unset.
func (d Day) TimeFor(name string) (time.Time, bool) {
	switch name {
	case "Firstthird":
		return d.Sunnah.FirstThirdOfTheNight, d.HasSunnah
	case "Midnight":
		return d.Sunnah.MiddleOfTheNight, d.HasSunnah
	case "Lastthird":
		return d.Sunnah.LastThirdOfTheNight, d.HasSunnah
	default:
		return d.Times.TimeFor(name)
	}
}

// Prayers returns the selected prayers and night markers in chronological
// order. Night markers the day does not have are left out.
func (d Day) Prayers(selected []string) ([]Prayer, error) {
	available := make([]string, 0, len(selected))
	for _, name := range selected {
		if !d.HasSunnah && IsNightMarker(name) {
			continue
		}
		available = append(available, name)
	}
	return collect(available, d.TimeFor)
}

// IsNightMarker reports whether name is one of the night markers derived
// from the following day.
func IsNightMarker(name string) bool {
	return name == "Firstthird" || name == "Midnight" || name == "Lastthird"
}

func collect(selected []string, lookup func(string) (time.Time, bool)) ([]Prayer, error) {
	prayers := make([]Prayer, 0, len(selected))
	for _, name := range selected {
		t, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}
		prayers = append(prayers, Prayer{Name: name, Time: t})
	}
	sort.SliceStable(prayers, func(i, j int) bool {
		return prayers[i].Time.Before(prayers[j].Time)
	})
	return prayers, nil
}

// In converts every prayer time to loc.
func In(prayers []Prayer, loc *time.Location) []Prayer {
	out := make([]Prayer, len(prayers))
	for i, p := range prayers {
		out[i] = Prayer{Name: p.Name, Time: p.Time.In(loc)}
	}
	return out
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil (caller should compute tomorrow's Fajr).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer at or before now, or nil if
// now is before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
