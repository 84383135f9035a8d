package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

// Prayers converts API timings into prayers on the given date. Only the
// names the local engine also computes are kept. Night markers that fall
// before Maghrib belong to the following morning.
func (t Timings) Prayers(date time.Time, loc *time.Location) ([]prayer.Prayer, error) {
	raw := []struct {
		name  string
		value string
	}{
		{"Fajr", t.Fajr},
		{"Sunrise", t.Sunrise},
		{"Dhuhr", t.Dhuhr},
		{"Asr", t.Asr},
		{"Maghrib", t.Maghrib},
		{"Isha", t.Isha},
		{"Firstthird", t.Firstthird},
		{"Midnight", t.Midnight},
		{"Lastthird", t.Lastthird},
	}

	var prayers []prayer.Prayer
	var maghrib time.Time
	for _, r := range raw {
		if r.value == "" {
			continue
		}
		tm, err := parseTimeStr(r.value, date, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time for %s (%q): %w", r.name, r.value, err)
		}
		switch r.name {
		case "Maghrib":
			maghrib = tm
		case "Firstthird", "Midnight", "Lastthird":
			if !maghrib.IsZero() && tm.Before(maghrib) {
				tm = tm.AddDate(0, 0, 1)
			}
		}
		prayers = append(prayers, prayer.Prayer{Name: r.name, Time: tm})
	}
	return prayers, nil
}

// Day returns the calendar day of the entry at midnight UTC.
func (d DateInfo) Day() (time.Time, error) {
	day, err := time.Parse(dateLayout, d.Gregorian.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", d.Gregorian.Date, err)
	}
	return day, nil
}

// parseTimeStr parses a time string like "15:02" or "15:02 (BST)" into a time.Time
// on the given date in the given location.
func parseTimeStr(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	// Strip timezone suffix like " (BST)" that the API sometimes appends.
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", raw)
	}
	min, err := strconv.Atoi(mm)
	if err != nil || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", raw)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc), nil
}
