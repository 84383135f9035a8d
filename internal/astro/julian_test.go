package astro

import (
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  float64
	}{
		{"J2000 midnight", 2000, time.January, 1, 2451544.5},
		{"2019-01-01", 2019, time.January, 1, 2458484.5},
		{"Meeus example 7.a", 1957, time.October, 4, 2436115.5},
		{"leap day", 2020, time.February, 29, 2458908.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianDay(tt.year, tt.month, tt.day); got != tt.want {
				t.Errorf("JulianDay(%d, %d, %d) = %v, want %v", tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestJulianDayHours(t *testing.T) {
	got := JulianDayHours(2000, time.January, 1, 12)
	if got != J2000 {
		t.Errorf("JulianDayHours(2000-01-01 12h) = %v, want %v", got, J2000)
	}
	if got := JulianDayHours(2024, time.March, 1, 6); got != 2460370.75 {
		t.Errorf("JulianDayHours(2024-03-01 6h) = %v, want 2460370.75", got)
	}
	if got := JulianDayHours(1900, time.February, 28, 18); got != 2415079.25 {
		t.Errorf("JulianDayHours(1900-02-28 18h) = %v, want 2415079.25", got)
	}
}

func TestJulianCentury(t *testing.T) {
	if got := JulianCentury(J2000); got != 0 {
		t.Errorf("JulianCentury(J2000) = %v, want 0", got)
	}
	if got := JulianCentury(J2000 + 36525); got != 1 {
		t.Errorf("JulianCentury(J2000+36525) = %v, want 1", got)
	}
}

// Every day from 1900 through 2100 must survive JD -> date -> JD exactly and
// agree with the meeus implementation.
func TestJulianDay_RoundTrip(t *testing.T) {
	start := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		jd := JulianDay(d.Year(), d.Month(), d.Day())

		if ref := julian.CalendarGregorianToJD(d.Year(), int(d.Month()), float64(d.Day())); ref != jd {
			t.Fatalf("JulianDay(%s) = %v, meeus = %v", d.Format("2006-01-02"), jd, ref)
		}

		y, m, day := CalendarDate(jd)
		if y != d.Year() || m != d.Month() || day != d.Day() {
			t.Fatalf("CalendarDate(%v) = %d-%02d-%02d, want %s", jd, y, m, day, d.Format("2006-01-02"))
		}

		if back := JulianDay(y, m, day); back != jd {
			t.Fatalf("round trip for %s: %v != %v", d.Format("2006-01-02"), back, jd)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{1900, false},
		{2000, true},
		{2020, true},
		{2023, false},
		{2100, false},
	}
	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}
