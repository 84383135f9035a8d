package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/display"
	"github.com/smokyabdulrahman/prayer-times/internal/moon"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	prayers, err := s.prayers(s.date, s.cfg.PrayerNames())
	if err != nil {
		return err
	}

	// Current and next only make sense for today.
	var current, next *prayer.Prayer
	if s.isToday() {
		current = prayer.CurrentPrayer(prayers, s.now)
		next = prayer.NextPrayer(prayers, s.now)
	}

	// Phase at local noon represents the day.
	noon := s.date.Add(12 * time.Hour)
	ill, err := moon.IlluminationAt(noon)
	if err != nil {
		log.Warn().Err(err).Msg("moon phase unavailable")
	}
	var phase *moon.Illumination
	if err == nil {
		phase = &ill
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(out, s, prayers, current, next, phase)
	}
	printTodayRich(out, s, prayers, current, next, phase)
	return nil
}

// printTodayRich renders the colored terminal output for a day's prayer schedule.
func printTodayRich(w io.Writer, s *session, prayers []prayer.Prayer, current, next *prayer.Prayer, ill *moon.Illumination) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.locationLabel())
	fmt.Fprintf(w, "  %s\n", s.tz)
	fmt.Fprintf(w, "  %s\n", formatGregorianDate(s.date))
	fmt.Fprintf(w, "  %s\n", display.Gray(s.params.Method.Name()+", "+s.params.Madhab.String()))
	if ill != nil {
		fmt.Fprintf(w, "  %s %s %s\n", ill.Emoji(), ill.Name.Title(), display.Dim(fmt.Sprintf("(%.0f%%)", ill.Fraction*100)))
	}

	fmt.Fprintln(w)

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	layout := s.timeLayout()
	for _, p := range prayers {
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), p.Time.Format(layout))

		switch {
		case current != nil && p.Name == current.Name:
			fmt.Fprintln(w, display.Dim(line))
		case next != nil && p.Name == next.Name:
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, s.now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Fprintln(w, display.Accent(line)+display.Accent(suffix))
		default:
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
}

// formatGregorianDate returns a formatted Gregorian date string.
func formatGregorianDate(date time.Time) string {
	return date.Format("Monday, 02 January 2006")
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     string            `json:"date"`
	Method   string            `json:"method"`
	Madhab   string            `json:"madhab"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current,omitempty"`
	Next     *todayJSONNext    `json:"next,omitempty"`
	Moon     *todayJSONMoon    `json:"moon,omitempty"`
}

type todayJSONLocation struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s *session) jsonLocation() todayJSONLocation {
	return todayJSONLocation{
		City:      s.loc.City,
		Country:   s.loc.Country,
		Timezone:  s.tz.String(),
		Latitude:  s.loc.Coords.Latitude,
		Longitude: s.loc.Coords.Longitude,
	}
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

type todayJSONMoon struct {
	Phase        moon.Phase `json:"phase"`
	Illumination float64    `json:"illumination"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s *session, prayers []prayer.Prayer, current, next *prayer.Prayer, ill *moon.Illumination) error {
	layout := s.timeLayout()
	timings := make(map[string]string, len(prayers))
	for _, p := range prayers {
		timings[strings.ToLower(p.Name)] = p.Time.Format(layout)
	}

	out := todayJSON{
		Location: s.jsonLocation(),
		Date:    s.date.Format(dateLayout),
		Method:  s.params.Method.String(),
		Madhab:  s.params.Madhab.String(),
		Timings: timings,
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}
	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(layout),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now)),
		}
	}
	if ill != nil {
		out.Moon = &todayJSONMoon{Phase: ill.Name, Illumination: ill.Fraction}
	}

	return writeJSON(w, out)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
