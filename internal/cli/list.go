package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/display"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

const unavailableTime = "--:--"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Show a table of prayer times starting today (or --date). Defaults to 7 days.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 30)
		},
	}
}

// dayData holds a single day's calculated prayers for list/query output.
// Prayers is nil when the day has no valid schedule.
type dayData struct {
	Date    time.Time
	Prayers []prayer.Prayer
}

// timeOf returns the formatted time of the named prayer, or a placeholder.
func (d dayData) timeOf(name, layout string) string {
	for _, p := range d.Prayers {
		if p.Name == name {
			return p.Time.Format(layout)
		}
	}
	return unavailableTime
}

// calculateDays calculates `days` consecutive days starting at start.
// Days without a valid schedule are kept with nil Prayers; any other
// error aborts.
func calculateDays(s *session, start time.Time, days int, names []string) ([]dayData, error) {
	result := make([]dayData, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		prayers, err := s.prayers(date, names)
		if err != nil && !errors.Is(err, prayer.ErrUnavailable) {
			return nil, err
		}
		result = append(result, dayData{Date: date, Prayers: prayers})
	}
	return result, nil
}

// parseDays parses a day count argument.
func parseDays(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > 366 {
		return 0, fmt.Errorf("invalid number of days: %q (must be between 1 and 366)", arg)
	}
	return n, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := parseDays(args[0])
		if err != nil {
			return err
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	names := s.cfg.PrayerNames()
	daysList, err := calculateDays(s, s.date, days, names)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printListJSON(out, s, daysList)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times, %d Days", days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.locationLabel())
	fmt.Fprintln(out)

	fmt.Fprint(out, renderDays(s, daysList, names))
	fmt.Fprintln(out)
	return nil
}

// renderDays builds the table with today's row highlighted.
func renderDays(s *session, daysList []dayData, names []string) string {
	layout := s.timeLayout()
	todayStr := s.now.Format(dateLayout)

	headers := append([]string{"Date"}, names...)
	tbl := display.NewTable(headers)

	for i, dd := range daysList {
		row := []string{dd.Date.Format("Mon 02 Jan")}
		for _, name := range names {
			row = append(row, dd.timeOf(name, layout))
		}
		tbl.AddRow(row)

		if dd.Date.Format(dateLayout) == todayStr {
			tbl.SetHighlightRow(i)
		}
	}
	return tbl.Render()
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Method   string            `json:"method"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date        string            `json:"date"`
	Timings     map[string]string `json:"timings,omitempty"`
	Unavailable bool              `json:"unavailable,omitempty"`
}

func printListJSON(w io.Writer, s *session, daysList []dayData) error {
	layout := s.timeLayout()
	out := listJSONOutput{
		Location: s.jsonLocation(),
		Method:   s.params.Method.String(),
	}

	for _, dd := range daysList {
		day := listJSONDay{Date: dd.Date.Format(dateLayout)}
		if dd.Prayers == nil {
			day.Unavailable = true
		} else {
			day.Timings = make(map[string]string, len(dd.Prayers))
			for _, p := range dd.Prayers {
				day.Timings[strings.ToLower(p.Name)] = p.Time.Format(layout)
			}
		}
		out.Days = append(out.Days, day)
	}

	return writeJSON(w, out)
}
