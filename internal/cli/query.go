package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/display"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\n" +
			"Valid prayer names: " + strings.Join(prayer.AllPrayerNames, ", "),
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// normalizePrayerName matches name case-insensitively against the known prayers.
func normalizePrayerName(name string) (string, error) {
	for _, known := range prayer.AllPrayerNames {
		if strings.EqualFold(known, name) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown prayer %q; valid names: %s", name, strings.Join(prayer.AllPrayerNames, ", "))
}

// parseQueryDays parses the --days value.
func parseQueryDays(value string) (int, error) {
	switch value {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := parseDays(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", value)
	}
	return n, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	prayerName, err := normalizePrayerName(args[0])
	if err != nil {
		return err
	}

	days, err := parseQueryDays(flagQueryDays)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if days == 1 {
		return runQuerySingleDay(out, s, prayerName)
	}
	return runQueryMultiDay(out, s, prayerName, days)
}

func runQuerySingleDay(w io.Writer, s *session, prayerName string) error {
	parsed, err := s.prayers(s.date, []string{prayerName})
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		return fmt.Errorf("no timing found for %s", prayerName)
	}

	timeStr := parsed[0].Time.Format(s.timeLayout())

	if FlagJSON {
		return writeJSON(w, queryJSONSingle{
			Prayer: strings.ToLower(prayerName),
			Time:   timeStr,
			Date:   s.date.Format(dateLayout),
		})
	}

	fmt.Fprintf(w, "%s %s\n", prayerName, timeStr)
	return nil
}

func runQueryMultiDay(w io.Writer, s *session, prayerName string, days int) error {
	daysList, err := calculateDays(s, s.date, days, []string{prayerName})
	if err != nil {
		return err
	}

	if FlagJSON {
		return printQueryJSON(w, s, daysList, prayerName)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("%s Times, %d Days", prayerName, days)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.locationLabel())
	fmt.Fprintln(w)

	fmt.Fprint(w, renderDays(s, daysList, []string{prayerName}))
	fmt.Fprintln(w)
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func printQueryJSON(w io.Writer, s *session, daysList []dayData, prayerName string) error {
	layout := s.timeLayout()
	out := queryJSONMulti{
		Location: s.jsonLocation(),
		Prayer:   strings.ToLower(prayerName),
	}

	for _, dd := range daysList {
		out.Days = append(out.Days, queryJSONDay{
			Date: dd.Date.Format(dateLayout),
			Time: dd.timeOf(prayerName, layout),
		})
	}

	return writeJSON(w, out)
}
