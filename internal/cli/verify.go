package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/api"
	"github.com/smokyabdulrahman/prayer-times/internal/display"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

var (
	flagVerifyDays      int
	flagVerifyTolerance int
)

// referenceURL is the Al Adhan base URL, overridden in tests.
var referenceURL = ""

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare calculated times with the Al Adhan API",
		Long: "Fetch reference timings from the Al Adhan API for the same location, method\n" +
			"and madhab, and compare them with the local calculation. Minute adjustments\n" +
			"from the config are not applied. Exits non-zero when any time differs by\n" +
			"more than --tolerance minutes.",
		Args: cobra.NoArgs,
		RunE: runVerify,
	}
	cmd.Flags().IntVar(&flagVerifyDays, "days", 1, "Number of days to compare")
	cmd.Flags().IntVar(&flagVerifyTolerance, "tolerance", 2, "Allowed difference in minutes")
	return cmd
}

// comparison is one prayer compared against the reference.
type comparison struct {
	Date      time.Time
	Name      string
	Local     time.Time
	Reference time.Time
	// Diff is local minus reference, in whole minutes.
	Diff int
}

func (c comparison) exceeds(tolerance int) bool {
	return c.Diff > tolerance || c.Diff < -tolerance
}

func runVerify(cmd *cobra.Command, args []string) error {
	if flagVerifyDays < 1 || flagVerifyDays > 31 {
		return fmt.Errorf("invalid --days %d: must be between 1 and 31", flagVerifyDays)
	}
	if flagVerifyTolerance < 0 {
		return fmt.Errorf("invalid --tolerance %d: must not be negative", flagVerifyTolerance)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	comparisons, err := compareWithReference(cmd.Context(), s, flagVerifyDays)
	if err != nil {
		return err
	}

	failed := 0
	for _, c := range comparisons {
		if c.exceeds(flagVerifyTolerance) {
			failed++
		}
	}

	printComparisons(cmd.OutOrStdout(), s, comparisons, flagVerifyTolerance)

	if failed > 0 {
		return fmt.Errorf("%d of %d times differ by more than %d minutes", failed, len(comparisons), flagVerifyTolerance)
	}
	return nil
}

// compareWithReference calculates each day locally and pairs every prayer
// with the Al Adhan time of the same name.
func compareWithReference(ctx context.Context, s *session, days int) ([]comparison, error) {
	method, err := api.MethodID(s.params.Method)
	if err != nil {
		return nil, fmt.Errorf("cannot verify method %s: %w", s.params.Method, err)
	}

	client := api.NewClient()
	if referenceURL != "" {
		client.BaseURL = referenceURL
	}
	client.LatitudeAdjustment = api.LatitudeAdjustmentID(s.params.HighLatitudeRule)

	params := s.params
	params.Adjustments = prayer.Adjustments{}

	var local []prayer.Day
	for i := 0; i < days; i++ {
		date := s.date.AddDate(0, 0, i)
		day, err := prayer.CalculateDay(s.loc.Coords, date, params)
		if errors.Is(err, prayer.ErrUnavailable) {
			log.Warn().Str("date", date.Format(dateLayout)).Msg("no local schedule, skipping")
			continue
		}
		if err != nil {
			return nil, err
		}
		local = append(local, day)
	}

	refs := &references{
		session: s,
		client:  client,
		method:  method,
		school:  api.SchoolID(s.params.Madhab),
		days:    make(map[string]api.Data),
	}
	dates := make([]time.Time, len(local))
	for i, day := range local {
		dates[i] = day.Date
	}
	if err := refs.load(ctx, dates); err != nil {
		return nil, err
	}

	var out []comparison
	for _, day := range local {
		ref, err := refs.prayers(day.Date)
		if err != nil {
			return nil, err
		}
		for _, r := range ref {
			// Al Adhan measures the night from sunset to sunrise, so only
			// the daily times are comparable.
			if !isDailyPrayer(r.Name) {
				continue
			}
			t, ok := day.TimeFor(r.Name)
			if !ok {
				continue
			}
			out = append(out, comparison{
				Date:      day.Date,
				Name:      r.Name,
				Local:     t.In(s.tz),
				Reference: r.Time.In(s.tz),
				Diff:      int(math.Round(t.Sub(r.Time).Minutes())),
			})
		}
	}
	return out, nil
}

func isDailyPrayer(name string) bool {
	for _, n := range prayer.DefaultPrayerNames {
		if n == name {
			return true
		}
	}
	return false
}

// references holds Al Adhan days keyed by YYYY-MM-DD.
type references struct {
	session        *session
	client         *api.Client
	method, school int
	days           map[string]api.Data
}

// load fills in every date, from the cache when possible. A single missing
// day is fetched on its own, otherwise one calendar request is made per
// month.
func (r *references) load(ctx context.Context, dates []time.Time) error {
	s := r.session
	var missing []time.Time
	for _, date := range dates {
		if s.cache != nil {
			if cached := s.cache.LoadReference(date, s.loc.Coords, r.method, r.school); cached != nil {
				log.Debug().Str("date", date.Format(dateLayout)).Msg("reference from cache")
				r.days[date.Format(dateLayout)] = api.Data{Timings: cached.Timings, Meta: cached.Meta}
				continue
			}
		}
		missing = append(missing, date)
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		resp, err := r.client.FetchByCoordinates(ctx, missing[0], s.loc.Coords, r.method, r.school)
		if err != nil {
			return fmt.Errorf("failed to fetch reference for %s: %w", missing[0].Format(dateLayout), err)
		}
		r.store(missing[0], resp.Data)
		return nil
	}

	fetched := make(map[string]bool)
	for _, date := range missing {
		month := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		if fetched[month.Format("2006-01")] {
			continue
		}
		fetched[month.Format("2006-01")] = true

		resp, err := r.client.FetchCalendarByCoordinates(ctx, month, s.loc.Coords, r.method, r.school)
		if err != nil {
			return fmt.Errorf("failed to fetch reference calendar for %s: %w", month.Format("January 2006"), err)
		}
		for _, data := range resp.Data {
			day, err := data.Date.Day()
			if err != nil {
				return fmt.Errorf("reference calendar for %s: %w", month.Format("January 2006"), err)
			}
			r.store(day, data)
		}
	}
	return nil
}

func (r *references) store(date time.Time, data api.Data) {
	s := r.session
	r.days[date.Format(dateLayout)] = data
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveReference(date, s.loc.Coords, r.method, r.school, data); err != nil {
		log.Warn().Err(err).Msg("could not cache reference timings")
	}
}

// prayers returns the reference prayers for a loaded date.
func (r *references) prayers(date time.Time) ([]prayer.Prayer, error) {
	data, ok := r.days[date.Format(dateLayout)]
	if !ok {
		return nil, fmt.Errorf("no reference timings for %s", date.Format(dateLayout))
	}
	return parseReference(data.Timings, data.Meta, date, r.session.tz)
}

// parseReference reads API timings in the zone the API reported, falling
// back to the session zone.
func parseReference(timings api.Timings, meta api.Meta, date time.Time, fallback *time.Location) ([]prayer.Prayer, error) {
	loc := fallback
	if meta.Timezone != "" {
		if l, err := time.LoadLocation(meta.Timezone); err == nil {
			loc = l
		}
	}
	y, m, d := date.Date()
	return timings.Prayers(time.Date(y, m, d, 0, 0, 0, 0, loc), loc)
}

func printComparisons(w io.Writer, s *session, comparisons []comparison, tolerance int) {
	layout := s.timeLayout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Verification against Al Adhan"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.locationLabel())
	fmt.Fprintf(w, "  %s, %s\n", s.params.Method.Name(), s.params.Madhab)
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Date", "Prayer", "Local", "Al Adhan", "Diff"})
	for _, c := range comparisons {
		diff := fmt.Sprintf("%+dm", c.Diff)
		switch {
		case c.exceeds(tolerance):
			diff = display.Yellow(diff)
		case c.Diff == 0:
			diff = display.Green(diff)
		}
		tbl.AddRow([]string{
			c.Date.Format("Mon 02 Jan"),
			c.Name,
			c.Local.Format(layout),
			c.Reference.Format(layout),
			diff,
		})
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}
