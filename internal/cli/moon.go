package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/display"
	"github.com/smokyabdulrahman/prayer-times/internal/moon"
)

func newMoonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moon",
		Short: "Show the moon phase, position and rise/set",
		Long: "Show the lunar phase and illumination, the moon's current position and\n" +
			"its rise and set for the day. With --date the report is for local midnight.",
		Args: cobra.NoArgs,
		RunE: runMoon,
	}
}

// moonReport is the moon command output.
type moonReport struct {
	Time         time.Time  `json:"time"`
	Phase        moon.Phase `json:"phase"`
	Illumination float64    `json:"illumination"`
	Altitude     float64    `json:"altitude"`
	Azimuth      float64    `json:"azimuth"`
	Distance     float64    `json:"distance_km"`
	Rise         *time.Time `json:"rise,omitempty"`
	Set          *time.Time `json:"set,omitempty"`
	AlwaysUp     bool       `json:"always_up,omitempty"`
	AlwaysDown   bool       `json:"always_down,omitempty"`

	emoji string
}

func runMoon(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	at := s.now
	if s.dated {
		at = s.date
	}

	report, err := buildMoonReport(s, at)
	if err != nil {
		return err
	}

	if FlagJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	printMoon(cmd.OutOrStdout(), s, report)
	return nil
}

// buildMoonReport gathers the moon state at `at` for the session location.
func buildMoonReport(s *session, at time.Time) (moonReport, error) {
	ill, err := moon.IlluminationAt(at)
	if err != nil {
		return moonReport{}, err
	}
	pos := moon.PositionAt(at, s.loc.Coords)
	times := moon.TimesFor(s.date, s.loc.Coords)

	r := moonReport{
		Time:         at,
		Phase:        ill.Name,
		Illumination: ill.Fraction,
		Altitude:     pos.AltitudeDegrees(),
		Azimuth:      pos.Bearing(),
		Distance:     pos.Distance,
		AlwaysUp:     times.AlwaysUp,
		AlwaysDown:   times.AlwaysDown,
		emoji:        ill.Emoji(),
	}
	if times.HasRise {
		rise := times.Rise.In(s.tz)
		r.Rise = &rise
	}
	if times.HasSet {
		set := times.Set.In(s.tz)
		r.Set = &set
	}
	return r, nil
}

func printMoon(w io.Writer, s *session, r moonReport) {
	layout := s.timeLayout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", display.Bold("Moon"), r.emoji)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.locationLabel())
	fmt.Fprintf(w, "  %s\n", r.Time.Format("Mon 02 Jan 2006 "+layout+" MST"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-13s %s\n", "Phase", r.Phase.Title())
	fmt.Fprintf(w, "  %-13s %.1f%%\n", "Illumination", r.Illumination*100)
	fmt.Fprintf(w, "  %-13s %.1f°\n", "Altitude", r.Altitude)
	fmt.Fprintf(w, "  %-13s %.1f° %s\n", "Azimuth", r.Azimuth, compassPoint(r.Azimuth))
	fmt.Fprintf(w, "  %-13s %.0f km\n", "Distance", r.Distance)

	switch {
	case r.AlwaysUp:
		fmt.Fprintf(w, "  %-13s %s\n", "Rise/Set", display.Dim("above the horizon all day"))
	case r.AlwaysDown:
		fmt.Fprintf(w, "  %-13s %s\n", "Rise/Set", display.Dim("below the horizon all day"))
	default:
		fmt.Fprintf(w, "  %-13s %s\n", "Rise", optionalTime(r.Rise, layout))
		fmt.Fprintf(w, "  %-13s %s\n", "Set", optionalTime(r.Set, layout))
	}
	fmt.Fprintln(w)
}

func optionalTime(t *time.Time, layout string) string {
	if t == nil {
		return display.Dim("none today")
	}
	return t.Format(layout)
}
