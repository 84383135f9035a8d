package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long: "Display the next upcoming prayer time with a countdown.\n" +
			"The output is a single line suitable for status bars such as tmux.",
		RunE: runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull,
		"Display format: "+strings.Join(prayer.FormatModes, ", ")+
			", or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). "+
			"Template fields: .Name, .ShortName, .ArabicName, .Time, .Remaining, .Hours, .Minutes")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

// selectedPrayers returns the prayers to track.
// Priority: --prayers flag > config > defaults.
func selectedPrayers(cmd *cobra.Command, s *session) ([]string, error) {
	if !cmd.Flags().Changed("prayers") || flagPrayers == "" {
		return s.cfg.PrayerNames(), nil
	}
	var names []string
	for _, name := range strings.Split(flagPrayers, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !prayer.IsValidName(name) {
			return nil, fmt.Errorf("unknown prayer %q (valid: %s)", name, strings.Join(prayer.AllPrayerNames, ", "))
		}
		names = append(names, name)
	}
	return names, nil
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	names, err := selectedPrayers(cmd, s)
	if err != nil {
		return err
	}

	prayers, err := s.prayers(s.date, names)
	if err != nil {
		return err
	}

	// Yesterday's night markers run past midnight into today.
	prayers = append(previousNight(s, names), prayers...)
	next := prayer.NextPrayer(prayers, s.now)

	// If all today's prayers have passed, use tomorrow's first prayer.
	if next == nil {
		tomorrowPrayers, err := s.prayers(s.date.AddDate(0, 0, 1), names)
		switch {
		case errors.Is(err, prayer.ErrUnavailable):
			// Keep the status bar alive rather than failing.
			log.Warn().Err(err).Msg("tomorrow's times unavailable")
			if len(prayers) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s --:--", prayers[len(prayers)-1].Name)
				return nil
			}
			return err
		case err != nil:
			return err
		}
		if len(tomorrowPrayers) > 0 {
			next = &tomorrowPrayers[0]
		}
	}

	if next == nil {
		return fmt.Errorf("could not determine next prayer")
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*next, s.now, flagFormat, s.timeLayout()))
	return nil
}

// previousNight returns the night markers among names that belong to the
// night before the session date and are still ahead of now.
func previousNight(s *session, names []string) []prayer.Prayer {
	var markers []string
	for _, name := range names {
		if prayer.IsNightMarker(name) {
			markers = append(markers, name)
		}
	}
	if len(markers) == 0 {
		return nil
	}

	day, err := prayer.CalculateDay(s.loc.Coords, s.date.AddDate(0, 0, -1), s.params)
	if err != nil {
		log.Debug().Err(err).Msg("no night markers for the previous day")
		return nil
	}
	list, err := day.Prayers(markers)
	if err != nil {
		return nil
	}

	var ahead []prayer.Prayer
	for _, p := range prayer.In(list, s.tz) {
		if p.Time.After(s.now) {
			ahead = append(ahead, p)
		}
	}
	return ahead
}
