package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
	"github.com/smokyabdulrahman/prayer-times/internal/cache"
	"github.com/smokyabdulrahman/prayer-times/internal/config"
	"github.com/smokyabdulrahman/prayer-times/internal/geo"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

const dateLayout = "2006-01-02"

// locationSource records where the coordinates came from.
type locationSource int

const (
	sourceConfig locationSource = iota
	sourceCache
	sourceDetected
)

func (s locationSource) String() string {
	switch s {
	case sourceCache:
		return "cache"
	case sourceDetected:
		return "ip"
	default:
		return "config"
	}
}

// resolvedLocation is the effective place used for a calculation.
type resolvedLocation struct {
	Coords   astro.Coordinates
	City     string
	Country  string
	Timezone string
	Source   locationSource
}

// session carries everything a command needs to calculate: merged config,
// location, output zone, parameters and the selected date.
type session struct {
	cfg    *config.Config
	cache  *cache.Cache
	loc    resolvedLocation
	tz     *time.Location
	params prayer.Parameters
	now    time.Time
	date   time.Time
	dated  bool
}

// now is overridden in tests.
var now = time.Now

// newSession merges flags and config, then resolves location and timezone.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		c = nil
	}

	loc, err := resolveLocation(cmd.Context(), cfg, c)
	if err != nil {
		return nil, err
	}

	tz, err := resolveTimezone(cfg.Timezone, loc.Timezone)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		cache:  c,
		loc:    loc,
		tz:     tz,
		params: cfg.Resolve(),
		now:    now().In(tz),
	}
	s.date, s.dated, err = parseDateFlag(FlagDate, s.now)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("coordinates", loc.Coords.String()).
		Stringer("source", loc.Source).
		Str("timezone", tz.String()).
		Str("method", s.params.Method.String()).
		Msg("session resolved")
	return s, nil
}

// resolveLocation determines the effective location based on config/flags,
// the geolocation cache, or IP auto-detection, in that order.
func resolveLocation(ctx context.Context, cfg *config.Config, c *cache.Cache) (resolvedLocation, error) {
	if coords, ok := cfg.Coordinates(); ok {
		return resolvedLocation{
			Coords:  coords,
			City:    cfg.City,
			Country: cfg.Country,
			Source:  sourceConfig,
		}, nil
	}
	if cfg.Latitude != nil || cfg.Longitude != nil {
		return resolvedLocation{}, errors.New("both latitude and longitude are required")
	}

	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return fromGeo(*cached, cfg, sourceCache), nil
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	detected, err := geo.DetectLocation(ctx)
	if err != nil {
		return resolvedLocation{}, fmt.Errorf("no location specified and auto-detection failed: %w\n"+
			"set one with: prayer-times config set latitude <lat> && prayer-times config set longitude <lon>", err)
	}
	if c != nil {
		if err := c.SaveGeo(detected); err != nil {
			log.Warn().Err(err).Msg("could not cache geolocation")
		}
	}
	return fromGeo(*detected, cfg, sourceDetected), nil
}

// fromGeo converts a geolocation result. Configured labels win.
func fromGeo(g geo.Location, cfg *config.Config, src locationSource) resolvedLocation {
	loc := resolvedLocation{
		Coords:   g.Coordinates(),
		City:     g.City,
		Country:  g.Country,
		Timezone: g.Timezone,
		Source:   src,
	}
	if cfg.City != "" {
		loc.City = cfg.City
	}
	if cfg.Country != "" {
		loc.Country = cfg.Country
	}
	return loc
}

// resolveTimezone picks the configured zone, then the detected one, then the
// system zone.
func resolveTimezone(configured, detected string) (*time.Location, error) {
	if configured != "" {
		loc, err := time.LoadLocation(configured)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", configured, err)
		}
		return loc, nil
	}
	if detected != "" {
		loc, err := time.LoadLocation(detected)
		if err == nil {
			return loc, nil
		}
		log.Warn().Str("timezone", detected).Err(err).Msg("ignoring detected timezone")
	}
	return time.Local, nil
}

// parseDateFlag returns midnight of the requested date in now's zone.
// An empty value means today; dated reports whether a date was given.
func parseDateFlag(value string, now time.Time) (date time.Time, dated bool, err error) {
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), false, nil
	}
	date, err = time.ParseInLocation(dateLayout, value, now.Location())
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", value)
	}
	return date, true, nil
}

// isToday reports whether the session date is the current local day.
func (s *session) isToday() bool {
	y1, m1, d1 := s.now.Date()
	y2, m2, d2 := s.date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// day calculates the schedule for date at the session location.
func (s *session) day(date time.Time) (prayer.Day, error) {
	day, err := prayer.CalculateDay(s.loc.Coords, date, s.params)
	if errors.Is(err, prayer.ErrUnavailable) {
		return prayer.Day{}, fmt.Errorf("%s on %s: %w\n"+
			"try another high_latitude_rule, an isha_interval, or a different location",
			s.loc.Coords, date.Format(dateLayout), err)
	}
	if err != nil {
		return prayer.Day{}, err
	}
	return day, nil
}

// prayers returns the selected prayers for date, expressed in the session zone.
func (s *session) prayers(date time.Time, names []string) ([]prayer.Prayer, error) {
	day, err := s.day(date)
	if err != nil {
		return nil, err
	}
	list, err := day.Prayers(names)
	if err != nil {
		return nil, err
	}
	return prayer.In(list, s.tz), nil
}

// timeLayout returns the Go layout for the configured time format.
func (s *session) timeLayout() string {
	return s.cfg.TimeLayout()
}

// locationLabel describes the session location for display.
func (s *session) locationLabel() string {
	return buildLocationStr(s.loc)
}

// buildLocationStr creates a human-readable location string.
func buildLocationStr(loc resolvedLocation) string {
	coords := fmt.Sprintf("%.4f, %.4f", loc.Coords.Latitude, loc.Coords.Longitude)
	switch {
	case loc.City != "" && loc.Country != "":
		return fmt.Sprintf("%s, %s (%s)", loc.City, loc.Country, coords)
	case loc.City != "":
		return fmt.Sprintf("%s (%s)", loc.City, coords)
	default:
		return coords
	}
}
