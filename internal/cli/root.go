package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-times/internal/config"
)

// Global flags shared across all subcommands.
var (
	FlagCity             string
	FlagCountry          string
	FlagLatitude         float64
	FlagLongitude        float64
	FlagTimezone         string
	FlagDate             string
	FlagMethod           string
	FlagMadhab           string
	FlagHighLatitudeRule string
	FlagJSON             bool
	FlagCacheDir         string
	FlagTimeFormat       string
	FlagLogLevel         string
)

// envFile is loaded from the working directory before the config file.
const envFile = ".env"

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the prayer-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prayer-times",
		Short: "Islamic prayer times CLI",
		Long: "A full-featured CLI for Islamic prayer times, moon phases and the qibla.\n" +
			"Times are calculated locally from astronomical formulas.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(FlagLogLevel, os.Stderr); err != nil {
				return err
			}
			if err := config.LoadEnvFile(envFile); err != nil {
				log.Warn().Err(err).Msg("ignoring .env")
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
				return err
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "City label shown in output")
	pf.StringVar(&FlagCountry, "country", "", "Country label shown in output")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.StringVar(&FlagTimezone, "timezone", "", "IANA timezone for output, e.g. Europe/London")
	pf.StringVar(&FlagDate, "date", "", "Date to calculate (YYYY-MM-DD, default: today)")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method (see 'prayer-times methods')")
	pf.StringVar(&FlagMadhab, "madhab", "", "Asr juristic school: shafi or hanafi")
	pf.StringVar(&FlagHighLatitudeRule, "high-latitude-rule", "", "middle_of_the_night, seventh_of_the_night or twilight_angle")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/prayer-times/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newMoonCmd())
	rootCmd.AddCommand(newQiblaCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVerifyCmd())

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > environment > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
// Flag values are validated like `config set`.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Config{}
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	overrides := []struct {
		flag, key string
		value     func() string
	}{
		{"city", "city", func() string { return FlagCity }},
		{"country", "country", func() string { return FlagCountry }},
		{"latitude", "latitude", func() string { return strconv.FormatFloat(FlagLatitude, 'f', -1, 64) }},
		{"longitude", "longitude", func() string { return strconv.FormatFloat(FlagLongitude, 'f', -1, 64) }},
		{"timezone", "timezone", func() string { return FlagTimezone }},
		{"method", "method", func() string { return FlagMethod }},
		{"madhab", "madhab", func() string { return FlagMadhab }},
		{"high-latitude-rule", "high_latitude_rule", func() string { return FlagHighLatitudeRule }},
		{"cache-dir", "cache_dir", func() string { return FlagCacheDir }},
		{"time-format", "time_format", func() string { return FlagTimeFormat }},
	}
	for _, o := range overrides {
		if !flagWasSet(flags, root, o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.value()); err != nil {
			return nil, fmt.Errorf("--%s: %w", o.flag, err)
		}
	}

	if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
