// Package config provides persistent configuration for the prayer-times CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-times/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file >
// PRAYER_TIMES_* environment (including a .env file) > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

const (
	configDirName  = "prayer-times"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"city", "country",
	"latitude", "longitude",
	"timezone",
	"method", "madhab", "high_latitude_rule",
	"fajr_angle", "isha_angle", "isha_interval",
	"adjustments",
	"time_format",
	"prayers",
	"cache_dir",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect). Numeric
// settings are pointers so that 0 can be stored.
type Config struct {
	City             string   `json:"city,omitempty"`
	Country          string   `json:"country,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	Timezone         string   `json:"timezone,omitempty"`
	Method           string   `json:"method,omitempty"`
	Madhab           string   `json:"madhab,omitempty"`
	HighLatitudeRule string   `json:"high_latitude_rule,omitempty"`
	FajrAngle        *float64 `json:"fajr_angle,omitempty"`
	IshaAngle        *float64 `json:"isha_angle,omitempty"`
	IshaInterval     *int     `json:"isha_interval,omitempty"`
	Adjustments      string   `json:"adjustments,omitempty"` // fajr,sunrise,dhuhr,asr,maghrib,isha
	TimeFormat       string   `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers          string   `json:"prayers,omitempty"`     // comma-separated list
	CacheDir         string   `json:"cache_dir,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     prayer.MethodMuslimWorldLeague.String(),
		TimeFormat: "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
// Enumerated values are stored in their canonical spelling.
func (c *Config) Set(key, value string) error {
	switch key {
	case "city":
		c.City = value
	case "country":
		c.Country = value
	case "latitude":
		v, err := parseRange(value, -90, 90)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: %w", value, err)
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseRange(value, -180, 180)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: %w", value, err)
		}
		c.Longitude = &v
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil || value == "" {
			return fmt.Errorf("invalid timezone %q: must be an IANA name such as \"Europe/London\"", value)
		}
		c.Timezone = value
	case "method":
		m, err := prayer.ParseMethod(value)
		if err != nil {
			return err
		}
		c.Method = m.String()
	case "madhab":
		m, err := prayer.ParseMadhab(value)
		if err != nil {
			return err
		}
		c.Madhab = m.String()
	case "high_latitude_rule":
		r, err := prayer.ParseHighLatitudeRule(value)
		if err != nil {
			return err
		}
		c.HighLatitudeRule = r.String()
	case "fajr_angle":
		v, err := parseAngle(value)
		if err != nil {
			return fmt.Errorf("invalid fajr_angle %q: %w", value, err)
		}
		c.FajrAngle = &v
	case "isha_angle":
		v, err := parseAngle(value)
		if err != nil {
			return fmt.Errorf("invalid isha_angle %q: %w", value, err)
		}
		c.IshaAngle = &v
	case "isha_interval":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid isha_interval %q: must be an integer", value)
		}
		if v < 0 || v > 300 {
			return fmt.Errorf("invalid isha_interval %q: must be between 0 and 300 minutes", value)
		}
		c.IshaInterval = &v
	case "adjustments":
		a, err := prayer.ParseAdjustments(value)
		if err != nil {
			return err
		}
		c.Adjustments = a.String()
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		names := splitNames(value)
		if len(names) == 0 {
			return fmt.Errorf("invalid prayers %q: list is empty", value)
		}
		for _, n := range names {
			if !prayer.IsValidName(n) {
				return fmt.Errorf("invalid prayer name %q in prayers list", n)
			}
		}
		c.Prayers = strings.Join(names, ",")
	case "cache_dir":
		c.CacheDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "city":
		return c.City, nil
	case "country":
		return c.Country, nil
	case "latitude":
		return formatFloat(c.Latitude), nil
	case "longitude":
		return formatFloat(c.Longitude), nil
	case "timezone":
		return c.Timezone, nil
	case "method":
		return c.Method, nil
	case "madhab":
		return c.Madhab, nil
	case "high_latitude_rule":
		return c.HighLatitudeRule, nil
	case "fajr_angle":
		return formatFloat(c.FajrAngle), nil
	case "isha_angle":
		return formatFloat(c.IshaAngle), nil
	case "isha_interval":
		if c.IshaInterval == nil {
			return "", nil
		}
		return strconv.Itoa(*c.IshaInterval), nil
	case "adjustments":
		return c.Adjustments, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Coordinates returns the configured coordinates. ok is false unless both
// latitude and longitude are set.
func (c *Config) Coordinates() (astro.Coordinates, bool) {
	if c.Latitude == nil || c.Longitude == nil {
		return astro.Coordinates{}, false
	}
	return astro.Coordinates{Latitude: *c.Latitude, Longitude: *c.Longitude}, true
}

// TimeLayout returns the Go time layout for the configured time format.
func (c *Config) TimeLayout() string {
	if c.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// PrayerNames returns the configured prayers, or the defaults.
func (c *Config) PrayerNames() []string {
	if names := splitNames(c.Prayers); len(names) > 0 {
		return names
	}
	return prayer.DefaultPrayerNames
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func parseRange(value string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New("must be a number")
	}
	if !(v >= min && v <= max) {
		return 0, fmt.Errorf("must be between %g and %g", min, max)
	}
	return v, nil
}

func parseAngle(value string) (float64, error) {
	v, err := parseRange(value, 0, 30)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, errors.New("must be greater than 0")
	}
	return v, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
