package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "PRAYER_TIMES_"

// EnvName returns the environment variable for a config key, e.g.
// PRAYER_TIMES_TIME_FORMAT for time_format.
func EnvName(key string) string {
	return envPrefix + strings.ToUpper(key)
}

// LoadEnvFile loads variables from a .env file into the process
// environment. Variables that are already set win. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv fills every key the config leaves unset from its
// PRAYER_TIMES_<KEY> variable. Values are validated like `config set`.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range ValidKeys {
		if cur, _ := c.Get(key); cur != "" {
			continue
		}
		value, ok := lookup(EnvName(key))
		if !ok || value == "" {
			continue
		}
		if err := c.Set(key, value); err != nil {
			return fmt.Errorf("%s: %w", EnvName(key), err)
		}
	}
	return nil
}
