// Package cache stores IP geolocation results and reference timings fetched
// from the Al Adhan API. Locally computed times are never cached.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/prayer-times/internal/api"
	"github.com/smokyabdulrahman/prayer-times/internal/astro"
	"github.com/smokyabdulrahman/prayer-times/internal/geo"
)

const (
	referenceCacheFile = "reference_%s.json" // keyed by hash
	geoCacheFile       = "geolocation.json"
	geoTTL             = 24 * time.Hour
)

// Cache provides file-based caching for reference timings and geolocation data.
type Cache struct {
	dir string
}

// ReferenceEntry stores a day's API timings along with metadata for validation.
type ReferenceEntry struct {
	Date    string      `json:"date"` // YYYY-MM-DD
	Method  int         `json:"method"`
	School  int         `json:"school"`
	Timings api.Timings `json:"timings"`
	Meta    api.Meta    `json:"meta"`
}

// GeoCacheEntry stores a cached geolocation result with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/prayer-times/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			home, herr := os.UserHomeDir()
			if herr != nil {
				return nil, fmt.Errorf("cannot determine home directory: %w", herr)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "prayer-times")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the directory the cache writes to.
func (c *Cache) Dir() string {
	return c.dir
}

// cacheKey builds a deterministic hash from the parameters that affect prayer times.
func cacheKey(date string, coords astro.Coordinates, method, school int) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%d|%d", date, coords.Latitude, coords.Longitude, method, school)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

func (c *Cache) referencePath(date string, coords astro.Coordinates, method, school int) string {
	return filepath.Join(c.dir, fmt.Sprintf(referenceCacheFile, cacheKey(date, coords, method, school)))
}

// LoadReference attempts to read cached API timings for the given parameters.
// Returns nil if the cache is missing or stale (wrong date).
func (c *Cache) LoadReference(date time.Time, coords astro.Coordinates, method, school int) *ReferenceEntry {
	dateStr := date.Format("2006-01-02")

	data, err := os.ReadFile(c.referencePath(dateStr, coords, method, school))
	if err != nil {
		return nil
	}

	var entry ReferenceEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if entry.Date != dateStr {
		return nil
	}

	return &entry
}

// SaveReference writes one day of API timings to the cache.
func (c *Cache) SaveReference(date time.Time, coords astro.Coordinates, method, school int, day api.Data) error {
	dateStr := date.Format("2006-01-02")

	entry := ReferenceEntry{
		Date:    dateStr,
		Method:  method,
		School:  school,
		Timings: day.Timings,
		Meta:    day.Meta,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(c.referencePath(dateStr, coords, method, school), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// LoadGeo attempts to read a cached geolocation result.
// Returns nil if the cache is missing or older than the TTL (24 hours).
func (c *Cache) LoadGeo() *geo.Location {
	path := filepath.Join(c.dir, geoCacheFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entry GeoCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if time.Since(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	path := filepath.Join(c.dir, geoCacheFile)

	entry := GeoCacheEntry{
		Location: *loc,
		CachedAt: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}

	return nil
}
