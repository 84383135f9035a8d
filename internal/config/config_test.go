package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.Method != "mwl" {
		t.Errorf("Defaults().Method = %q, want %q", d.Method, "mwl")
	}
	if d.TimeFormat != "24h" {
		t.Errorf("Defaults().TimeFormat = %q, want %q", d.TimeFormat, "24h")
	}

	// Everything else should be zero.
	if d.Madhab != "" {
		t.Errorf("Defaults().Madhab = %q, want empty", d.Madhab)
	}
	if d.Latitude != nil || d.Longitude != nil {
		t.Error("Defaults() should not set coordinates")
	}
	if d.Prayers != "" {
		t.Errorf("Defaults().Prayers = %q, want empty", d.Prayers)
	}
	if d.CacheDir != "" {
		t.Errorf("Defaults().CacheDir = %q, want empty", d.CacheDir)
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "prayer-times")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "prayer-times")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	p, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "prayer-times", "config.json")
	if p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

// --- LoadFrom ---

func TestLoadFrom_NonExistentFile(t *testing.T) {
	cfg, err := LoadFrom("/no/such/file.json")
	if err != nil {
		t.Fatalf("LoadFrom non-existent should not error, got: %v", err)
	}
	if cfg.City != "" || cfg.Method != "" || cfg.Latitude != nil {
		t.Error("LoadFrom non-existent should return empty config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	path := tempConfigPath(t)

	data := Config{
		City:       "Riyadh",
		Country:    "Saudi Arabia",
		Latitude:   floatPtr(24.7136),
		Longitude:  floatPtr(46.6753),
		Method:     "makkah",
		TimeFormat: "12h",
	}
	raw, _ := json.MarshalIndent(data, "", "  ")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.City != "Riyadh" {
		t.Errorf("City = %q, want %q", cfg.City, "Riyadh")
	}
	if cfg.Method != "makkah" {
		t.Errorf("Method = %q, want %q", cfg.Method, "makkah")
	}
	if cfg.Latitude == nil || *cfg.Latitude != 24.7136 {
		t.Errorf("Latitude = %v, want 24.7136", cfg.Latitude)
	}
	if cfg.TimeFormat != "12h" {
		t.Errorf("TimeFormat = %q, want %q", cfg.TimeFormat, "12h")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("LoadFrom with invalid JSON should return error")
	}
}

func TestLoadFrom_ZeroCoordinates(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte(`{"latitude": 0, "longitude": 0}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	coords, ok := cfg.Coordinates()
	if !ok {
		t.Fatal("explicit 0,0 should count as configured coordinates")
	}
	if coords.Latitude != 0 || coords.Longitude != 0 {
		t.Errorf("Coordinates() = %v, want 0,0", coords)
	}
}

// --- SaveTo ---

func TestSaveTo_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	cfg := &Config{City: "Cairo"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
}

func TestSaveTo_TrailingNewline(t *testing.T) {
	path := tempConfigPath(t)

	cfg := &Config{City: "Cairo"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	raw, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(raw), "\n") {
		t.Error("saved config should end with a newline")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	orig := &Config{
		City:             "Dublin",
		Country:          "Ireland",
		Latitude:         floatPtr(53.3498),
		Longitude:        floatPtr(-6.2603),
		Timezone:         "Europe/Dublin",
		Method:           "ireland",
		Madhab:           "hanafi",
		HighLatitudeRule: "seventh_of_the_night",
		FajrAngle:        floatPtr(16),
		IshaInterval:     intPtr(0),
		Adjustments:      "0,0,1,0,0,0",
		TimeFormat:       "12h",
		Prayers:          "Fajr,Isha",
		CacheDir:         "/tmp/cache",
	}
	if err := orig.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}

	for _, key := range ValidKeys {
		want, _ := orig.Get(key)
		got, _ := loaded.Get(key)
		if got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

// --- ResetAt ---

func TestResetAt_DeletesFile(t *testing.T) {
	path := tempConfigPath(t)
	if err := (&Config{City: "X"}).SaveTo(path); err != nil {
		t.Fatal(err)
	}

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should be deleted after ResetAt")
	}
}

func TestResetAt_NonExistentFile(t *testing.T) {
	if err := ResetAt("/no/such/config.json"); err != nil {
		t.Errorf("ResetAt on missing file should not error, got: %v", err)
	}
}

// --- Set ---

func TestSet_Coordinates(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"latitude", "53.3498", false},
		{"latitude", "-90", false},
		{"latitude", "0", false},
		{"latitude", "90.5", true},
		{"latitude", "north", true},
		{"latitude", "NaN", true},
		{"longitude", "+Inf", true},
		{"longitude", "-6.2603", false},
		{"longitude", "180", false},
		{"longitude", "-180.1", true},
		{"longitude", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSet_Timezone(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("timezone", "UTC"); err != nil {
		t.Fatalf("Set timezone UTC: %v", err)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if err := cfg.Set("timezone", "Mars/Olympus"); err == nil {
		t.Error("expected error for unknown timezone")
	}
	if err := cfg.Set("timezone", ""); err == nil {
		t.Error("expected error for empty timezone")
	}
}

func TestSet_Method(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{"mwl", "mwl", false},
		{"ISNA", "isna", false},
		{" Moonsighting ", "moonsighting", false},
		{"other", "other", false},
		{"3", "", true},
		{"jafari", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("method", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(method, %q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if cfg.Method != tt.want {
				t.Errorf("Method = %q, want %q", cfg.Method, tt.want)
			}
		})
	}
}

func TestSet_Madhab(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("madhab", "Hanafi"); err != nil {
		t.Fatalf("Set madhab: %v", err)
	}
	if cfg.Madhab != "hanafi" {
		t.Errorf("Madhab = %q, want %q", cfg.Madhab, "hanafi")
	}
	if err := cfg.Set("madhab", "maliki"); err == nil {
		t.Error("expected error for unknown madhab")
	}
}

func TestSet_HighLatitudeRule(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("high_latitude_rule", "seventh"); err != nil {
		t.Fatalf("Set high_latitude_rule: %v", err)
	}
	if cfg.HighLatitudeRule != "seventh_of_the_night" {
		t.Errorf("HighLatitudeRule = %q, want %q", cfg.HighLatitudeRule, "seventh_of_the_night")
	}
	if err := cfg.Set("high_latitude_rule", "none"); err == nil {
		t.Error("expected error for unknown rule")
	}
}

func TestSet_Angles(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"fajr_angle", "18", false},
		{"fajr_angle", "19.5", false},
		{"fajr_angle", "0", true},
		{"fajr_angle", "-3", true},
		{"fajr_angle", "31", true},
		{"isha_angle", "17", false},
		{"isha_angle", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSet_IshaInterval(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("isha_interval", "90"); err != nil {
		t.Fatalf("Set isha_interval: %v", err)
	}
	if cfg.IshaInterval == nil || *cfg.IshaInterval != 90 {
		t.Errorf("IshaInterval = %v, want 90", cfg.IshaInterval)
	}
	for _, bad := range []string{"-1", "301", "1.5", "ninety"} {
		if err := cfg.Set("isha_interval", bad); err == nil {
			t.Errorf("Set(isha_interval, %q) should fail", bad)
		}
	}
}

func TestSet_Adjustments(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("adjustments", "1, 0, -2, 0, 3, 0"); err != nil {
		t.Fatalf("Set adjustments: %v", err)
	}
	if cfg.Adjustments != "1,0,-2,0,3,0" {
		t.Errorf("Adjustments = %q, want canonical form", cfg.Adjustments)
	}
	if err := cfg.Set("adjustments", "1,2,3"); err == nil {
		t.Error("expected error for short adjustments list")
	}
}

func TestSet_TimeFormat(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"12h", false},
		{"24h", false},
		{"12", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("time_format", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(time_format, %q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSet_Prayers(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("prayers", "Fajr, Maghrib,Midnight"); err != nil {
		t.Fatalf("Set prayers: %v", err)
	}
	if cfg.Prayers != "Fajr,Maghrib,Midnight" {
		t.Errorf("Prayers = %q", cfg.Prayers)
	}

	if err := cfg.Set("prayers", "Fajr,Brunch"); err == nil {
		t.Error("expected error for invalid prayer name")
	}
	if err := cfg.Set("prayers", " , "); err == nil {
		t.Error("expected error for empty prayer list")
	}
}

func TestSet_UnknownKey(t *testing.T) {
	cfg := &Config{}
	err := cfg.Set("school", "1")
	if err == nil {
		t.Fatal("Set unknown key should return error")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("unexpected error: %v", err)
	}
}

// --- Get ---

func TestGet_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	for _, key := range ValidKeys {
		v, err := cfg.Get(key)
		if err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
		}
		if v != "" {
			t.Errorf("Get(%q) on empty config = %q, want empty", key, v)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.Get("nope"); err == nil {
		t.Error("Get unknown key should return error")
	}
}

func TestGet_ZeroValues(t *testing.T) {
	cfg := &Config{Latitude: floatPtr(0), IshaInterval: intPtr(0)}

	if v, _ := cfg.Get("latitude"); v != "0" {
		t.Errorf("Get(latitude) = %q, want %q", v, "0")
	}
	if v, _ := cfg.Get("isha_interval"); v != "0" {
		t.Errorf("Get(isha_interval) = %q, want %q", v, "0")
	}
}

// --- Helpers ---

func TestValidKeys_ContainsExpected(t *testing.T) {
	expected := []string{
		"city", "country", "latitude", "longitude", "timezone",
		"method", "madhab", "high_latitude_rule",
		"fajr_angle", "isha_angle", "isha_interval", "adjustments",
		"time_format", "prayers", "cache_dir",
	}

	keySet := make(map[string]bool)
	for _, k := range ValidKeys {
		keySet[k] = true
	}
	for _, k := range expected {
		if !keySet[k] {
			t.Errorf("ValidKeys missing %q", k)
		}
	}
}

func TestCoordinates_Partial(t *testing.T) {
	cfg := &Config{Latitude: floatPtr(21.4)}
	if _, ok := cfg.Coordinates(); ok {
		t.Error("latitude alone should not count as coordinates")
	}
}

func TestTimeLayout(t *testing.T) {
	if got := (&Config{TimeFormat: "12h"}).TimeLayout(); got != "3:04 PM" {
		t.Errorf("12h layout = %q", got)
	}
	if got := (&Config{}).TimeLayout(); got != "15:04" {
		t.Errorf("default layout = %q", got)
	}
}

func TestPrayerNames(t *testing.T) {
	if got := (&Config{}).PrayerNames(); len(got) != len(prayer.DefaultPrayerNames) {
		t.Errorf("default PrayerNames = %v", got)
	}
	got := (&Config{Prayers: "Fajr,Isha"}).PrayerNames()
	if len(got) != 2 || got[0] != "Fajr" || got[1] != "Isha" {
		t.Errorf("PrayerNames = %v, want [Fajr Isha]", got)
	}
}

func TestConfig_OmitEmpty_JSON(t *testing.T) {
	raw, err := json.Marshal(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "{}" {
		t.Errorf("empty config JSON = %s, want {}", raw)
	}
}

// --- Environment ---

func TestEnvName(t *testing.T) {
	if got := EnvName("high_latitude_rule"); got != "PRAYER_TIMES_HIGH_LATITUDE_RULE" {
		t.Errorf("EnvName = %q", got)
	}
}

func TestApplyEnv_FillsUnsetKeys(t *testing.T) {
	env := map[string]string{
		"PRAYER_TIMES_CITY":     "Oslo",
		"PRAYER_TIMES_METHOD":   "ISNA",
		"PRAYER_TIMES_LATITUDE": "59.9139",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{City: "Bergen"}
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv error: %v", err)
	}
	if cfg.City != "Bergen" {
		t.Errorf("City = %q, file value should win", cfg.City)
	}
	if cfg.Method != "isna" {
		t.Errorf("Method = %q, want %q", cfg.Method, "isna")
	}
	if cfg.Latitude == nil || *cfg.Latitude != 59.9139 {
		t.Errorf("Latitude = %v, want 59.9139", cfg.Latitude)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "PRAYER_TIMES_MADHAB" {
			return "zahiri", true
		}
		return "", false
	}

	err := (&Config{}).ApplyEnv(lookup)
	if err == nil {
		t.Fatal("expected error for invalid env value")
	}
	if !strings.Contains(err.Error(), "PRAYER_TIMES_MADHAB") {
		t.Errorf("error should name the variable, got: %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PRAYER_TIMES_TEST_CITY=Medina\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PRAYER_TIMES_TEST_CITY") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile error: %v", err)
	}
	if got := os.Getenv("PRAYER_TIMES_TEST_CITY"); got != "Medina" {
		t.Errorf("PRAYER_TIMES_TEST_CITY = %q, want %q", got, "Medina")
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing .env should not error, got: %v", err)
	}
}

// --- Resolve ---

func TestResolve_MethodDefaults(t *testing.T) {
	p := (&Config{Method: "ireland"}).Resolve()

	if p.Method != prayer.MethodIreland {
		t.Errorf("Method = %v, want ireland", p.Method)
	}
	if p.Madhab != prayer.Hanafi {
		t.Errorf("Madhab = %v, method default hanafi should survive", p.Madhab)
	}
	if p.FajrAngle != 16 || p.IshaAngle != 14 {
		t.Errorf("angles = %v/%v, want 16/14", p.FajrAngle, p.IshaAngle)
	}
}

func TestResolve_EmptyIsMWL(t *testing.T) {
	p := (&Config{}).Resolve()
	if p.Method != prayer.MethodMuslimWorldLeague {
		t.Errorf("Method = %v, want mwl", p.Method)
	}
}

func TestResolve_Overrides(t *testing.T) {
	cfg := &Config{
		Method:           "makkah",
		Madhab:           "hanafi",
		HighLatitudeRule: "twilight_angle",
		IshaAngle:        floatPtr(17),
		Adjustments:      "0,0,2,0,0,0",
	}
	p := cfg.Resolve()

	if p.Madhab != prayer.Hanafi {
		t.Errorf("Madhab = %v, want hanafi", p.Madhab)
	}
	if p.HighLatitudeRule != prayer.TwilightAngle {
		t.Errorf("HighLatitudeRule = %v, want twilight_angle", p.HighLatitudeRule)
	}
	if p.IshaAngle != 17 || p.IshaInterval != 0 {
		t.Errorf("isha = %v deg / %d min, angle override should clear the interval", p.IshaAngle, p.IshaInterval)
	}
	if p.FajrAngle != 18.5 {
		t.Errorf("FajrAngle = %v, want method default 18.5", p.FajrAngle)
	}
	if p.Adjustments.Dhuhr != 2 {
		t.Errorf("Adjustments.Dhuhr = %d, want 2", p.Adjustments.Dhuhr)
	}
}

func TestResolve_OtherWithoutAngles(t *testing.T) {
	p := (&Config{Method: "other"}).Resolve()
	if p.Method != prayer.MethodOther {
		t.Errorf("Method = %v, want other", p.Method)
	}
	if p.FajrAngle != 18 || p.IshaAngle != 17 {
		t.Errorf("angles = %v/%v, want fallback 18/17", p.FajrAngle, p.IshaAngle)
	}
}

func TestResolve_UnknownValuesFallBack(t *testing.T) {
	p := (&Config{Method: "legacy", Madhab: "x", FajrAngle: floatPtr(15), IshaInterval: intPtr(80)}).Resolve()

	if p.Method != prayer.MethodOther {
		t.Errorf("Method = %v, want other", p.Method)
	}
	if p.Madhab != prayer.Shafi {
		t.Errorf("Madhab = %v, want shafi", p.Madhab)
	}
	if p.FajrAngle != 15 || p.IshaInterval != 80 {
		t.Errorf("overrides lost: fajr %v, interval %d", p.FajrAngle, p.IshaInterval)
	}
}

// --- Integration ---

func TestSetSaveLoadGet_Integration(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	pairs := map[string]string{
		"city":          "London",
		"latitude":      "51.5074",
		"longitude":     "-0.1278",
		"method":        "moonsighting",
		"isha_interval": "75",
		"time_format":   "12h",
	}
	for k, v := range pairs {
		if err := cfg.Set(k, v); err != nil {
			t.Fatalf("Set(%q, %q): %v", k, v, err)
		}
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	for k, want := range pairs {
		got, err := loaded.Get(k)
		if err != nil {
			t.Fatalf("Get(%q): %v", k, err)
		}
		if got != want {
			t.Errorf("Get(%q) = %q, want %q", k, got, want)
		}
	}

	p := loaded.Resolve()
	if p.Method != prayer.MethodMoonsightingCommittee || p.IshaInterval != 75 {
		t.Errorf("Resolve() = %+v", p)
	}
}
