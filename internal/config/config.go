package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Formats lists the supported output formats.
var Formats = []string{"html", "json", "markdown"}

// Config represents the chronicle configuration.
type Config struct {
	Branch         string        `json:"branch"`
	Format         string        `json:"format"`
	Theme          string        `json:"theme"`
	Title          string        `json:"title,omitempty"`
	APIURL         string        `json:"apiURL"`
	WebURL         string        `json:"webURL"`
	IntervalMs     int           `json:"intervalMs"`
	TimeoutSeconds int           `json:"timeoutSeconds"`
	Cache          CacheConfig   `json:"cache"`
	Privacy        PrivacyConfig `json:"privacy"`

	// Token is the GitHub API credential. It comes from GITHUB_TOKEN only.
	Token string `json:"-"`
}

// CacheConfig controls the commit detail cache.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls patch redaction.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Branch:         "main",
		Format:         "html",
		Theme:          "github",
		APIURL:         "https://api.github.com",
		WebURL:         "https://github.com",
		IntervalMs:     150,
		TimeoutSeconds: 30,
	}
}

// Interval is the spacing between API requests.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Timeout bounds a single API request.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConfigDir returns the platform-appropriate config directory for chronicle.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chronicle"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "chronicle"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "chronicle"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "chronicle"), nil
	default:
		return filepath.Join(home, ".config", "chronicle"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile decodes the config file over Default. Keys the file omits keep
// their defaults; keys it sets win even when zero. A missing file yields
// Default.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a run.
func Validate(cfg Config) error {
	if cfg.Branch == "" {
		return fmt.Errorf("branch must not be empty")
	}
	if !validFormat(cfg.Format) {
		return fmt.Errorf("unsupported format %q (want one of %v)", cfg.Format, Formats)
	}
	if cfg.IntervalMs < 0 {
		return fmt.Errorf("intervalMs must not be negative")
	}
	if cfg.TimeoutSeconds < 0 {
		return fmt.Errorf("timeoutSeconds must not be negative")
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("CHRONICLE_BRANCH"); v != "" {
		cfg.Branch = v
	}
	if v := os.Getenv("CHRONICLE_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CHRONICLE_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("CHRONICLE_INTERVAL_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHRONICLE_INTERVAL_MS must be an integer: %w", err)
		}
		cfg.IntervalMs = n
	}
	if v := os.Getenv("CHRONICLE_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHRONICLE_TIMEOUT must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for _, key := range []string{"branch", "format", "theme", "title", "apiURL", "intervalMs", "timeoutSeconds", "cache", "redactSecrets"} {
		v, ok := overrides[key]
		if !ok || v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "branch":
		cfg.Branch = value
	case "format":
		if !validFormat(value) {
			return fmt.Errorf("unsupported format %q (want one of %v)", value, Formats)
		}
		cfg.Format = value
	case "theme":
		cfg.Theme = value
	case "title":
		cfg.Title = value
	case "apiURL":
		cfg.APIURL = value
	case "webURL":
		cfg.WebURL = value
	case "intervalMs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("intervalMs must be an integer: %w", err)
		}
		cfg.IntervalMs = n
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "cache", "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	case "redactSecrets", "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
