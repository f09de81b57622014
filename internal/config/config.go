package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"practicelog/internal/calendar"
)

const (
	DefaultAPIURL        = "http://127.0.0.1:7410"
	DefaultDBFileName    = ".practicelog.db"
	DefaultLogLevel      = "info"
	DefaultTimezone      = calendar.DefaultTimezone
	DefaultTokenTTLHours = 24

	configFileName  = ".practicelog.toml"
	dotEnvFileName  = ".env"
	configDirEnvKey = "PRACTICELOG_CONFIG_DIR"

	apiURLEnvKey      = "PRACTICELOG_API_URL"
	dbPathEnvKey      = "PRACTICELOG_DB"
	timezoneEnvKey    = "PRACTICELOG_TIMEZONE"
	tokenSecretEnvKey = "PRACTICELOG_TOKEN_SECRET"
)

// AuthConfig defines bearer token settings for the HTTP API.
type AuthConfig struct {
	TokenSecret   string `toml:"token_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// Config defines runtime configuration for practicelog.
type Config struct {
	APIURL   string     `toml:"api_url"`
	DBPath   string     `toml:"db_path"`
	LogLevel string     `toml:"log_level"`
	Timezone string     `toml:"timezone"`
	Auth     AuthConfig `toml:"auth"`

	// DotEnvPath is the .env file that was loaded, if any.
	DotEnvPath string `toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		DBPath:   "",
		LogLevel: DefaultLogLevel,
		Timezone: DefaultTimezone,
		Auth: AuthConfig{
			TokenTTLHours: DefaultTokenTTLHours,
		},
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

// loadDotEnv loads a .env from the working directory. Variables already set in the
// process environment win over the file.
func loadDotEnv() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil
	}
	path := filepath.Join(cwd, dotEnvFileName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if info.IsDir() {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return "", fmt.Errorf("failed to load %s: %w", path, err)
	}
	return path, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"log_level",
	"timezone",
	"auth.token_secret",
	"auth.token_ttl_hours",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "timezone":
		return c.Timezone, nil
	case "auth.token_secret":
		return c.Auth.TokenSecret, nil
	case "auth.token_ttl_hours":
		return strconv.Itoa(c.Auth.TokenTTLHours), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads .env, the global config file and env overrides, in that order of
// increasing precedence for each key.
func Load() (*Config, error) {
	dotEnvPath, err := loadDotEnv()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.DotEnvPath = dotEnvPath

	path, err := GlobalPath()
	if err == nil {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if apiURL := os.Getenv(apiURLEnvKey); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv(dbPathEnvKey); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if tz := strings.TrimSpace(os.Getenv(timezoneEnvKey)); tz != "" {
		cfg.Timezone = tz
	}
	if secret := os.Getenv(tokenSecretEnvKey); secret != "" {
		cfg.Auth.TokenSecret = secret
	}

	cfg.normalizeDefaults()
	return &cfg, nil
}

// Validate rejects values that would fail later at runtime.
func (c *Config) Validate() error {
	if _, err := calendar.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	if strings.TrimSpace(c.APIURL) != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid api_url %q", c.APIURL)
		}
	}
	if c.Auth.TokenTTLHours < 0 {
		return fmt.Errorf("auth.token_ttl_hours must not be negative")
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return calendar.LoadLocation(c.Timezone)
}

// TokenTTL returns the configured token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTLHours <= 0 {
		return DefaultTokenTTLHours * time.Hour
	}
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "auth.token_ttl_hours":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "log_level":
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", value)
		}
		return value, nil
	case "timezone":
		if _, err := calendar.LoadLocation(value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func (c *Config) normalizeDefaults() {
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = DefaultTimezone
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = DefaultTokenTTLHours
	}
}
