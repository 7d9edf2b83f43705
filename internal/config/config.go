// Package config resolves runtime settings from an optional TOML file, a
// .env file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the resolved configuration handed to every collaborator.
type Config struct {
	// Riot API
	RiotAPIKey     string
	RiotBaseURL    string
	RequestTimeout time.Duration
	BatchSize      int
	BatchDelay     time.Duration
	MatchCount     int

	// Narrative
	AnthropicAPIKey string
	AnthropicModel  string
	DataDragonURL   string
	Locale          string

	// Storage
	DBPath string

	// Server
	Addr           string
	AllowedOrigins []string

	// Timezone is an IANA name used to bucket game start times. Empty means
	// the host's local zone.
	Timezone string
}

// FileConfig is the TOML file layout. Pointer fields distinguish "unset"
// from a zero value.
type FileConfig struct {
	Riot      RiotConfig      `toml:"riot"`
	Narrative NarrativeConfig `toml:"narrative"`
	Server    ServerConfig    `toml:"server"`
	DBPath    *string         `toml:"db"`
	Timezone  *string         `toml:"timezone"`
}

// RiotConfig maps the [riot] table.
type RiotConfig struct {
	APIKey     *string `toml:"api-key"`
	BaseURL    *string `toml:"base-url"`
	Timeout    *string `toml:"timeout"`
	BatchSize  *int    `toml:"batch-size"`
	BatchDelay *string `toml:"batch-delay"`
	MatchCount *int    `toml:"match-count"`
}

// NarrativeConfig maps the [narrative] table.
type NarrativeConfig struct {
	APIKey        *string `toml:"api-key"`
	Model         *string `toml:"model"`
	DataDragonURL *string `toml:"ddragon-url"`
	Locale        *string `toml:"locale"`
}

// ServerConfig maps the [server] table.
type ServerConfig struct {
	Addr           *string  `toml:"addr"`
	AllowedOrigins []string `toml:"allowed-origins"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		RiotBaseURL:    "https://americas.api.riotgames.com",
		RequestTimeout: 15 * time.Second,
		BatchSize:      15,
		BatchDelay:     1100 * time.Millisecond,
		MatchCount:     20,
		AnthropicModel: "claude-sonnet-4-20250514",
		DataDragonURL:  "https://ddragon.leagueoflegends.com",
		Locale:         "en_US",
		DBPath:         DefaultDBPath(),
		Addr:           ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// Load builds a Config from defaults, the TOML file at path (missing is
// fine), any .env file in the working directory, then the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := fc.apply(&cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	// godotenv never overrides variables already set in the environment.
	_ = godotenv.Load()

	applyEnv(&cfg)

	if cfg.MatchCount <= 0 || cfg.MatchCount > 100 {
		return nil, fmt.Errorf("match count must be in 1..100, got %d", cfg.MatchCount)
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("timezone: %w", err)
		}
	}
	return &cfg, nil
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) error {
	setString(&cfg.RiotAPIKey, fc.Riot.APIKey)
	setString(&cfg.RiotBaseURL, fc.Riot.BaseURL)
	setInt(&cfg.BatchSize, fc.Riot.BatchSize)
	setInt(&cfg.MatchCount, fc.Riot.MatchCount)
	if err := setDuration(&cfg.RequestTimeout, fc.Riot.Timeout); err != nil {
		return fmt.Errorf("riot.timeout: %w", err)
	}
	if err := setDuration(&cfg.BatchDelay, fc.Riot.BatchDelay); err != nil {
		return fmt.Errorf("riot.batch-delay: %w", err)
	}

	setString(&cfg.AnthropicAPIKey, fc.Narrative.APIKey)
	setString(&cfg.AnthropicModel, fc.Narrative.Model)
	setString(&cfg.DataDragonURL, fc.Narrative.DataDragonURL)
	setString(&cfg.Locale, fc.Narrative.Locale)

	setString(&cfg.Addr, fc.Server.Addr)
	if len(fc.Server.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.Server.AllowedOrigins
	}

	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.Timezone, fc.Timezone)
	return nil
}

func applyEnv(cfg *Config) {
	cfg.RiotAPIKey = getEnv("RIOT_API_KEY", cfg.RiotAPIKey)
	cfg.RiotBaseURL = getEnv("LOLWRAPPED_RIOT_BASE_URL", cfg.RiotBaseURL)
	cfg.RequestTimeout = getEnvDuration("LOLWRAPPED_TIMEOUT", cfg.RequestTimeout)
	cfg.BatchSize = getEnvInt("LOLWRAPPED_BATCH_SIZE", cfg.BatchSize)
	cfg.BatchDelay = getEnvDuration("LOLWRAPPED_BATCH_DELAY", cfg.BatchDelay)
	cfg.MatchCount = getEnvInt("LOLWRAPPED_MATCH_COUNT", cfg.MatchCount)

	cfg.AnthropicAPIKey = getEnv("CLAUDE_API_KEY", cfg.AnthropicAPIKey)
	cfg.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	cfg.AnthropicModel = getEnv("LOLWRAPPED_MODEL", cfg.AnthropicModel)
	cfg.DataDragonURL = getEnv("LOLWRAPPED_DDRAGON_URL", cfg.DataDragonURL)
	cfg.Locale = getEnv("LOLWRAPPED_LOCALE", cfg.Locale)

	cfg.DBPath = getEnv("LOLWRAPPED_DB", cfg.DBPath)
	cfg.Addr = getEnv("LOLWRAPPED_ADDR", cfg.Addr)
	cfg.Timezone = getEnv("LOLWRAPPED_TIMEZONE", cfg.Timezone)

	if origins := os.Getenv("LOLWRAPPED_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
}

// Location returns the configured timezone, or time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
