package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/ratelens-cli/internal/utils"
	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

const (
	appDir     = ".ratelens"
	envPrefix  = "RATELENS"
	dotEnvFile = ".env"
)

// Global configuration structure.
type Global struct {
	// Dataset cache
	CacheBackend string `mapstructure:"cache_backend" yaml:"cache_backend"`
	CacheDir     string `mapstructure:"cache_dir" yaml:"cache_dir"`
	CacheDSN     string `mapstructure:"cache_dsn" yaml:"cache_dsn"`

	// Parsing and presentation
	Locale               string        `mapstructure:"locale" yaml:"locale"`
	Timezone             string        `mapstructure:"timezone" yaml:"timezone"`
	UnknownPlatformLabel string        `mapstructure:"unknown_platform_label" yaml:"unknown_platform_label"`
	Columns              votes.Columns `mapstructure:"columns" yaml:"columns"`

	// Enrichment
	LookupURL        string `mapstructure:"lookup_url" yaml:"lookup_url"`
	EnrichSampleSize int    `mapstructure:"enrich_sample_size" yaml:"enrich_sample_size"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

// Location resolves Timezone. Empty or "Local" means the system zone.
func (c *Global) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// NormalizeOptions builds the row normalizer settings.
func (c *Global) NormalizeOptions() (votes.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return votes.Options{}, err
	}
	return votes.Options{Columns: c.Columns, Location: loc}, nil
}

// Dir returns ~/.ratelens.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, appDir), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.ratelens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults. A .env file in the
// working directory is read first and never overrides variables already set.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", dotEnvFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("cache_backend", "file")
	v.SetDefault("cache_dir", "")
	v.SetDefault("cache_dsn", "")
	v.SetDefault("locale", "en")
	v.SetDefault("timezone", "Local")
	v.SetDefault("unknown_platform_label", "")
	cols := votes.DefaultColumns()
	v.SetDefault("columns.id", cols.ID)
	v.SetDefault("columns.title", cols.Title)
	v.SetDefault("columns.year", cols.Year)
	v.SetDefault("columns.alt_title", cols.AltTitle)
	v.SetDefault("columns.platform", cols.Platform)
	v.SetDefault("columns.rating", cols.Rating)
	v.SetDefault("columns.placed", cols.Placed)
	v.SetDefault("lookup_url", "http://localhost:8787/igdb/games")
	v.SetDefault("enrich_sample_size", 10)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(dir, "cache")
	}
	if c.CacheDir, err = utils.ExpandHome(c.CacheDir); err != nil {
		return nil, err
	}
	c.Locale = strings.ToLower(strings.TrimSpace(c.Locale))
	return &c, nil
}
