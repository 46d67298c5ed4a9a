package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/ratelens-cli/internal/cache"
	cfgpkg "github.com/KaramelBytes/ratelens-cli/internal/config"
	"github.com/KaramelBytes/ratelens-cli/internal/i18n"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set RateLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "cache_backend: %s\n", cfg.CacheBackend)
		fmt.Fprintf(out, "cache_dir: %s\n", cfg.CacheDir)
		if cfg.CacheDSN != "" {
			fmt.Fprintf(out, "cache_dsn: %s\n", maskDSN(cfg.CacheDSN))
		}
		fmt.Fprintf(out, "locale: %s\n", cfg.Locale)
		fmt.Fprintf(out, "timezone: %s\n", cfg.Timezone)
		if cfg.UnknownPlatformLabel != "" {
			fmt.Fprintf(out, "unknown_platform_label: %s\n", cfg.UnknownPlatformLabel)
		}
		c := cfg.Columns
		for _, kv := range []struct {
			key  string
			vals []string
		}{
			{"id", c.ID}, {"title", c.Title}, {"year", c.Year}, {"alt_title", c.AltTitle},
			{"platform", c.Platform}, {"rating", c.Rating}, {"placed", c.Placed},
		} {
			fmt.Fprintf(out, "columns.%s: %s\n", kv.key, strings.Join(kv.vals, ", "))
		}
		fmt.Fprintf(out, "lookup_url: %s\n", cfg.LookupURL)
		fmt.Fprintf(out, "enrich_sample_size: %d\n", cfg.EnrichSampleSize)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		fmt.Fprintf(out, "retry_base_delay_ms: %d\n", cfg.RetryBaseDelayMs)
		fmt.Fprintf(out, "retry_max_delay_ms: %d\n", cfg.RetryMaxDelayMs)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "cache_backend":
		switch strings.ToLower(val) {
		case cache.BackendFile, cache.BackendSQLite, cache.BackendPostgres:
			c.CacheBackend = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid cache_backend: %s (use file|sqlite|postgres)", val)
		}
	case "cache_dir":
		c.CacheDir = val
	case "cache_dsn":
		c.CacheDSN = val
	case "locale":
		lang := strings.ToLower(val)
		if _, ok := i18n.Lookup(lang); !ok {
			return fmt.Errorf("invalid locale: %s (use %s)", val, strings.Join(i18n.Languages(), "|"))
		}
		c.Locale = lang
	case "timezone":
		old := c.Timezone
		c.Timezone = val
		if _, err := c.Location(); err != nil {
			c.Timezone = old
			return err
		}
	case "unknown_platform_label":
		c.UnknownPlatformLabel = val
	case "lookup_url":
		c.LookupURL = val
	case "enrich_sample_size", "http_timeout_sec", "retry_max_attempts", "retry_base_delay_ms", "retry_max_delay_ms":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "enrich_sample_size":
			c.EnrichSampleSize = i
		case "http_timeout_sec":
			c.HTTPTimeoutSec = i
		case "retry_max_attempts":
			c.RetryMaxAttempts = i
		case "retry_base_delay_ms":
			c.RetryBaseDelayMs = i
		case "retry_max_delay_ms":
			c.RetryMaxDelayMs = i
		}
	default:
		field, ok := strings.CutPrefix(key, "columns.")
		if !ok {
			return fmt.Errorf("unknown key: %s", key)
		}
		return setColumn(c, field, splitList(val))
	}
	return nil
}

func setColumn(c *cfgpkg.Global, field string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("columns.%s needs at least one header name", field)
	}
	switch field {
	case "id":
		c.Columns.ID = names
	case "title":
		c.Columns.Title = names
	case "year":
		c.Columns.Year = names
	case "alt_title":
		c.Columns.AltTitle = names
	case "platform":
		c.Columns.Platform = names
	case "rating":
		c.Columns.Rating = names
	case "placed":
		c.Columns.Placed = names
	default:
		return fmt.Errorf("unknown column: %s", field)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// maskDSN hides the password in a connection string.
func maskDSN(s string) string {
	if i := strings.Index(s, "://"); i >= 0 {
		rest := s[i+3:]
		if at := strings.Index(rest, "@"); at >= 0 {
			if colon := strings.Index(rest[:at], ":"); colon >= 0 {
				return s[:i+3] + rest[:colon+1] + "****" + rest[at:]
			}
		}
	}
	fields := strings.Fields(s)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
