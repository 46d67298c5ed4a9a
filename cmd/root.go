package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/ratelens-cli/internal/cache"
	cfgpkg "github.com/KaramelBytes/ratelens-cli/internal/config"
	"github.com/KaramelBytes/ratelens-cli/internal/i18n"
	"github.com/KaramelBytes/ratelens-cli/internal/insights"
	"github.com/KaramelBytes/ratelens-cli/internal/lookup"
	"github.com/KaramelBytes/ratelens-cli/internal/parser"
	"github.com/KaramelBytes/ratelens-cli/internal/utils"
)

var (
	cfgFile  string
	debug    bool
	flagLang string
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = utils.NewLogger(false)
)

var rootCmd = &cobra.Command{
	Use:   "ratelens",
	Short: "RateLens: statistics and a gamer profile from your game rating exports",
	Long: `RateLens reads a CSV export of your game ratings, caches it locally and derives
per-year summaries, overall statistics, a rating trend and a narrative gamer profile.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ratelens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "narrative language: en | nl (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() error {
	logger = utils.NewLogger(debug)
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("lang") && flagLang != "" {
		cfg.Locale = flagLang
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
	logger.Debug("config loaded: backend=%s cache_dir=%s locale=%s", cfg.CacheBackend, cfg.CacheDir, cfg.Locale)
	return nil
}

// phrasebook returns the catalog for the configured locale.
func phrasebook() *i18n.Catalog {
	cat, ok := i18n.Lookup(cfg.Locale)
	if !ok {
		fmt.Fprintf(os.Stderr, "⚠ Warning: unsupported locale %q, using en\n", cfg.Locale)
	}
	return cat
}

// openStore builds a store backed by the configured cache. With persist
// false the store neither reads nor writes the cache. The returned func
// releases the cache.
func openStore(ctx context.Context, persist bool) (*insights.Store, func(), error) {
	nopt, err := cfg.NormalizeOptions()
	if err != nil {
		return nil, nil, err
	}
	var repo cache.Repository
	closer := func() {}
	if persist {
		repo, err = cache.Open(ctx, cfg.CacheBackend, cfg.CacheDir, cfg.CacheDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		closer = func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close cache: %v", err)
			}
		}
	}
	st := insights.New(repo, insights.Options{
		Normalize:       nopt,
		Phrasebook:      phrasebook(),
		UnknownPlatform: cfg.UnknownPlatformLabel,
		Logger:          logger,
	})
	return st, closer, nil
}

// restoreOrWarn replays the cached dataset, downgrading failures to warnings.
func restoreOrWarn(ctx context.Context, st *insights.Store) bool {
	ok, err := st.Restore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: unable to restore cached dataset: %v\n", err)
		return false
	}
	return ok
}

// datasetStore loads path without touching the cache, or restores the cached
// dataset when path is empty.
func datasetStore(ctx context.Context, path string) (*insights.Store, func(), error) {
	st, closer, err := openStore(ctx, path == "")
	if err != nil {
		return nil, nil, err
	}
	if path != "" {
		text, err := parser.ReadFile(path)
		if err == nil {
			err = st.LoadText(ctx, text, baseName(path))
		}
		if err != nil {
			closer()
			return nil, nil, err
		}
		return st, closer, nil
	}
	if !restoreOrWarn(ctx, st) {
		closer()
		return nil, nil, errNoDataset
	}
	return st, closer, nil
}

func newLookupClient() *lookup.Client {
	return lookup.NewClient(cfg.LookupURL,
		time.Duration(cfg.HTTPTimeoutSec)*time.Second,
		cfg.RetryMaxAttempts,
		time.Duration(cfg.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(cfg.RetryMaxDelayMs)*time.Millisecond)
}
