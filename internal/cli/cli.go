package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkrank/pkg/buildinfo"
	"github.com/matzehuels/linkrank/pkg/cache"
	"github.com/matzehuels/linkrank/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "linkrank"
)

// Cache backend names accepted by --cache.
const (
	cacheModeFile  = "file"
	cacheModeRedis = "redis"
	cacheModeOff   = "off"
)

// =============================================================================
// Execute - CLI Entry Point
// =============================================================================

// Execute runs the linkrank CLI and returns an error if any command fails.
//
// The root command wires all subcommands (rank, export, serve, cache,
// completion), loads the optional TOML config file, and attaches a logger
// to the command context. With --verbose (-v) the logger switches to debug
// level.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cli := &CLI{Config: DefaultConfig()}

	root := &cobra.Command{
		Use:          appName,
		Short:        "Linkrank estimates page ranks of link graphs",
		Long:         `Linkrank reads a web-link graph from an edge-list file and estimates the rank of every page, either by counting visits of a random surfer or by iterating the rank distribution to its fixed point.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			cli.Config = cfg

			level := LogInfo
			if verbose {
				level = LogDebug
			}
			cli.Logger = newLogger(os.Stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), cli.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/linkrank/config.toml)")

	root.AddCommand(cli.rankCommand())
	root.AddCommand(cli.exportCommand())
	root.AddCommand(cli.serveCommand())
	root.AddCommand(cli.cacheCommand())
	root.AddCommand(cli.completionCommand())

	return root.ExecuteContext(ctx)
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the selected cache mode.
func (c *CLI) newRunner(ctx context.Context, cacheMode string) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, cacheMode)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, mode string) (cache.Cache, error) {
	switch mode {
	case cacheModeOff:
		return cache.NewNullCache(), nil
	case cacheModeRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	case cacheModeFile, "":
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (must be one of: file, redis, off)", mode)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/linkrank/).
// A cache_dir config value takes precedence.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
