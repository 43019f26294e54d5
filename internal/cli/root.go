// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/salesbrief/internal/config"
	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/logging"
	"github.com/jeranaias/salesbrief/internal/query"
	"github.com/jeranaias/salesbrief/internal/submit"
	"github.com/jeranaias/salesbrief/internal/ui/app"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	apiURL     string
}

// env is built once per invocation by the root PersistentPreRunE.
type env struct {
	flags   globalFlags
	cfg     *config.Config
	cfgPath string
	logger  *logging.Logger
	client  *insight.Client
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "salesbrief",
		Short: "AI-generated sales briefs in your terminal",
		Long: `salesbrief requests sales-insight briefs for a company from the insight
service and renders them section by section.

Run without arguments to start the interactive dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTUI(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.flags.configPath, "config", "", "config file (default ~/.salesbrief/config.toml)")
	pf.BoolVarP(&e.flags.verbose, "verbose", "v", false, "log at debug level")
	pf.StringVar(&e.flags.apiURL, "api-url", "", "insight service base URL (overrides config)")

	root.AddCommand(
		newBriefCommand(e),
		newHistoryCommand(e),
		newCacheCommand(e),
		newStatusCommand(e),
		newConfigCommand(e),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitCodeFor(err)
	}
	return ExitSuccess
}

// =============================================================================
// SETUP
// =============================================================================

func (e *env) setup() error {
	cfg, path, err := e.loadConfig()
	if err != nil {
		return err
	}
	if e.flags.apiURL != "" {
		cfg.Service.BaseURL = e.flags.apiURL
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --api-url: %w", err)
		}
	}
	e.cfg, e.cfgPath = cfg, path

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	e.logger, err = logging.New(logging.Options{
		Path:       logPath,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Verbose:    e.flags.verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	e.client = insight.NewClient(&insight.ClientConfig{
		BaseURL:           cfg.Service.BaseURL,
		Timeout:           cfg.Service.Timeout(),
		RequestsPerMinute: cfg.Service.RequestsPerMinute,
		UserAgent:         cfg.Service.UserAgent,
	}).WithLogger(e.logger.Logger)

	e.logger.Debug("configured",
		zap.String("config", path),
		zap.String("base_url", cfg.Service.BaseURL),
		zap.String("version", Version))
	return nil
}

// loadConfig honours --config. A missing explicit file yields defaults so
// that `config set --config new.toml` can create it.
func (e *env) loadConfig() (*config.Config, string, error) {
	if e.flags.configPath == "" {
		return config.Load()
	}
	path := e.flags.configPath
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, "", fmt.Errorf("invalid config: %w", err)
		}
		return cfg, path, nil
	}
	cfg, err := config.LoadFromPath(path)
	return cfg, path, err
}

func (e *env) close() {
	if e.logger != nil {
		_ = e.logger.Close()
	}
}

// newCache builds the per-invocation insight cache.
func (e *env) newCache() *submit.Cache {
	return submit.NewCache(e.client, query.WithLogger(e.logger.Logger))
}

// =============================================================================
// INTERACTIVE MODE
// =============================================================================

func (e *env) runTUI(cmd *cobra.Command) error {
	theme := styles.NewTheme()
	exportDir, err := e.cfg.BriefDir()
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), app.Options{
		Cache:        e.newCache(),
		Clearer:      e.client,
		Theme:        theme,
		Logger:       e.logger.Logger,
		QuickMode:    e.cfg.UI.QuickMode,
		GlamourStyle: e.cfg.UI.GlamourStyle,
		ExportDir:    exportDir,
		ExportFormat: e.cfg.UI.ExportFormat,
	})
}
