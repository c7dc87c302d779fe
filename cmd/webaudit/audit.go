package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"webaudit/internal/browser"
	"webaudit/internal/config"
	"webaudit/internal/log"
	"webaudit/internal/session"
)

// auditEnv bundles the runtime shared by all crawl commands: the resolved
// configuration, the session the run writes into, the browser engine, and
// a logger whose records carry the session id.
type auditEnv struct {
	cfg    *config.Config
	sess   *session.Session
	engine *browser.Engine
	logger *slog.Logger
}

// withAuditEnv builds the shared runtime, calls fn with a context bounded by
// the run timeout and interrupt signals, and tears everything down.
//
// The browser engine is started before fn runs so startup failures surface
// as configuration-style errors rather than as per-page crawl failures.
func withAuditEnv(cmd *cobra.Command, fn func(ctx context.Context, env *auditEnv) error) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, handler := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	// The run ceiling bounds the whole run; on breach the in-flight unit is
	// abandoned and results recorded so far survive.
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancelTimeout()

	sess := session.NewManager(cfg.OutputRoot).Initialize()
	handler.SetSession(sess.ID)
	logger.Info("session initialized", "dir", sess.Dir())

	engine, err := browser.New(ctx, browser.Options{
		Headless:     true,
		ReduceMotion: true,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer engine.Close() //nolint:errcheck // Best effort cleanup

	start := time.Now()
	err = fn(ctx, &auditEnv{cfg: cfg, sess: sess, engine: engine, logger: logger})
	elapsed := time.Since(start)

	fmt.Printf("\nSession %s completed in %s\n", sess.ID, elapsed.Round(time.Millisecond))
	fmt.Printf("Results: %s\n", sess.Dir())

	return err
}

// buildConfig creates a Config from defaults, the configuration file (if
// found), and command flags, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPathFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. Otherwise a missing file just means built-in defaults.
	configPath := config.FindConfigFile(configPathFlag)
	if configPath != "" {
		f, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		f.Apply(cfg)
	} else if configPathFlag != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPathFlag)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if cfg.AxeScriptPath == "" {
		cfg.AxeScriptPath = config.DefaultAxeScriptPath()
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// applyFlags overlays flag values onto the configuration. Only flags the
// user actually set override file and default values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.OutputRoot, err = cmd.Flags().GetString("output"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("dwell") {
		if cfg.Dwell, err = cmd.Flags().GetDuration("dwell"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.UnitTimeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("run-timeout") {
		if cfg.RunTimeout, err = cmd.Flags().GetDuration("run-timeout"); err != nil {
			return err
		}
	}
	return nil
}

// addAuditFlags registers the flags shared by all crawl commands.
func addAuditFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("base-url", "u", config.DefaultBaseURL,
		"Base URL all page paths are resolved against")
	cmd.Flags().StringP("output", "o", config.DefaultOutputRoot,
		"Directory holding per-session output trees")
	cmd.Flags().DurationP("dwell", "d", config.DefaultDwell,
		"Fixed wait after network settle before capture or extraction")
	cmd.Flags().DurationP("timeout", "t", config.DefaultUnitTimeout,
		"Timeout for a single page visit")
	cmd.Flags().Duration("run-timeout", config.DefaultRunTimeout,
		"Timeout for the whole run")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webaudit.yaml in current or home directory)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// The returned handler stamps records with the session id once known.
func setupLogger(verbose bool) (*slog.Logger, *log.SessionHandler) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := log.NewSessionHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler), handler
}
