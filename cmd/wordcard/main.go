// Command wordcard serves the vocabulary API and runs maintenance tasks
// against the word database.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordcard-backend/internal/app"
	"github.com/heartmarshall/wordcard-backend/internal/config"
)

var (
	configFlag  string
	verboseFlag bool
	rootCmd     = &cobra.Command{
		Use:           "wordcard",
		Short:         "Personal vocabulary tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config YAML (defaults to $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log at debug level")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger for a subcommand.
func setup() (*config.Config, *slog.Logger, error) {
	path := configFlag
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, err
	}
	if verboseFlag {
		cfg.Log.Level = "debug"
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// withComponents opens the database for the duration of fn.
func withComponents(ctx context.Context, fn func(c *app.Components, logger *slog.Logger) error) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	c, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c, logger)
}
