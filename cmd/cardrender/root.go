package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender/internal/config"
	"github.com/goliatone/go-cardrender/internal/logging"
)

// app is resolved once per invocation before any subcommand runs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

var current app

var rootCmd = &cobra.Command{
	Use:           "cardrender",
	Short:         "Render, validate and serve Adaptive Cards",
	Long:          `cardrender turns Adaptive Card JSON or YAML into HTML, validates documents, drives interactive cards in the terminal and serves a preview editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		current = app{cfg: cfg, logger: logging.New(level)}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure. Interrupts
// cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/cardrender/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
