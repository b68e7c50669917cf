// Package main provides the bazaar binary entry point.
// Bazaar is a multi-role marketplace demo for Pakistani small
// businesses: catalog, bargaining orders, expense ledger and an
// AI-backed assistant, all over in-memory stores.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Register model providers via init()
	_ "github.com/mybussiness/bazaar/assistant/providers"

	"github.com/mybussiness/bazaar/commands"
	"github.com/mybussiness/bazaar/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "bazaar"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	// Wiring happens in PersistentPreRunE so flags are parsed first.
	// Subcommands hold the pointer; the contents arrive before RunE.
	app := new(commands.App)

	cmd := &cobra.Command{
		Use:   "bazaar",
		Short: "Marketplace demo for Pakistani small businesses",
		Long: `Bazaar is a multi-role marketplace demo. Platform admins approve
businesses, owners manage products and expenses, staff fulfil orders,
and customers shop and bargain. An AI assistant generates promotions,
insights and role-aware chat.

All state is in-memory and seeded from demo fixtures; each invocation
starts fresh.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			built, err := buildApp(configPath, logLevel)
			if err != nil {
				return err
			}
			*app = *built
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	cmd.AddCommand(commands.NewDemoCommand(app))
	cmd.AddCommand(commands.NewCatalogCommand(app))
	cmd.AddCommand(commands.NewPromoteCommand(app))
	cmd.AddCommand(commands.NewInsightsCommand(app))
	cmd.AddCommand(commands.NewChatCommand(app))
	cmd.AddCommand(commands.NewViewCommand(app))
	cmd.AddCommand(commands.NewStatsCommand(app))
	cmd.AddCommand(commands.NewConfigCommand(app))
	cmd.AddCommand(commands.NewThemeCommand(app))

	return cmd
}

func buildApp(configPath, logLevel string) (*commands.App, error) {
	// API keys live in .env during local development.
	_ = godotenv.Load()

	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.NewLoader(logger).Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return commands.NewApp(cfg, logger), nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
