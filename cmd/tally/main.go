package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries what every command needs: the configuration and where to read
// answers from.
type app struct {
	v        *viper.Viper
	settings *config.Settings
	stdin    io.Reader
	cfgFile  string
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	a := &app{
		v:     viper.New(),
		stdin: stdin,
	}

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "👛 Personal income and expense tracker",
		Long: `tally: record what comes in and what goes out, sort expenses into
categories, and see how much of your budget is left.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/tally/config.yaml)")
	flags.String("storage", config.DefaultStorageLocation, "where data is kept (memory:, jsonfile:<path>, sqlite:<path>)")
	flags.String("currency", config.DefaultCurrency, "currency symbol for amounts")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (console, json)")

	// Bind flags to viper
	_ = a.v.BindPFlag(config.KeyStorageLocation, flags.Lookup("storage"))
	_ = a.v.BindPFlag(config.KeyCurrency, flags.Lookup("currency"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(summaryCmd(a))
	rootCmd.AddCommand(guideCmd(a))
	rootCmd.AddCommand(budgetCmd(a))
	rootCmd.AddCommand(categoriesCmd(a))
	rootCmd.AddCommand(transactionsCmd(a))
	rootCmd.AddCommand(importOFXCmd(a))
	rootCmd.AddCommand(dashboardCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd(os.Stdin).ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command) error {
	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	// Set up config file
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		a.v.AddConfigPath(fmt.Sprintf("%s/.config/tally", home))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	// Environment variables
	a.v.SetEnvPrefix("TALLY")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	// Read config file
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	settings, err := config.LoadSettings(a.v)
	if err != nil {
		return err
	}
	a.settings = settings

	// Set up logging
	if err := setupLogging(settings, cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(settings *config.Settings, w io.Writer) error {
	level, err := common.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, settings.LogFormat, w)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tally version %s\n", version)
		},
	}
}
