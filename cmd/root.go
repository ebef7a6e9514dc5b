package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"visitor-pass-console/internal/config"
	"visitor-pass-console/internal/console"
	"visitor-pass-console/internal/utils"
)

var (
	cfgFile string
	cfg     *config.Config
	con     *console.Console
)

var rootCmd = &cobra.Command{
	Use:           "visitor-pass-console",
	Short:         "Visitor pass and building access console",
	Long:          `Register visitors, keep employee and building records, and manage the operators who run the front desk.`,
	Version:       utils.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		godotenv.Load()

		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		initLogger(cfg, cmd.Name() == "server")

		con, err = console.Open(cmd.Context(), cfg)
		return err
	},
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if con != nil {
		if cerr := con.Close(); cerr != nil {
			slog.Error("Failed to close storage", "error", cerr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// initLogger logs JSON to stdout for the server. Other commands only log
// errors, as text on stderr, so their output stays readable.
func initLogger(cfg *config.Config, server bool) *slog.Logger {
	level, ok := parseLevel(cfg.LogLevel)

	var handler slog.Handler
	if server {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: max(level, slog.LevelError)})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if !ok {
		slog.Warn("Invalid log level in config, defaulting to INFO", "log_level", cfg.LogLevel)
	}
	slog.Debug("Logger initialized", "level", level.String())
	return logger
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./instance/config.yaml)")
}
