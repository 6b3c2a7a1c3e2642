package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/config"
)

var (
	configFile string
	dataDir    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kaedim",
	Short: "Kaedim routing agent - validate, plan and assign 3D asset requests",
	Long: `The Kaedim routing agent decides how incoming 3D asset-creation
requests are processed: it validates each request against the customer's
preset, derives a processing-step plan from routing rules, and assigns the
best-matching artist from the roster. Decisions are recorded with a full
audit trail.

The same operation surface is available as an MCP server (serve) and as a
batch driver (process).`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	loaded, err := config.NewLoader().LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		loaded.Core.DataDir = dataDir
	}
	cfg = loaded
	return nil
}

// newLogger builds the process logger from the logging section. Logs go to
// stderr so the stdio transport keeps stdout for framing.
func newLogger(c config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "kaedim.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Override catalog data directory")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(versionCmd)
}
