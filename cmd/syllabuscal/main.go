// Package main implements the syllabuscal CLI: it turns syllabus PDFs into
// dated event lists and iCalendar files.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"syllabuscal/internal/config"
	appLog "syllabuscal/internal/log"
)

var version = "0.1.0-dev"

// rootOptions holds persistent flag values shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	envFile    string
}

func main() {
	// Root context with cancellation on SIGINT/SIGTERM; it bounds the OCR call.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		appLog.Error("command failed", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "syllabuscal",
		Short: "Extract exam, assignment and reading dates from syllabus PDFs",
		Long: `syllabuscal reads a course syllabus PDF and produces a deduplicated,
date-sorted list of typed events (exams, quizzes, projects, assignments,
readings, labs), optionally rendered as an iCalendar file.

Scanned syllabi without a text layer are sent to an OCR.space compatible
service configured in the config file or via OCR_SPACE_API_KEY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnv(opts.envFile)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath(), "Path to config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Optional dotenv file with OCR_SPACE_API_KEY")

	root.AddCommand(newExtractCmd(opts))
	root.AddCommand(newInspectCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// loadEnv loads a dotenv file if present. Variables already set in the
// process environment win.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	appLog.Debug("loaded env file", "path", path)
	return nil
}

// loadConfig reads the config file and applies the --log-level override.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	level, err := appLog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	appLog.SetLevel(level)

	appLog.Debug("effective config",
		"config_path", opts.configPath,
		"ocr_enabled", cfg.OCR.Enabled(),
		"ocr_timeout", cfg.OCR.Timeout(),
		"ocr_trigger", cfg.OCR.Trigger,
		"calendar_title", cfg.Calendar.Title,
	)
	return cfg, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "syllabuscal.yaml"
	}
	return filepath.Join(dir, "syllabuscal", "config.yaml")
}
