package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dshills/formrunner/internal/api"
	"github.com/dshills/formrunner/internal/config"
	"github.com/dshills/formrunner/internal/portal"
	"github.com/dshills/formrunner/internal/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"

	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string

	// Global config
	cfg *config.Config

	// logFile is set when logging.output names a file
	logFile *os.File
)

func main() {
	setupCommands()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	stop()
	closeLogFile()

	if err != nil {
		fmt.Fprint(os.Stderr, FormatError(err, cmd.Name()))
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "formrunner",
	Short: "formrunner - multi-step forms in the terminal",
	Long: `formrunner renders schema-driven, multi-section forms in the terminal.

A user logs in with a roll number and name, the form assigned to them is
fetched from the form service, and they fill it in one section at a time.
Each section must pass field validation before the next one opens; the
last section submits every answer.

Forms can also be loaded from a local JSON or YAML file for offline use.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Skip for version command
		if cmd.Name() == "version" {
			return nil
		}

		// Initialize logging first
		if err := initLogging(os.Stderr, logFormat); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if err := configureLogging(cmd); err != nil {
			return err
		}

		log.Debug().
			Str("version", version).
			Str("config_file", cfgFile).
			Str("base_url", cfg.API.BaseURL).
			Msg("formrunner initialized")

		return nil
	},
}

func setupCommands() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: .formrunner.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	// Setup command-specific flags
	setupRunFlags()
	setupFillFlags()
	setupCheckFlags()

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(checkCmd)

	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("formrunner v%s\n", version))
}

func initLogging(out io.Writer, format string) error {
	switch format {
	case "console":
		output := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    out != os.Stderr,
		}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	case "json":
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	default:
		return fmt.Errorf("invalid log format: %s (must be console or json)", format)
	}

	// Set log level
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	return nil
}

// configureLogging applies the loaded config. Flags win over config values.
// The interactive UI owns the terminal, so its logs go to the configured
// file or nowhere.
func configureLogging(cmd *cobra.Command) error {
	format := cfg.Logging.Format
	if cmd.Flags().Changed("log-format") {
		format = logFormat
	}

	var out io.Writer = os.Stderr
	switch {
	case !cfg.LogsToStderr():
		f, err := os.OpenFile(cfg.Logging.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return ExitError{Code: ExitCodeFileSystemError, Err: fmt.Errorf("failed to open log file: %w", err)}
		}
		closeLogFile()
		logFile = f
		out = f
	case cmd.Name() == runCmd.Name():
		out = io.Discard
	}

	if err := initLogging(out, format); err != nil {
		return err
	}

	// Override log level from config if not set via flag
	if !cmd.Flags().Changed("log-level") {
		zerolog.SetGlobalLevel(cfg.GetLogLevel())
	}
	return nil
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func parseLogLevel(level string) (zerolog.Level, error) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}

// newService picks the form source: a local file when formPath is set,
// otherwise the configured form service
func newService(formPath string) portal.Service {
	if formPath != "" {
		log.Info().Str("form", formPath).Msg("Using offline form")
		return schema.NewFileSource(formPath)
	}
	return api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
}
