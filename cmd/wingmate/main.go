package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/jsonfile"
	"github.com/wingmate/wingmate/internal/logging"
	intOtel "github.com/wingmate/wingmate/internal/otel"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "wingmate"
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// ZLogger feeds the SQLite archive, which logs through zerolog
	ZLogger zerolog.Logger

	// OTelProvider hands out meters for the loader instruments
	OTelProvider *intOtel.Provider

	// LogFile is the session log file, nil unless logToFile is set
	LogFile *os.File

	SessionStartTime time.Time = time.Now()
)

var rootFlags struct {
	root      string
	configDir string
	logLevel  string
}

var rootCmd = &cobra.Command{
	Use:   "wingmate",
	Short: "Read PWCG campaign files",
	Long:  "wingmate reads the campaign files written by the PWCG campaign generator\nand reports pilot, mission, squadron and ace data.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if LogFile != nil {
			LogFile.Close()
			LogFile = nil
		}
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.root, "root", "", "PWCG installation root (default: pwcgfcPath from config)")
	f.StringVar(&rootFlags.configDir, "config", ".", "Directory holding "+config.FileName)
	f.StringVar(&rootFlags.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (default: logLevel from config)")

	rootCmd.AddCommand(campaignsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(personnelCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.Version = fmt.Sprintf("%s (built %s)", CurrentVersion, BuildDate)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the loggers and metrics provider
// shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	configErr := config.Load(rootFlags.configDir)

	level := rootFlags.logLevel
	if level == "" {
		level = config.GetString("logLevel")
	}

	var file io.Writer
	logPath := ""
	if config.GetBool("logToFile") {
		f, path, err := logging.OpenSessionLog(config.GetString("logsDir"), AppName, SessionStartTime)
		if err != nil {
			return err
		}
		LogFile, file, logPath = f, f, path
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(cmd.ErrOrStderr(), file, level)
	Logger = SlogManager.Logger()
	ZLogger = newZeroLogger(cmd.ErrOrStderr(), file, level)

	if logPath != "" {
		Logger.Info("Logging to file", "path", logPath)
	}
	if configErr != nil {
		Logger.Debug("Using default configuration", "dir", rootFlags.configDir, "error", configErr)
	}

	otelCfg := config.GetOTelConfig()
	OTelProvider = intOtel.New(intOtel.Config{
		Enabled:     otelCfg.Enabled,
		ServiceName: otelCfg.ServiceName,
	})
	if OTelProvider.Enabled() {
		Logger.Debug("OTel metrics enabled", "service", OTelProvider.ServiceName())
	}
	return nil
}

func newZeroLogger(console, file io.Writer, level string) zerolog.Logger {
	var zl zerolog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		zl = zerolog.DebugLevel
	case "WARN", "WARNING":
		zl = zerolog.WarnLevel
	case "ERROR":
		zl = zerolog.ErrorLevel
	default:
		zl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339, NoColor: true}}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true})
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zl).
		With().Timestamp().Str("component", "storage.sqlite").Logger()
}

// rootDir returns the PWCG root from --root, falling back to config.
func rootDir() string {
	if rootFlags.root != "" {
		return rootFlags.root
	}
	return config.GetString("pwcgfcPath")
}

// newLoader builds a JSON loader wired to the configured cache size and
// metrics.
func newLoader() *jsonfile.Loader {
	return jsonfile.New(jsonfile.Options{
		Capacity: config.GetCacheCapacity(),
		Logger:   Logger,
		Meter:    OTelProvider.Meter(jsonfile.InstrumentationName),
	})
}

func newReader(loader campaign.Loader) *campaign.Reader {
	return campaign.NewReader(rootDir(), loader, Logger)
}
