package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/vendctl/config"
)

const skipConfigAnnotation = "skip-config"

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Global flags
	debugFlag    bool
	outputFormat string

	appVersion = "dev"
	buildTime  = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vendctl",
	Short: "A command-line client for the Vend retail POS API",
	Long: `vendctl talks to a Vend store's REST API. It lists and edits products,
customers and sales, sends raw calls at any dated or legacy API version,
exports whole collections and runs the OAuth flow to obtain tokens.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion records build information for the version and update commands.
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the running command, including rate-limit waits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./vendctl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log every API exchange")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "output format: json, yaml or table")
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	if _, err := parseFormat(outputFormat); err != nil {
		return err
	}

	if cmd.Annotations[skipConfigAnnotation] == "true" {
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("debug") {
		cfg.Vend.Debug = debugFlag
	}
	if cfg.Vend.Debug {
		cfg.Logging.Level = "debug"
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
