// Package main is the entry point for the mdsumm CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/mdsumm/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// annotationLLM marks commands that call Claude and need an API key.
const annotationLLM = "mdsumm/llm"

// rootFlagKeys binds the global flags every command inherits.
var rootFlagKeys = map[string]string{
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
}

var (
	// flagKeys maps a command's flag names to config keys. Bindings are
	// applied only for the command that runs, so two commands may reuse a
	// short flag for different keys.
	flagKeys = map[*cobra.Command]map[string]string{}

	// Set by the root PersistentPreRunE before any command runs.
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mdsumm",
	Short: "Convert documents to Markdown and summarise them with Claude",
	Long: `mdsumm turns documents, web pages and YouTube transcripts into Markdown
and writes bullet-point summaries of Markdown files. Long documents are split
into heading-aligned blocks before they are summarised.

Typical flow: tomd converts _input into _markdown, summd summarises _markdown
into _summary.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdsumm.yaml or ~/.config/mdsumm/mdsumm.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
}

// bindFlags registers flag to config key bindings for cmd.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	flagKeys[cmd] = keys
}

// loadConfig builds a fresh viper instance for the command being run, so
// nothing carries over between executions.
func loadConfig(cmd *cobra.Command, args []string) error {
	settings := viper.New()
	config.SetDefaults(settings)

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
	} else {
		settings.SetConfigName("mdsumm")
		settings.SetConfigType("yaml")
		settings.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			settings.AddConfigPath(filepath.Join(home, ".config", "mdsumm"))
		}
	}
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	for _, keys := range []map[string]string{rootFlagKeys, flagKeys[cmd]} {
		for name, key := range keys {
			if err := settings.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg = config.Load(settings)
	if err := cfg.Validate(cmd.Annotations[annotationLLM] == "true"); err != nil {
		return err
	}

	l, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = l
	if used := settings.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}
	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
