package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/michsethowusu/kasanoma/internal/config"
	"github.com/michsethowusu/kasanoma/internal/env"
	"github.com/michsethowusu/kasanoma/internal/logger"
)

type rootOptions struct {
	configPath string
	schemaPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "kasanoma",
		Short: "Kasanoma - local text-to-speech with Piper voices",
		Long: `Kasanoma serves Piper text-to-speech voices over HTTP.

Voice models are organised in one folder per language under the voices
directory; the language of a text can be picked from its script.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultConfigFile(), "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.schemaPath, "schema", "", "Path to an external config schema (default: built in)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(
		newServeCmd(opts),
		newVoicesCmd(opts),
		newDetectCmd(opts),
		newBatchCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// load reads the configuration and installs the default logger.
func (o *rootOptions) load(logToFile bool) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, o.schemaPath)
	if err != nil {
		return nil, err
	}

	o.setupLogger(cfg, logToFile)
	return cfg, nil
}

func (o *rootOptions) setupLogger(cfg *config.Config, logToFile bool) {
	level := logger.ParseLevel(cfg.Logging.Level)
	if o.verbose {
		level = slog.LevelDebug
	}

	logFile := cfg.Logging.File
	if logFile != "" && !filepath.IsAbs(logFile) {
		logFile = filepath.Join("logs", logFile)
	}

	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLevel(level),
			logger.WithLogToFile(logToFile && cfg.Logging.ToFile),
			logger.WithLogFile(logFile),
		),
	)
}
