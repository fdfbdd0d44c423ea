// SPDX-License-Identifier: EPL-2.0

// Package commands implements the stemsep command tree.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/stemsep/internal/config"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "stemsep",
		Short: "Split music into vocal and instrumental stems",
		Long: `stemsep separates a mixed song into a vocal stem and an instrumental
stem using spectral nearest-neighbour filtering and soft masks.

Supported inputs: WAV, MP3, Ogg Vorbis and AIFF.
Outputs are WAV files, optionally bundled into a zip archive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	cmd.AddCommand(newSeparateCmd(opts))
	cmd.AddCommand(newFormatsCmd())
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// load reads the configuration file, or the defaults when none is given,
// and applies the --log-level override.
func (o *globalOptions) load() (*config.Config, error) {
	cfg := config.Default()

	if o.configFile != "" {
		var err error
		if cfg, err = config.Load(o.configFile); err != nil {
			return nil, err
		}
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	return cfg, nil
}

// logger builds the slog logger for cfg writing to w.
func (o *globalOptions) logger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	switch o.logFormat {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", o.logFormat)
	}
}
