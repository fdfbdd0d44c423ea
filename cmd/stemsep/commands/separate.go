// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/stemsep"
	"github.com/ik5/stemsep/internal/config"
	"github.com/ik5/stemsep/separator"
	"github.com/ik5/stemsep/stems"
)

type separateOptions struct {
	outDir     string
	zip        bool
	sampleRate int
	bitDepth   int
	timeout    time.Duration
}

func newSeparateCmd(global *globalOptions) *cobra.Command {
	opts := &separateOptions{}

	cmd := &cobra.Command{
		Use:   "separate <input>",
		Short: "Separate a song into vocal and instrumental stems",
		Long: `Separate decodes <input>, splits it into a vocal and an instrumental
stem and writes vocals.wav and instrumental.wav to the output directory.

With --zip both stems are written into <name>_stems.zip instead.`,
		Example: `  stemsep separate song.mp3
  stemsep separate song.wav -o stems/ --bit-depth 24
  stemsep separate song.ogg --zip --timeout 2m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.load()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runSeparate(cmd, global, cfg, args[0], opts.timeout)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "", "output directory (default from config, .)")
	cmd.Flags().BoolVar(&opts.zip, "zip", false, "write the stems into a zip archive")
	cmd.Flags().IntVar(&opts.sampleRate, "sample-rate", 0, "resample the input to this rate before separating")
	cmd.Flags().IntVar(&opts.bitDepth, "bit-depth", 0, "output bit depth: 16 or 24")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort when separation takes longer (0 disables)")

	return cmd
}

// apply copies the flags set on the command line over cfg.
func (o *separateOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("output") {
		cfg.Output.Dir = o.outDir
	}
	if flags.Changed("zip") {
		cfg.Output.Zip = o.zip
	}
	if flags.Changed("sample-rate") {
		cfg.ResampleRate = o.sampleRate
	}
	if flags.Changed("bit-depth") {
		cfg.Output.BitDepth = o.bitDepth
	}
}

func runSeparate(cmd *cobra.Command, global *globalOptions, cfg *config.Config, input string, timeout time.Duration) error {
	logger, err := global.logger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	sep, err := separator.New(cfg.Separator())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	job := stemsep.NewJob(stemsep.Options{
		SampleRate: cfg.ResampleRate,
		Backend:    sep,
	}, logger)

	res, err := job.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("separating %s: %w", input, err)
	}

	files, err := stems.Encode(res, stems.EncodeOptions{BitDepth: cfg.Output.BitDepth})
	if err != nil {
		return err
	}

	var written []string
	if cfg.Output.Zip {
		path, err := writeArchive(cfg.Output.Dir, input, files, stems.Zip)
		if err != nil {
			return err
		}
		written = []string{path}
	} else if written, err = stems.WriteDir(cfg.Output.Dir, files); err != nil {
		return err
	}

	for _, path := range written {
		logger.Debug("stem written", "path", path)
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}

// writeArchive bundles files into <dir>/<input>_stems.zip with bundle.
// The archive is removed when bundling or closing fails.
func writeArchive(dir, input string, files map[string][]byte, bundle func(io.Writer, map[string][]byte) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, stems.ArchiveName(input))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}

	if err := bundle(f, files); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing archive: %w", err)
	}

	return path, nil
}
