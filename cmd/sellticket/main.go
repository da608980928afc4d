// Command sellticket runs a directive file through the admission engine and
// writes the transcript.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cx-tal-miterani/ticket-admission/internal/admission"
	"github.com/cx-tal-miterani/ticket-admission/internal/config"
	"github.com/cx-tal-miterani/ticket-admission/internal/directive"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "sellticket <input> <output>",
		Short:        "Process ticket admission directives",
		Long:         "Reads directives from <input>, one per line, and writes one response per directive to <output>.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg, cmd.ErrOrStderr())
			return run(cmd.Context(), fs, logger, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	cmd.Flags().String("log-format", config.DefaultLogFormat, "log format: text or json")
	_ = v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, cmd.Flags().Lookup("log-format"))

	return cmd
}

func run(ctx context.Context, fs afero.Fs, logger *slog.Logger, inPath, outPath string) error {
	in, err := fs.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	out, err := fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	session := admission.NewSession(admission.WithLogger(logger))
	if _, err := directive.NewDispatcher(session, logger).Run(ctx, in, out); err != nil {
		return err
	}
	return out.Close()
}
