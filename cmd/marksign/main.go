package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kyaoi/markread/internal/config"
	"github.com/kyaoi/markread/internal/logger"
	"github.com/kyaoi/markread/internal/sign"
)

func main() {
	if err := newRootCmd(sign.ExecRunner).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(run sign.Runner) *cobra.Command {
	return &cobra.Command{
		Use:           "marksign [executable]",
		Short:         "Sign the Windows build of MarkRead with signtool",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSign()
			if err != nil {
				return fmt.Errorf("loading signing config: %w", err)
			}
			if len(args) == 1 {
				cfg.Executable = args[0]
			}

			log, _, err := logger.New(logger.Options{Level: "info", HumanReadable: true, Writer: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			log = log.With().Str("component", "sign").Logger()

			start := time.Now()
			res, err := sign.Sign(cmd.Context(), cfg, run, log)
			if err != nil {
				return err
			}
			logResult(log, res, time.Since(start))
			return nil
		},
	}
}

func logResult(log zerolog.Logger, res sign.Result, elapsed time.Duration) {
	switch {
	case res.Signed:
		log.Info().Dur("elapsed", elapsed).Msg("done")
	case res.Skipped:
		log.Info().Msg("nothing signed")
	}
}
