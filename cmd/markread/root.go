package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kyaoi/markread/internal/app"
	"github.com/kyaoi/markread/internal/config"
	"github.com/kyaoi/markread/internal/logger"
)

// launchFunc starts the viewer with the process arguments, program name
// first.
type launchFunc func(ctx context.Context, args []string) error

func newRootCmd(launch launchFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "markread [file]",
		Short:         "MarkRead displays a Markdown file in the terminal",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd.Context(), append([]string{cmd.Root().Name()}, args...))
		},
	}
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runViewer(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, closeLog, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, args, cfg, log)
}
