package main

import (
	"context"
	"fmt"

	"petchat/internal/app"
	"petchat/internal/config"
	"petchat/internal/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "petchat",
		Short: "Pet clothing shop assistant",
		Long: `petchat answers shop questions from the command line using the same
catalog, intents and generator settings as the server, and manages the
product database.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newAskCmd(opts),
		newReplCmd(opts),
		newImportCmd(opts),
		newGenerateCmd(opts),
	)
	return cmd
}

// setup loads configuration and a console logger
func (o *rootOptions) setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log, err := logger.New(level, "console")
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	for _, w := range cfg.Warnings {
		log.Warn("config: " + w)
	}
	return cfg, log, nil
}

// open builds the chat pipeline
func (o *rootOptions) open(ctx context.Context) (*app.App, error) {
	cfg, log, err := o.setup()
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return a, nil
}
