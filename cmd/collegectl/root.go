package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/college-predictor-api/pkg/config"
	"github.com/noah-isme/college-predictor-api/pkg/logger"
)

type commandContext struct {
	cfg    *config.Config
	logger *zap.Logger
	debug  bool
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Log.Format = "console"
	cfg.Log.File = ""
	// Findings are already printed as tables.
	cfg.Log.DisableStacktrace = true
	if c.debug {
		cfg.Log.Level = "debug"
	} else {
		cfg.Log.Level = "warn"
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*zap.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	c.logger = logr
	return logr, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "collegectl",
		Short:         "Merge college data and run eligibility searches offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&ctx.debug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(newMergeCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))

	return rootCmd
}
