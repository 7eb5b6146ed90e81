package main

import (
	"context"
	"fmt"

	vtasurvey "github.com/nsidc/usaon-vta-survey"
	"github.com/nsidc/usaon-vta-survey/internal/config"
	"github.com/nsidc/usaon-vta-survey/internal/log"
	"github.com/spf13/cobra"
)

// environment is what every subcommand needs before touching the database.
type environment struct {
	ctx    context.Context
	cfg    config.AppConfig
	logger *log.Logger
}

// setup loads configuration, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command, flags *globalFlags) (environment, error) {
	cfg, err := config.LoadConfig(flags.envFiles...)
	if err != nil {
		return environment{}, fmt.Errorf("load config: %w", err)
	}
	if flags.dbURL != "" {
		cfg = cfg.Apply(config.WithDBURL(flags.dbURL))
	}

	logger := log.Configure(cfg)
	ctx := log.WithCommand(cmd.Context(), cmd.Name())
	logger.Slog().DebugContext(ctx, "configuration loaded", attrsToArgs(cfg)...)

	return environment{ctx: ctx, cfg: cfg, logger: logger}, nil
}

// openClient opens the survey store described by env. Extra options are
// applied after the configuration.
func openClient(env environment, extra ...vtasurvey.Option) (*vtasurvey.Client, error) {
	if err := env.cfg.EnsureDatabaseDir(); err != nil {
		return nil, err
	}

	opts := []vtasurvey.Option{
		vtasurvey.WithConfig(env.cfg),
		vtasurvey.WithLogger(env.logger.Slog()),
	}
	opts = append(opts, extra...)

	client, err := vtasurvey.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("open survey store: %w", err)
	}
	return client, nil
}

func closeClient(env environment, client *vtasurvey.Client) {
	if err := client.Close(); err != nil {
		env.logger.Slog().ErrorContext(env.ctx, "failed to close survey store", "error", err)
	}
}

func attrsToArgs(cfg config.AppConfig) []any {
	attrs := cfg.LogAttrs()
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return args
}
