// Package cli implements the jobs command line interface.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobhub/internal/app"
	"github.com/honeycarbs/jobhub/internal/config"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

// Loader builds the resources a command works with. The returned func
// releases them.
type Loader func(ctx context.Context, cfg config.Config, logger *logging.Logger) (*app.Resources, func(), error)

// Option configures the root command
type Option func(*options)

type options struct {
	loadConfig func() (config.Config, error)
	load       Loader

	logLevel  string
	providers []string
}

// WithConfigLoader replaces config.Load
func WithConfigLoader(fn func() (config.Config, error)) Option {
	return func(o *options) {
		if fn != nil {
			o.loadConfig = fn
		}
	}
}

// WithLoader replaces app.InitializeResources
func WithLoader(l Loader) Option {
	return func(o *options) {
		if l != nil {
			o.load = l
		}
	}
}

// NewRootCommand returns the jobs command with every subcommand attached.
func NewRootCommand(opts ...Option) *cobra.Command {
	o := &options{
		loadConfig: config.Load,
		load:       app.InitializeResources,
	}
	for _, opt := range opts {
		opt(o)
	}

	root := &cobra.Command{
		Use:           "jobs",
		Short:         "Browse software jobs aggregated from Palestinian boards",
		Long:          `Query the job boards and company career pages known to jobhub and print the results as tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringSliceVar(&o.providers, "providers", nil, "restrict to these providers (comma separated)")

	root.AddCommand(
		newListCommand(o),
		newProvidersCommand(o),
		newStatsCommand(o),
	)
	return root
}

// resources loads the config, applies the persistent flags and builds the
// command's resources.
func (o *options) resources(ctx context.Context) (*app.Resources, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if len(o.providers) > 0 {
		cfg.Providers = trimAll(o.providers)
	}
	// the CLI never starts the scheduler
	cfg.WarmupSchedule = ""

	logger := logging.NewDevelopment(cfg.LogLevel)

	res, cleanup, err := o.load(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return res, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
