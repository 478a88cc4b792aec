// Package cli contains the leaveportal commands.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hcportal/leave-portal/internal/infrastructure/config"
	"github.com/hcportal/leave-portal/pkg/logger"
)

const serviceName = "leave-portal"

var version = "dev"

// SetVersion sets the version string reported by the CLI.
func SetVersion(v string) {
	version = v
}

// NewRootCommand builds the leaveportal command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "leaveportal",
		Short: "HC leave portal server and tooling",
		Long: `leaveportal runs the HC leave portal: employee sign-in, session
tokens, route gating, and the identity store seeder.

Configuration is read from the environment (see AUTH_*, MONGO_*, REDIS_*
and SEED_* variables).

Example usage:
  leaveportal serve            # Start the HTTP server
  leaveportal seed             # Ensure seed accounts and import employees.csv
  leaveportal seed --reset     # Clear every identity first`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newSeedCommand())
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// bootstrap loads configuration and initialises the process logger. It is
// the single startup path for every command and fails fast on bad config.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})

	if cfg.SecretGenerated {
		log.Warn().Msg("AUTH_SECRET not set; using a random per-process secret, sessions will not survive a restart")
	}
	return cfg, log, nil
}
