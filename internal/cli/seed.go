package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hcportal/leave-portal/internal/core/ports"
	"github.com/hcportal/leave-portal/internal/core/service"
	"github.com/hcportal/leave-portal/internal/infrastructure/csvsource"
	mongodb "github.com/hcportal/leave-portal/internal/infrastructure/db/mongo"
	"github.com/hcportal/leave-portal/internal/infrastructure/queue"
)

type seedOptions struct {
	csvPath string
	workers int
	reset   bool
	skipCSV bool
}

func newSeedCommand() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the identity store",
		Long: `Ensure the system administrator and store supervisor accounts exist,
then import employees from the HR CSV export.

Every write is insert-if-absent: running seed twice over the same input
changes nothing. Rows without an Employee ID get a stable HC#### id derived
from their name and iqama fields.

Examples:
  leaveportal seed                          # Use SEED_CSV_PATH
  leaveportal seed --csv ./employees.csv --workers 4
  leaveportal seed --reset                  # Delete all identities first
  leaveportal seed --accounts-only          # Skip the CSV import`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("csv") {
				opts.csvPath = cfg.Seed.CSVPath
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.Seed.Workers
			}

			client, db, err := mongodb.Connect(ctx, mongodb.Config{
				URI:      cfg.Mongo.URI,
				Database: cfg.Mongo.Database,
				Timeout:  cfg.Mongo.Timeout,
			})
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			repo := mongodb.NewIdentityRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}

			seeder := service.NewSeeder(repo, service.SeedConfig{
				AdminPassword:    cfg.Seed.AdminPassword,
				EmployeePassword: cfg.Seed.EmployeePassword,
				EmailDomain:      cfg.Seed.EmailDomain,
			}, log)

			return runSeed(ctx, cmd.OutOrStdout(), seeder, opts, log)
		},
	}

	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "employee CSV export (default SEED_CSV_PATH)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "import workers (default SEED_WORKERS)")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "delete every identity before seeding")
	cmd.Flags().BoolVar(&opts.skipCSV, "accounts-only", false, "only ensure the fixed seed accounts")
	return cmd
}

// identitySeeder is the part of service.Seeder the seed command drives.
type identitySeeder interface {
	ports.EmployeeImporter
	Reset(ctx context.Context) (int64, error)
	SeedAccounts(ctx context.Context) (int, error)
}

func runSeed(ctx context.Context, out io.Writer, seeder identitySeeder, opts seedOptions, log zerolog.Logger) error {
	if opts.reset {
		deleted, err := seeder.Reset(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %d identities\n", deleted)
	}

	created, err := seeder.SeedAccounts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seed accounts: %d created\n", created)

	if opts.skipCSV {
		return nil
	}

	rows, err := csvsource.LoadEmployees(opts.csvPath)
	if err != nil {
		return err
	}
	log.Info().Str("path", opts.csvPath).Int("rows", len(rows)).Msg("employee export loaded")

	summary, err := queue.NewImportDispatcher(opts.workers, seeder, log).Run(ctx, rows)
	printSummary(out, summary)
	if err != nil {
		return fmt.Errorf("import interrupted: %w", err)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d rows failed to import", summary.Failed, summary.Total)
	}
	return nil
}

func printSummary(out io.Writer, s ports.ImportSummary) {
	fmt.Fprintf(out, "Employees: %d rows, %d created, %d skipped, %d failed\n", s.Total, s.Created, s.Skipped, s.Failed)
}
