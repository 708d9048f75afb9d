package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subadmin/internal/infrastructure/config"
	"github.com/orris-inc/subadmin/internal/infrastructure/database"
	"github.com/orris-inc/subadmin/internal/infrastructure/migration"
	"github.com/orris-inc/subadmin/internal/infrastructure/repository"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

var (
	env        string
	configPath string
	name       string
	steps      int
	seedFile   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, creating new migration files and loading seed data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new timestamped SQL migration file with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load packages and users from a YAML file",
		Long:  `Insert the packages and users listed in a seed file. Existing packages (by name) and users (by email) are skipped.`,
		RunE:  runSeed,
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.LoadFile("", configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func gooseStrategy(cfg *config.Config) (*migration.GooseStrategy, error) {
	if cfg.Database.IsSQLite() {
		return nil, fmt.Errorf("versioned migrations require the mysql driver, sqlite schemas are managed by migrate up")
	}
	return migration.NewGooseStrategy(""), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "driver", cfg.Database.Driver)

	manager := migration.NewManager(cfg.Database.Driver)
	if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		log.Errorw("migration failed", "error", err)
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := gooseStrategy(cfg)
	if err != nil {
		return err
	}

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := gooseStrategy(cfg)
	if err != nil {
		return err
	}

	log.Infow("checking migration status", "environment", env)

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := strategy.Status(database.Get()); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}

	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger()

	log.Infow("creating new migration", "name", name)

	strategy := migration.NewGooseStrategy("")
	if err := strategy.Create(name); err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, migration.DefaultScriptsPath)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	seed, err := migration.LoadSeedFile(seedFile)
	if err != nil {
		return err
	}

	gdb := database.Get()
	seeder := migration.NewSeeder(
		repository.NewPackageRepository(gdb, log),
		repository.NewUserRepository(gdb, log),
		log,
	)

	result, err := seeder.Seed(context.Background(), seed)
	if err != nil {
		log.Errorw("seeding failed", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Packages: %d created, %d skipped\nUsers:    %d created, %d skipped\n",
		result.PackagesCreated, result.PackagesSkipped, result.UsersCreated, result.UsersSkipped)
	return nil
}
