package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/subadmin/internal/infrastructure/config"
	"github.com/orris-inc/subadmin/internal/infrastructure/database"
	"github.com/orris-inc/subadmin/internal/infrastructure/migration"
	httpRouter "github.com/orris-inc/subadmin/internal/interfaces/http"
	"github.com/orris-inc/subadmin/internal/shared/biztime"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

var (
	env         string
	configPath  string
	autoMigrate bool
)

// Version is reported by /health.
var Version = "1.0.0"

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the subadmin HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.LoadFile(ginMode, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, ginMode == gin.DebugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"version", Version,
		"auto_migrate", autoMigrate,
	)

	gin.SetMode(ginMode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(cfg); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(database.Get(), cfg, Version, logger.NewLogger())
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	container.SetupRoutes()

	// WriteTimeout stays zero so SSE streams are not cut off.
	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           container.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", ginMode,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		container.Shutdown()
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("shutting down server...")

	container.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config) error {
	manager := migration.NewManager(cfg.Database.Driver)

	if autoMigrate {
		if env == constants.EnvProduction {
			logger.Warn("auto-migration is enabled in production environment")
		}

		logger.Info("running migrations", "strategy", manager.GetStrategy().GetName())
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return err
		}
		logger.Info("migrations completed successfully")
		return nil
	}

	if goose, ok := manager.GetStrategy().(*migration.GooseStrategy); ok {
		version, err := goose.GetVersion(database.Get())
		if err != nil {
			logger.Warn("failed to check migration status", "error", err)
			return nil
		}
		logger.Info("current migration version", "version", version)
	}

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", gin.ReleaseMode:
		return gin.ReleaseMode
	case constants.EnvTest, "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
