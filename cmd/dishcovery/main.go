package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dishcovery/dishcovery/internal/app"
	"github.com/dishcovery/dishcovery/internal/domain/services"
	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	"github.com/dishcovery/dishcovery/internal/infrastructure/database"
	"github.com/dishcovery/dishcovery/internal/infrastructure/mealdb"
	"github.com/dishcovery/dishcovery/internal/infrastructure/repositories"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version   = "0.1.0"
	buildTime = "unknown"
)

func main() {
	// Optional .env for local development; absence is not an error
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "dishcovery",
		Short: "Dishcovery - recipe discovery and guided cooking service",
		Long: `Dishcovery is a recipe discovery backend: it matches dishes to the
ingredients a user has on hand, analyzes cooking steps into timers and
flame levels, and hosts a community of user-submitted recipes, comments,
chat and ratings.`,
	}

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Dishcovery version %s (built %s)\n", version, buildTime)
		},
	})

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Dishcovery server",
		RunE:  runServe,
	}
	rootCmd.AddCommand(serveCmd)

	// Sync command
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Import the TheMealDB catalog into the local database",
		RunE:  runSync,
	}
	syncCmd.Flags().Bool("force", false, "re-import even when the catalog is already populated")
	rootCmd.AddCommand(syncCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, mongodb, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info("Starting Dishcovery",
		zap.String("version", version),
		zap.String("environment", cfg.App.Env),
	)

	// Create application
	application, err := app.New(cfg, log, mongodb)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.GetAddress(),
		Handler:      application.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("address", cfg.GetAddress()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	// Graceful shutdown
	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server shutdown complete")
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	cfg, log, mongodb, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	repos := repositories.NewProvider(mongodb)
	client := mealdb.NewClient(cfg.MealDB, log)
	sync := services.NewSyncService(repos.Meal, client, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := sync.Run(ctx, force)
	if err != nil {
		return fmt.Errorf("catalog sync failed: %w", err)
	}

	if result.Skipped {
		fmt.Println("Catalog already populated; use --force to re-import")
		return nil
	}
	fmt.Printf("Imported %d meals (%d failed)\n", result.Imported, result.Failed)
	return nil
}

// bootstrap loads config, builds the logger and connects to MongoDB.
// The returned cleanup closes the database connection.
func bootstrap() (*config.Config, *logger.Logger, *database.MongoDB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetGlobal(log)

	mongodb, err := database.NewMongoDB(cfg.MongoDB, log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mongodb.Connect(ctx); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	cleanup := func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := mongodb.Close(shutdownCtx); err != nil {
			log.Error("Failed to close MongoDB connection", zap.Error(err))
		}
		_ = log.Sync()
	}

	return cfg, log, mongodb, cleanup, nil
}
