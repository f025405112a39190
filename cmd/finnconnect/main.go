package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/finnconnect/finnconnect/internal/adapters/database/pgsql"
	"github.com/finnconnect/finnconnect/internal/adapters/providers/monzo"
	"github.com/finnconnect/finnconnect/internal/adapters/providers/openexchangerates"
	portsrepo "github.com/finnconnect/finnconnect/internal/core/ports/repositories"
	"github.com/finnconnect/finnconnect/internal/core/services"
	"github.com/finnconnect/finnconnect/internal/handlers"
	"github.com/finnconnect/finnconnect/internal/middleware"
	"github.com/finnconnect/finnconnect/internal/platform/clock"
	"github.com/finnconnect/finnconnect/internal/platform/config"
	"github.com/finnconnect/finnconnect/internal/scheduler"
	"github.com/finnconnect/finnconnect/pkg/database"
	"github.com/finnconnect/finnconnect/pkg/httpclient"
)

// @title FinnConnect API
// @version 1.0
// @description Personal finance backend: exchange rate ingestion, provider token storage and Monzo account queries.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	clk := clock.New(cfg.TimeZone)
	httpClient := httpclient.New(cfg.HTTPClientTimeout)

	rateProvider := openexchangerates.NewClient(httpClient, cfg.OpenExchangeRatesBaseURL, cfg.OpenExchangeRatesAPIKey)
	monzoAPI := monzo.NewClient(httpClient, monzo.Config{
		ClientID:     cfg.MonzoClientID,
		ClientSecret: cfg.MonzoClientSecret,
		RedirectURL:  cfg.MonzoRedirectURL,
		AuthURL:      cfg.MonzoAuthURL,
		APIBaseURL:   cfg.MonzoAPIBaseURL,
	})

	repos := portsrepo.RepositoryProvider{
		ExchangeRateRepo: pgsql.NewExchangeRateRepository(dbPool),
		OAuthTokenRepo:   pgsql.NewOAuthTokenRepository(dbPool),
		UserRepo:         pgsql.NewUserRepository(dbPool),
	}
	container := services.NewServiceContainer(cfg, repos, rateProvider, monzoAPI, clk)

	// Periodic rate ingestion runs alongside the server.
	sched := scheduler.New(container.ExchangeRate, cfg.RateFetchInterval)
	go sched.Start(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
