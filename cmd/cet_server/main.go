package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/csvsource"
	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/database/sqlstore"
	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/presets"
	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/rateapi"
	portsrepo "github.com/SscSPs/currency_exchange_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/services"
	"github.com/SscSPs/currency_exchange_tracker/internal/handlers"
	"github.com/SscSPs/currency_exchange_tracker/internal/middleware"
	"github.com/SscSPs/currency_exchange_tracker/internal/platform/config"
	"github.com/SscSPs/currency_exchange_tracker/internal/platform/logging"
	"github.com/SscSPs/currency_exchange_tracker/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// @title Currency Exchange Tracker API
// @version 1.0
// @description Historical exchange rate analysis, volatility and live basket valuation.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, closer := logging.New(cfg.LogLevel, cfg.LogFile)
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer database.Close(db, logger)
	}

	// The rate table is loaded once and stays read-only for the life of the process.
	table, err := repos.RateTables.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rate table: %w", err)
	}
	if table.IsEmpty() {
		logger.Warn("No exchange rate data loaded", slog.String("source", cfg.DataSource))
	} else {
		first, last, _ := table.DateRange()
		logger.Info("Rate table loaded",
			slog.Int("rows", table.Len()),
			slog.Int("currencies", len(table.Codes)),
			slog.Time("first", first),
			slog.Time("last", last))
	}

	basketPresets, err := presets.LoadFile(cfg.BasketPresetsFile)
	if err != nil {
		// Presets are optional; a bad file only disables them.
		logger.Error("Failed to load basket presets", slog.String("file", cfg.BasketPresetsFile), slog.String("error", err.Error()))
	}

	container := services.NewServiceContainer(cfg, table, repos, basketPresets)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer).Middleware())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	if err := handlers.RegisterRoutes(r, cfg, container, nil); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

// buildRepositories selects the rate table source and wires the live rate client.
// The returned db is nil for the CSV source.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, *sql.DB, error) {
	repos := portsrepo.RepositoryProvider{
		LiveRates: rateapi.NewClient(rateapi.Config{
			BaseURL:  cfg.ExchangeRateAPIURL,
			APIKey:   cfg.ExchangeRateAPIKey,
			Timeout:  cfg.RateAPITimeout,
			CacheTTL: cfg.RateCacheTTL,
			RPS:      cfg.RateAPIRPS,
		}, rateapi.NewMetrics(prometheus.DefaultRegisterer), logger),
	}

	if cfg.DataSource == config.DataSourceCSV {
		logger.Info("Loading rates from CSV files", slog.String("dir", cfg.DataDir))
		repos.RateTables = csvsource.NewSource(cfg.DataDir, logger)
		return repos, nil, nil
	}

	dialect, err := sqlstore.NewDialect(cfg.DBDriver)
	if err != nil {
		return repos, nil, err
	}
	if err := sqlstore.Migrate(ctx, cfg.DBDriver, cfg.DatabaseURL, logger); err != nil {
		return repos, nil, err
	}
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return repos, nil, err
	}
	logger.Info("Loading rates from database", slog.String("driver", cfg.DBDriver))

	imports := sqlstore.NewRateImportRepository(db, dialect)
	repos.Imports = imports
	repos.RateTables = sqlstore.NewRateTableRepository(db, dialect, cfg.DBYears, imports, logger)
	return repos, db, nil
}
