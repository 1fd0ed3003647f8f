// Package main is the entry point for the fleet ledger API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/fleet-ledger/api"
	"github.com/pkordes/fleet-ledger/internal/auth"
	"github.com/pkordes/fleet-ledger/internal/config"
	"github.com/pkordes/fleet-ledger/internal/handler"
	"github.com/pkordes/fleet-ledger/internal/middleware"
	"github.com/pkordes/fleet-ledger/internal/receipt"
	"github.com/pkordes/fleet-ledger/internal/repo"
	"github.com/pkordes/fleet-ledger/internal/service"
	"github.com/pkordes/fleet-ledger/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		err := migrations.Up(ctx, db, logger)
		_ = db.Close()
		if err != nil {
			return err
		}
	}

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	txs := repo.NewTransactionRepo(pool)
	units := repo.NewUnitRepo(pool)
	drivers := repo.NewDriverRepo(pool)

	dashboard := service.NewDashboardService(trips, txs, units, drivers, service.DashboardConfig{
		Rates:       cfg.Rates,
		Primary:     cfg.PrimaryCurrency,
		LoadTimeout: cfg.LoadTimeout,
	}, logger)

	uploader, err := newReceiptUploader(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := handler.NewServer(handler.Deps{
		Trips:        service.NewTripService(trips),
		Transactions: service.NewTransactionService(txs, trips, nil),
		Fleet:        service.NewFleetService(units, drivers),
		Views:        dashboard,
		Exports:      service.NewExportService(dashboard),
		Receipts:     uploader,
		OpenAPI:      api.OpenAPI,
	})

	// --- Router -----------------------------------------------------------
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes))
	r.Mount("/", srv.Routes(middleware.NewAuth(auth.NewParser(cfg.JWTSecret))))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout covers the slowest path: a receipt upload that exhausts
	// UPLOAD_TIMEOUT on the primary store before falling back.
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.UploadTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newReceiptUploader wires S3 as the primary store when a bucket is
// configured; otherwise receipts go straight to the inline store.
func newReceiptUploader(ctx context.Context, cfg config.Config, logger *slog.Logger) (*receipt.Uploader, error) {
	inline := receipt.InlineStore{MaxBytes: cfg.MaxInlineReceiptBytes}
	if !cfg.S3.Enabled() {
		logger.Warn("S3_BUCKET not set, receipts will be stored inline")
		return receipt.NewUploader(nil, inline, cfg.UploadTimeout, logger), nil
	}

	up, err := receipt.NewS3Uploader(ctx, receipt.S3Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}
	primary := receipt.NewS3Store(up, cfg.S3.Bucket, cfg.S3.PublicBaseURL)
	return receipt.NewUploader(primary, inline, cfg.UploadTimeout, logger), nil
}
