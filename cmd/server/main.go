// @title quotedesk API
// @version 1.0
// @description GST line-item tax and totals engine for quotations and other sales and purchase documents.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quotedesk/internal/auth"
	"quotedesk/internal/config"
	"quotedesk/internal/email/noop"
	"quotedesk/internal/email/ses"
	"quotedesk/internal/gst"
	"quotedesk/internal/handler"
	"quotedesk/internal/logger"
	"quotedesk/internal/masterdata"
	"quotedesk/internal/metrics"
	"quotedesk/internal/port"
	"quotedesk/internal/repository/postgres"
	"quotedesk/internal/router"
	"quotedesk/internal/service"
	s3storage "quotedesk/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	quotationRepo := postgres.NewQuotationRepo(db)
	hsnEntries, err := postgres.NewHSNRepo(db).LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load HSN codes: %w", err)
	}
	hsn := gst.NewHSNLookup(hsnEntries)
	zlog.Info("HSN codes loaded", zap.Int("codes", hsn.Len()))

	checks := map[string]handler.ReadinessCheck{"database": db.PingContext}

	// Master data, optionally cached in redis
	var records port.MasterDataSource = masterdata.NewClient(&cfg.RecordsAPI)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
		records = masterdata.NewCachedSource(records, rdb, cfg.Redis.CacheTTL, zlog.Named("masterdata"))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		zlog.Info("master data cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	emailSender, err := newEmailSender(ctx, cfg.Email, zlog)
	if err != nil {
		return err
	}

	m := metrics.New(nil)

	// Initialize services
	quotationSvc := service.NewQuotationService(quotationRepo, records, hsn, m, zlog)
	exportSvc := service.NewExportService(quotationRepo, records, s3Client, emailSender, cfg.S3, m, zlog)

	// Initialize handlers
	quotationH := handler.NewQuotationHandler(quotationSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(checks)

	// Setup router
	r := router.Setup(
		auth.NewVerifier(cfg.JWT),
		zlog.Named("http"),
		m,
		promhttp.Handler(),
		cfg.CORS.AllowedOrigins,
		quotationH,
		exportH,
		healthH,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newEmailSender(ctx context.Context, cfg config.EmailConfig, zlog *zap.Logger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := ses.NewSESSender(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		zlog.Info("email provider: ses", zap.String("from", cfg.FromAddress))
		return sender, nil
	default:
		zlog.Info("email provider: noop")
		return noop.NewNoopSender(zlog), nil
	}
}
