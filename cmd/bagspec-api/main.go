package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/internal/handler"
	"github.com/noah-isme/bagspec-api/internal/repository"
	"github.com/noah-isme/bagspec-api/internal/service"
	"github.com/noah-isme/bagspec-api/internal/view"
	"github.com/noah-isme/bagspec-api/pkg/cache"
	"github.com/noah-isme/bagspec-api/pkg/config"
	"github.com/noah-isme/bagspec-api/pkg/database"
	"github.com/noah-isme/bagspec-api/pkg/jobs"
	"github.com/noah-isme/bagspec-api/pkg/logger"
	"github.com/noah-isme/bagspec-api/pkg/mailer"
	"github.com/noah-isme/bagspec-api/pkg/token"
)

// @title Filter Bag Specification API
// @version 1.0.0
// @description Single-use form links for filter bag specifications.
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, size cache disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "bagspec")
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Sizes.CacheTTL, logr, redisClient != nil)

	sender, err := mailer.New(cfg.Mail, logr)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}
	emails, err := view.NewEmails()
	if err != nil {
		return fmt.Errorf("parse email templates: %w", err)
	}
	notifier := service.NewNotificationService(sender, emails, service.NotificationConfig{
		AdminAddress:   cfg.Mail.AdminAddress,
		ContactAddress: cfg.Mail.AdminAddress,
		SubmissionsURL: cfg.PublicBaseURL + "/submissions",
	}, metrics, logr)

	if cfg.Notify.Async {
		queue := jobs.NewQueue("notifications", notifier.HandleJob, jobs.QueueConfig{
			Workers:    cfg.Notify.Workers,
			MaxRetries: cfg.Notify.Retries,
			RetryDelay: cfg.Notify.RetryDelay,
			Logger:     logr,
		})
		queue.Start(context.Background())
		defer queue.Stop()
		notifier.UseQueue(queue)
	}

	validate := validator.New()
	submissions := repository.NewSubmissionRepository(db)
	forms := service.NewFormService(submissions, token.NewIssuer(), cfg, notifier, metrics, validate, logr)
	sizes := service.NewBagSizeService(repository.NewBagSizeRepository(db), cacheSvc, validate, logr)
	exports := service.NewExportService(forms, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, logr, metrics, routeHandlers{
		forms:   handler.NewFormHandler(forms),
		pages:   handler.NewPageHandler(forms),
		sizes:   handler.NewSizeHandler(sizes),
		exports: handler.NewExportHandler(exports),
		ops: handler.NewMetricsHandler(metrics, map[string]handler.Pinger{
			"database": submissions,
			"redis":    cacheRepo,
		}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("mail_driver", cfg.Mail.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
