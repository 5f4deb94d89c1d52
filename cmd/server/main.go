package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shahadathhs/blogman/config"
	"github.com/shahadathhs/blogman/internal/auth"
	"github.com/shahadathhs/blogman/internal/email"
	"github.com/shahadathhs/blogman/internal/health"
	"github.com/shahadathhs/blogman/internal/infrastructure/postgres"
	"github.com/shahadathhs/blogman/internal/janitor"
	ctxlog "github.com/shahadathhs/blogman/internal/log"
	"github.com/shahadathhs/blogman/internal/metrics"
	httptransport "github.com/shahadathhs/blogman/internal/transport/http"
	"github.com/shahadathhs/blogman/internal/transport/http/handler"
	"github.com/shahadathhs/blogman/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.SessionTTL())
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(userRepo, emailSender, tokens, googleVerifier,
		cfg.VerifyURLBase, cfg.ResetURLBase, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Users
	userUsecase := usecase.NewUserUsecase(userRepo)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	// Blogs
	blogRepo := postgres.NewBlogRepository(pool)
	blogUsecase := usecase.NewBlogUsecase(blogRepo)
	blogHandler := handler.NewBlogHandler(blogUsecase, logger)

	// Tags
	tagRepo := postgres.NewTagRepository(pool)
	tagUsecase := usecase.NewTagUsecase(tagRepo)
	tagHandler := handler.NewTagHandler(tagUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	sweeper, err := janitor.New(userRepo, cfg.JanitorSchedule, logger)
	if err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}
	sweeper.Start()

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, tokens, authHandler, userHandler, blogHandler, tagHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
