package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sova/config"
	"sova/database"
	"sova/routes"
	"sova/services"
	"sova/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr      string
	serveMigrate   bool
	serveNoRedis   bool
	shutdownPeriod = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the campaign HTTP server",
	Long: `Start the campaign HTTP server.

Examples:
  sova serve
  sova serve --addr :8080 --migrate`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :$PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "run migrations before serving")
	serveCmd.Flags().BoolVar(&serveNoRedis, "no-redis", false, "run without redis (no stats cache, rate limits or token blacklist)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()

	logger, err := utils.NewLogger(cfg.AppEnv, cfg.LogsDir)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.CashfreeSecretKey == "" {
		logger.Warn("CASHFREE_SECRET_KEY is empty, every payment callback will be rejected")
	}

	// Подключение к PostgreSQL
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	if serveMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		logger.Info("migration complete")
	}

	// Подключение к Redis
	var rdb *redis.Client
	if !serveNoRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))
	}

	store := database.NewDonationStore(db)
	stats := services.NewStatsService(store, rdb, logger)

	content, err := services.NewContentService(cfg.TargetDate)
	if err != nil {
		return err
	}

	renderer, err := services.NewCertificateRenderer(cfg.PublicDir)
	if err != nil {
		return err
	}
	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFromName)

	notifier := services.NewNotifier(renderer, mailer, logger, cfg.NotifierWorkers, cfg.NotifierQueueSize)
	notifier.Start()
	defer notifier.Stop()

	if rdb != nil {
		statsCron := services.StartStatsCron(stats, logger)
		defer statsCron.Stop()
	}

	gateway := services.NewCashfree(cfg.CashfreeBaseURL, cfg.CashfreeAppID, cfg.CashfreeSecretKey, cfg.CashfreeAPIVersion, cfg.GatewayTimeout)

	router := routes.SetupRouter(routes.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Redis:    rdb,
		Store:    store,
		Broker:   services.NewOrderBroker(gateway, logger),
		Recorder: services.NewDonationRecorder(store, notifier, stats, cfg.CashfreeSecretKey, logger),
		Stats:    stats,
		Content:  content,
		Mailer:   mailer,
		Notifier: notifier,
	})

	addr := serveAddr
	if addr == "" {
		addr = ":" + cfg.Port
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	// notifier.Stop (defer) дождётся отправки писем из очереди
	return nil
}
