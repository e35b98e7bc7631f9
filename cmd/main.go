package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mateusmacedo/go-layers/internal/busticket"
	"github.com/mateusmacedo/go-layers/internal/busticket/application"
	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	"github.com/mateusmacedo/go-layers/internal/busticket/infrastructure"
	"github.com/mateusmacedo/go-layers/internal/config"
	pkgApp "github.com/mateusmacedo/go-layers/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-layers/pkg/domain"
	channelsAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/channels/adapter"
	kafkaAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/kafka/adapter"
	redisAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/redis/adapter"
	zapAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zapLogger, err := zapAdapter.NewZapLogger(cfg.AppName, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = zapLogger.Sync() }()
	// Layers sem logger explícito usam o logger global.
	zap.ReplaceGlobals(zapLogger)
	appLogger := zapAdapter.NewZapAppLoggerFrom(zapLogger)

	if err := application.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		appLogger.Error(ctx, "Erro ao registrar métricas", map[string]interface{}{"error": err})
		return err
	}

	busTicketRepo, err := newRepository(cfg, appLogger)
	if err != nil {
		appLogger.Error(ctx, "Erro ao inicializar o repositório", map[string]interface{}{"error": err})
		return err
	}

	publisher, subscriber, err := newPubSub(cfg, appLogger)
	if err != nil {
		appLogger.Error(ctx, "Erro ao inicializar o pub/sub", map[string]interface{}{
			"error":   err,
			"backend": cfg.EventsBackend,
		})
		return err
	}
	defer func() {
		_ = publisher.Close()
		_ = subscriber.Close()
	}()

	busTicketSlice := busticket.NewBusTicketSlice(
		publisher,
		subscriber,
		pkgDomain.NewUUID,
		appLogger,
		busTicketRepo,
	)
	if err := busTicketSlice.Start(ctx); err != nil {
		appLogger.Error(ctx, "Erro ao consumir eventos", map[string]interface{}{"error": err})
		return err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Handle("/metrics", promhttp.Handler())
	busTicketSlice.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info(ctx, "Server starting on:"+cfg.HTTPAddr, map[string]interface{}{
			"events_backend": cfg.EventsBackend,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "Erro ao iniciar o servidor", map[string]interface{}{"error": err})
			serveErr <- err
			cancel()
		}
	}()

	<-ctx.Done()
	appLogger.Info(context.Background(), "Encerrando servidor...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(context.Background(), "Erro ao encerrar servidor", map[string]interface{}{"error": err})
	}

	appLogger.Info(context.Background(), "Servidor encerrado", nil)

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

func newRepository(cfg config.Config, logger pkgApp.AppLogger) (domain.BusTicketRepository, error) {
	if cfg.DatabaseDSN == "" {
		return infrastructure.NewInMemoryBusTicketRepository(logger), nil
	}
	return infrastructure.NewGormBusTicketRepository(cfg.DatabaseDSN, logger)
}

func newPubSub(cfg config.Config, logger pkgApp.AppLogger) (message.Publisher, message.Subscriber, error) {
	switch cfg.EventsBackend {
	case config.EventsBackendRedis:
		client := redisAdapter.NewRedisClient(cfg.RedisAddr, "", 0)
		return redisAdapter.NewRedisStreamPubSub(client, cfg.ConsumerGroup, logger)
	case config.EventsBackendKafka:
		return kafkaAdapter.NewKafkaPubSub(cfg.KafkaBrokers, cfg.ConsumerGroup, logger)
	default:
		pubSub := channelsAdapter.NewGoChannelPubSub(logger)
		return pubSub, pubSub, nil
	}
}
