package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"goboard/internal/bootstrap"
	gameDelivery "goboard/internal/delivery/game"
	"goboard/internal/domain/game"
	ownMiddleware "goboard/internal/middleware"
	"goboard/internal/repository"
	gameuc "goboard/internal/usecase/game"
)

const (
	healthService       = "goboard.Game"
	healthCheckInterval = 10 * time.Second
	shutdownTimeout     = 5 * time.Second
)

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	storage := repository.Open(ctx, cfg, logger)
	defer storage.Close(context.Background())

	hub := gameDelivery.NewHub(logger)
	defer hub.Close()

	session := gameuc.NewSession(ctx, logger, storage.Store, hub, sessionConfig(cfg, logger))
	defer session.Close()

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	gameDelivery.NewGameHandler(logger, session, hub).Routes(r)

	if cfg.GrpcPort != "" {
		lis, err := net.Listen("tcp", cfg.GrpcPort)
		if err != nil {
			logger.Errorw("Failed to listen for grpc", "error", err)
			return
		}
		stop := serveHealth(ctx, lis, storage, logger)
		defer stop()
	}

	srv := &http.Server{Addr: cfg.ServerPort, Handler: r}
	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// дождаться закрытия соединений
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnw("http shutdown", "error", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("Failed to start server", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func sessionConfig(cfg *bootstrap.Config, log *zap.SugaredLogger) gameuc.Config {
	sc := gameuc.DefaultConfig()
	sc.AIDelay = cfg.AIDelay()
	if c, ok := game.ParseColor(cfg.DefaultHumanColor); ok {
		sc.DefaultHumanColor = c
	} else {
		log.Warnw("ignoring DEFAULT_HUMAN_COLOR", "value", cfg.DefaultHumanColor)
	}
	return sc
}

// serveHealth exposes the standard gRPC health service. The game service
// reports NOT_SERVING while the storage backend is unreachable.
func serveHealth(ctx context.Context, lis net.Listener, storage *repository.Storage, log *zap.SugaredLogger) func() {
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		status := healthpb.HealthCheckResponse_SERVING
		if err := storage.Ping(pingCtx); err != nil {
			log.Warnw("storage health check failed", "backend", storage.Backend, "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus(healthService, status)
	}
	check()

	go func() {
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check()
			}
		}
	}()

	go func() {
		log.Infof("gRPC health is running on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			log.Warnw("grpc server stopped", "error", err)
		}
	}()

	return func() {
		hs.Shutdown()
		grpcServer.GracefulStop()
	}
}
