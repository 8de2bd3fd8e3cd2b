package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/revtrack/backend/api/handler"
	"github.com/revtrack/backend/internal/config"
	"github.com/revtrack/backend/internal/infrastructure/monitor"
	pgInfra "github.com/revtrack/backend/internal/infrastructure/postgres"
	redisInfra "github.com/revtrack/backend/internal/infrastructure/redis"
	"github.com/revtrack/backend/internal/middleware"
	"github.com/revtrack/backend/internal/router"
	"github.com/revtrack/backend/internal/services/lifecycle"
	"github.com/revtrack/backend/pkg/httpcontext"
	"github.com/revtrack/backend/pkg/logger"
	"github.com/revtrack/backend/repository/postgres"
	redisRepo "github.com/revtrack/backend/repository/redis"
	authUC "github.com/revtrack/backend/usecase/auth"
	dashboardUC "github.com/revtrack/backend/usecase/dashboard"
	meetingUC "github.com/revtrack/backend/usecase/meeting"
	orderUC "github.com/revtrack/backend/usecase/order"
	taskUC "github.com/revtrack/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	orderRepo := postgres.NewOrderRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	authUseCase := authUC.New(sessionRepo, authUC.Credentials{
		Email:    cfg.Auth.Email,
		Password: cfg.Auth.Password,
	}, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, zapLogger)
	orderUseCase := orderUC.New(orderRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)
	meetingUseCase := meetingUC.New(orderRepo, zapLogger)
	dashboardUseCase := dashboardUC.New(orderRepo, taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Auth.SessionTTL),
		Order:     apiHandler.NewOrderHandler(orderUseCase, ctxAdapter, zapLogger),
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Meeting:   apiHandler.NewMeetingHandler(meetingUseCase, ctxAdapter, zapLogger),
		Dashboard: apiHandler.NewDashboardHandler(dashboardUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(cfg.Auth.JWTSecret, authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
