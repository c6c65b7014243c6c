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

	"adalbertofjr/cadastro-produtos/ajun"
	"adalbertofjr/cadastro-produtos/ajun/middleware"
	"adalbertofjr/cadastro-produtos/ajun/middleware/ratelimiter"
	"adalbertofjr/cadastro-produtos/cmd/configs"
	"adalbertofjr/cadastro-produtos/internal/database/local"
	"adalbertofjr/cadastro-produtos/internal/infra/api"
	"adalbertofjr/cadastro-produtos/internal/logging"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config := loadConfigs()
	durations, err := config.ParseDurations()
	if err != nil {
		fmt.Println(err)
		panic(err)
	}

	logger, err := logging.New(logging.Config{
		Mode:     config.LogMode,
		Level:    config.LogLevel,
		Filename: config.LogFile,
	})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter, err := newRateLimiter(ctx, config, durations, logger)
	if err != nil {
		logger.Fatal("erro ao configurar rate limiter", zap.Error(err))
	}

	store := local.InitDataSource()
	handler := newRouter(store, limiter, logger)

	addr := ":" + config.ServerPort
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logger.Info("Starting web server on port", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("erro no servidor http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("desligando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("erro ao desligar servidor", zap.Error(err))
	}
}

// newRouter monta as rotas da aplicação. limiter pode ser nil quando o
// rate limiter estiver desligado.
func newRouter(store api.ProductStore, limiter ajun.Limiter, logger *zap.Logger) http.Handler {
	h := api.NewHandler(store, logger)

	ajunRouter := ajun.NewRouter()
	ajunRouter.Use(middleware.RequestLogger(logger))
	if limiter != nil {
		ajunRouter.RateLimiter(limiter)
	}

	ajunRouter.Get("/", h.ListProductsHandler)
	ajunRouter.Post("/cadastrar", h.CreateProductHandler)
	ajunRouter.Get("/get-produtos", h.ListProductsJSONHandler)
	ajunRouter.Get("/health", api.HealthHandler)
	ajunRouter.Handle("/metrics", promhttp.Handler())

	return ajunRouter.Handler
}

func newRateLimiter(ctx context.Context, config *configs.Config, durations configs.Durations, logger *zap.Logger) (ajun.Limiter, error) {
	if config.RateLimiterMaxRequests <= 0 {
		logger.Info("rate limiter desligado")
		return nil, nil
	}

	var backend ratelimiter.Backend
	switch config.RateLimiterBackend {
	case "redis":
		redisBackend := ratelimiter.NewRedisBackend(config.RateLimiterRedisAddr)
		if err := redisBackend.Ping(ctx); err != nil {
			return nil, err
		}
		go func() {
			<-ctx.Done()
			redisBackend.Close()
		}()
		backend = redisBackend
	case "memory", "":
		memoryBackend := ratelimiter.NewMemoryBackend()
		go memoryBackend.StartCleanupWorker(ctx, durations.RateLimiterCleanupInterval, logger)
		backend = memoryBackend
	default:
		return nil, fmt.Errorf("RATE_LIMITER_BACKEND inválido: %s", config.RateLimiterBackend)
	}

	logger.Info("rate limiter ligado",
		zap.String("backend", config.RateLimiterBackend),
		zap.Int("max_requests", config.RateLimiterMaxRequests),
		zap.Int("token_max_requests", config.RateLimiterTokenMaxRequests))

	return ratelimiter.NewRateLimiter(
		ratelimiter.NewRateLimiterConfig(
			config.RateLimiterMaxRequests,
			durations.RateLimiterTimeDelay,
			config.RateLimiterTokenMaxRequests,
			durations.RateLimiterTokenTimeDelay,
			durations.RateLimiterWindow),
		backend,
		logger), nil
}

func loadConfigs() *configs.Config {
	config, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}
	return config
}
