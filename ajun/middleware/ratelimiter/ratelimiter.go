package ratelimiter

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"adalbertofjr/cadastro-produtos/internal/metrics"

	"go.uber.org/zap"
)

const APIKeyHeader = "API_KEY"

type RateLimiter struct {
	config  RateLimiterConfig
	backend Backend
	logger  *zap.Logger
}

type RateLimiterConfig struct {
	Limit      int
	Delay      time.Duration
	TokenLimit int
	TokenDelay time.Duration
	Window     time.Duration
}

func NewRateLimiter(config RateLimiterConfig, backend Backend, logger *zap.Logger) *RateLimiter {
	if config.Window <= 0 {
		config.Window = time.Second
	}
	return &RateLimiter{
		config:  config,
		backend: backend,
		logger:  logger,
	}
}

func NewRateLimiterConfig(limit int, delay time.Duration, tokenLimit int, tokenDelay time.Duration, window time.Duration) RateLimiterConfig {
	return RateLimiterConfig{
		Limit:      limit,
		Delay:      delay,
		TokenLimit: tokenLimit,
		TokenDelay: tokenDelay,
		Window:     window,
	}
}

func (rl *RateLimiter) RateLimiterHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := ClientIP(r)
		apiToken := r.Header.Get(APIKeyHeader)

		allowed, err := rl.Allow(r.Context(), clientIP, apiToken)
		if err != nil {
			rl.logger.Warn("rate limiter indisponível, liberando requisição",
				zap.String("ip", clientIP), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("Too many requests"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow conta a requisição e diz se ela pode seguir. Com token, e limite
// de token configurado, o token é a chave; senão vale o IP.
func (rl *RateLimiter) Allow(ctx context.Context, clientIP string, apiToken string) (bool, error) {
	key, tipo, maxRequests, timeDelay := rl.limitsFor(clientIP, apiToken)

	blockedUntil, err := rl.backend.BlockedUntil(ctx, key)
	if err != nil {
		return true, err
	}
	if blockedUntil.After(time.Now()) {
		metrics.RequisicoesBloqueadas.WithLabelValues(tipo).Inc()
		return false, nil
	}

	count, err := rl.backend.Increment(ctx, key, rl.config.Window)
	if err != nil {
		return true, err
	}

	if count > maxRequests {
		if err := rl.backend.Block(ctx, key, timeDelay); err != nil {
			return true, err
		}
		rl.logger.Info("cliente bloqueado",
			zap.String("chave", key),
			zap.Duration("duracao", timeDelay))
		metrics.RequisicoesBloqueadas.WithLabelValues(tipo).Inc()
		return false, nil
	}

	return true, nil
}

func (rl *RateLimiter) limitsFor(clientIP string, apiToken string) (string, string, int, time.Duration) {
	if apiToken != "" && rl.config.TokenLimit > 0 {
		return "token:" + apiToken, "token", rl.config.TokenLimit, rl.config.TokenDelay
	}
	return "ip:" + clientIP, "ip", rl.config.Limit, rl.config.Delay
}

func ClientIP(r *http.Request) string {
	ip := r.RemoteAddr
	clientIP, _, err := net.SplitHostPort(ip)
	if err != nil {
		clientIP = strings.Split(ip, ":")[0]
	}
	return clientIP
}
