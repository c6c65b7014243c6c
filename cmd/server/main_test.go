package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"adalbertofjr/cadastro-produtos/cmd/configs"
	"adalbertofjr/cadastro-produtos/internal/database/local"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func cadastrar(t *testing.T, handler http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/cadastrar", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func testDurations() configs.Durations {
	return configs.Durations{
		RateLimiterTimeDelay:       time.Minute,
		RateLimiterTokenTimeDelay:  time.Minute,
		RateLimiterWindow:          time.Minute,
		RateLimiterCleanupInterval: time.Minute,
	}
}

func TestServer_CadastroEListagem(t *testing.T) {
	store := local.InitDataSource()
	handler := newRouter(store, nil, zap.NewNop())

	w := cadastrar(t, handler, url.Values{"nome": {"Caneca"}, "descricao": {"Azul"}, "valor": {"25.00"}, "disponivel": {"sim"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = cadastrar(t, handler, url.Values{"nome": {"Copo"}, "valor": {"10.00"}, "disponivel": {"nao"}})
	require.Equal(t, http.StatusFound, w.Code)

	assert.Equal(t, 2, store.Count())

	w = get(handler, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "Copo"), strings.Index(body, "Caneca"))

	w = get(handler, "/get-produtos")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Less(t, strings.Index(w.Body.String(), "Copo"), strings.Index(w.Body.String(), "Caneca"))
}

func TestServer_ValorInvalido(t *testing.T) {
	store := local.InitDataSource()
	handler := newRouter(store, nil, zap.NewNop())

	w := cadastrar(t, handler, url.Values{"nome": {"Caneca"}, "valor": {"abc"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, store.Count())
}

func TestServer_MetodoNaoPermitido(t *testing.T) {
	handler := newRouter(local.InitDataSource(), nil, zap.NewNop())

	w := get(handler, "/cadastrar")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_HealthEMetrics(t *testing.T) {
	handler := newRouter(local.InitDataSource(), nil, zap.NewNop())
	cadastrar(t, handler, url.Values{"nome": {"Copo"}, "valor": {"10"}})

	w := get(handler, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())

	w = get(handler, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "produtos_cadastrados_total")
}

func TestNewRateLimiter_Desligado(t *testing.T) {
	limiter, err := newRateLimiter(context.Background(), &configs.Config{}, testDurations(), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, limiter)
}

func TestNewRateLimiter_BackendInvalido(t *testing.T) {
	config := &configs.Config{RateLimiterMaxRequests: 1, RateLimiterBackend: "memcached"}

	_, err := newRateLimiter(context.Background(), config, testDurations(), zap.NewNop())
	assert.Error(t, err)
}

func TestServer_RateLimiterMemory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := &configs.Config{RateLimiterMaxRequests: 2, RateLimiterBackend: "memory"}
	limiter, err := newRateLimiter(ctx, config, testDurations(), zap.NewNop())
	require.NoError(t, err)

	handler := newRouter(local.InitDataSource(), limiter, zap.NewNop())

	assert.Equal(t, http.StatusFound, cadastrar(t, handler, url.Values{"valor": {"1"}}).Code)
	assert.Equal(t, http.StatusFound, cadastrar(t, handler, url.Values{"valor": {"2"}}).Code)

	w := cadastrar(t, handler, url.Values{"valor": {"3"}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests", w.Body.String())
}

func TestServer_RateLimiterLogaBloqueio(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	config := &configs.Config{RateLimiterMaxRequests: 1, RateLimiterBackend: "memory"}
	limiter, err := newRateLimiter(ctx, config, testDurations(), logger)
	require.NoError(t, err)

	handler := newRouter(local.InitDataSource(), limiter, logger)

	require.Equal(t, http.StatusOK, get(handler, "/").Code)
	require.Equal(t, http.StatusTooManyRequests, get(handler, "/").Code)

	bloqueios := logs.FilterMessage("requisição").FilterField(zap.Int("status", http.StatusTooManyRequests))
	assert.Equal(t, 1, bloqueios.Len(), "a resposta 429 deveria ser registrada no log de requisições")
}

func TestServer_RateLimiterRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := &configs.Config{
		RateLimiterMaxRequests: 1,
		RateLimiterBackend:     "redis",
		RateLimiterRedisAddr:   mr.Addr(),
	}
	limiter, err := newRateLimiter(ctx, config, testDurations(), zap.NewNop())
	require.NoError(t, err)

	handler := newRouter(local.InitDataSource(), limiter, zap.NewNop())

	assert.Equal(t, http.StatusOK, get(handler, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(handler, "/").Code)
}
