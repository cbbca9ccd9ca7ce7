package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"shop/config"
	"shop/infras/otel/mocks"
	"shop/shared/cache"
	"shop/shared/constant"
	"shop/shared/logger"
	"shop/transport/http/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddleware(t *testing.T, cfg *config.Config) (middleware.AppMiddleware, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	otel := mocks.NewOtel()

	return middleware.NewAppMiddleware(otel, cfg, cache.NewRedisCache(client, otel)), server
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	mw, _ := newMiddleware(t, cfg)
	handler := mw.RateLimit()(okHandler)

	statuses := make([]int, 0, 3)

	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/v1/galleries", nil)
		request.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		statuses = append(statuses, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	other := httptest.NewRequest(http.MethodGet, "/v1/galleries", nil)
	other.Header.Set(constant.RequestHeaderRealIP, "198.51.100.1")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, other)

	assert.Equal(t, http.StatusOK, recorder.Code, "other clients have their own window")
	assert.Equal(t, "1", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
}

func TestRateLimit_ConcurrentBurst(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 5
	cfg.App.RateLimiter.WindowSeconds = 60

	mw, _ := newMiddleware(t, cfg)
	handler := mw.RateLimit()(okHandler)

	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			request := httptest.NewRequest(http.MethodGet, "/v1/tokens", nil)
			request.Header.Set(constant.RequestHeaderRealIP, "203.0.113.9")

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if recorder.Code == http.StatusOK {
				allowed.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(5), allowed.Load())
}

func TestRateLimit_CacheDownAllowsRequest(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 1
	cfg.App.RateLimiter.WindowSeconds = 60

	mw, server := newMiddleware(t, cfg)
	server.Close()

	recorder := httptest.NewRecorder()
	mw.RateLimit()(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	mw, server := newMiddleware(t, &config.Config{})

	for range 5 {
		recorder := httptest.NewRecorder()
		mw.RateLimit()(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	assert.Empty(t, server.Keys())
}

func TestRequestID(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	var seen string

	handler := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constant.ContextKeyRequestID).(string)

		logger.FromContext(r.Context()).Info().Msg("handled")
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("propagates incoming id", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constant.RequestHeaderRequestID, "req-123")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", recorder.Header().Get(constant.RequestHeaderRequestID))
	})

	t.Run("generates missing id", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.NotEqual(t, "req-123", seen)
		assert.Equal(t, seen, recorder.Header().Get(constant.RequestHeaderRequestID))
	})
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://shop.example.com"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	mw, _ := newMiddleware(t, cfg)

	request := httptest.NewRequest(http.MethodGet, "/v1/galleries", nil)
	request.Header.Set("Origin", "https://shop.example.com")

	recorder := httptest.NewRecorder()
	mw.CORS()(okHandler).ServeHTTP(recorder, request)

	assert.Equal(t, "https://shop.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestTracing_PassesThrough(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	handler := mw.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Equal(t, http.StatusTeapot, recorder.Code)
}
