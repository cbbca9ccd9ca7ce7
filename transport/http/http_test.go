package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop/config"
	"shop/infras/otel/mocks"
	galleryMocks "shop/internal/domains/gallery/mocks"
	galleryDto "shop/internal/domains/gallery/model/dto"
	tokenMocks "shop/internal/domains/token/mocks"
	"shop/internal/handlers/gallery"
	"shop/internal/handlers/health"
	"shop/internal/handlers/token"
	"shop/shared/cache"
	"shop/shared/constant"
	"shop/shared/failure"
	transport "shop/transport/http"
	"shop/transport/http/middleware"
	"shop/transport/http/router"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	galleries *galleryMocks.MockGalleryService
	status    *health.Status
	server    *transport.HTTP
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	otel := mocks.NewOtel()

	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	status := health.NewStatus()
	galleries := galleryMocks.NewMockGalleryService(ctrl)

	routes := router.New(router.DomainHandlers{
		Gallery: gallery.New(galleries, otel),
		Token:   token.New(tokenMocks.NewMockTokenService(ctrl), otel),
		Health:  health.NewWithDependencies(status, map[string]health.Pinger{}),
	})

	appMiddleware := middleware.NewAppMiddleware(otel, cfg, cache.NewRedisCache(client, otel))

	return fixture{
		galleries: galleries,
		status:    status,
		server:    transport.New(cfg, routes, appMiddleware, status, nil, client, otel),
	}
}

func TestHTTP_ServeHTTP(t *testing.T) {
	f := newFixture(t)

	f.galleries.EXPECT().
		Get(gomock.Any(), int64(1)).
		Return(galleryDto.GalleryResponse{}, failure.NotFound("gallery"))

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/galleries/1", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"gallery not found"}`, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get(constant.RequestHeaderRequestID))
}

func TestHTTP_HealthFollowsStatus(t *testing.T) {
	f := newFixture(t)

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, health.ServerStateReady, f.status.Get())

	f.status.Set(health.ServerStateInGracePeriod)

	recorder = httptest.NewRecorder()
	f.server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestHTTP_RecoversFromPanics(t *testing.T) {
	f := newFixture(t)

	f.galleries.EXPECT().
		Delete(gomock.Any(), int64(1)).
		DoAndReturn(func(context.Context, int64) error {
			panic("boom")
		})

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/v1/galleries/1", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestHTTP_UnknownRoute(t *testing.T) {
	f := newFixture(t)

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v2/galleries", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, recorder.Body.String())
}

func TestHTTP_MethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/v1/tokens/1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, recorder.Body.String())
}
