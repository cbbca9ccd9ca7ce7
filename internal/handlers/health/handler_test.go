package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop/internal/handlers/health"

	"github.com/stretchr/testify/assert"
)

func TestHandler_Health(t *testing.T) {
	healthy := health.PingerFunc(func(context.Context) error { return nil })
	broken := health.PingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name         string
		state        health.ServerState
		dependencies map[string]health.Pinger
		wantStatus   int
		wantBody     string
	}{
		{
			name:         "ready",
			state:        health.ServerStateReady,
			dependencies: map[string]health.Pinger{"postgres": healthy},
			wantStatus:   http.StatusOK,
			wantBody:     `{"message":"OK"}`,
		},
		{
			name:         "grace period",
			state:        health.ServerStateInGracePeriod,
			dependencies: map[string]health.Pinger{"postgres": healthy},
			wantStatus:   http.StatusServiceUnavailable,
			wantBody:     `{"message":"SERVER PREPARING TO SHUT DOWN"}`,
		},
		{
			name:       "cleanup period",
			state:      health.ServerStateInCleanupPeriod,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"message":"SERVER PREPARING TO SHUT DOWN"}`,
		},
		{
			name:         "dependency down",
			state:        health.ServerStateReady,
			dependencies: map[string]health.Pinger{"postgres": healthy, "redis": broken},
			wantStatus:   http.StatusServiceUnavailable,
			wantBody:     `{"message":"SERVER UNHEALTHY"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := health.NewStatus()
			status.Set(tt.state)

			handler := health.NewWithDependencies(status, tt.dependencies)

			recorder := httptest.NewRecorder()
			handler.Health(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestStatus_ShuttingDown(t *testing.T) {
	status := health.NewStatus()
	assert.Equal(t, health.ServerStateStarting, status.Get())
	assert.False(t, status.ShuttingDown())

	status.Set(health.ServerStateInGracePeriod)
	assert.True(t, status.ShuttingDown())
}
