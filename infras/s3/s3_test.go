package s3

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"shop/config"
	"shop/infras/otel/mocks"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(endpoint string) *config.Config {
	cfg := &config.Config{}
	cfg.External.S3.APIEndpoint = endpoint
	cfg.External.S3.AccessKeyID = "test"
	cfg.External.S3.SecretAccessKey = "test"
	cfg.External.S3.BucketName = "shop"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.Region = "us-east-1"

	return cfg
}

func TestUploadFile(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotBody   string
		gotType   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody = string(body)
		gotType = r.Header.Get("Content-Type")

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(newTestConfig(server.URL), mocks.NewOtel())

	url, err := client.UploadFile(t.Context(), "galleries", "thumb.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/galleries/thumb.png", url)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/shop/galleries/thumb.png", gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Contains(t, gotBody, "png-bytes")
}

func TestDeleteFile(t *testing.T) {
	var gotMethod, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(newTestConfig(server.URL), mocks.NewOtel())

	require.NoError(t, client.DeleteFile(t.Context(), "galleries/thumb.png"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/shop/galleries/thumb.png", gotPath)
}

func TestDeleteFile_BreakerOpens(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(newTestConfig(server.URL), mocks.NewOtel())

	for range defaultBreakerMinRequests {
		assert.Error(t, client.DeleteFile(t.Context(), "galleries/thumb.png"))
	}

	handled := calls.Load()

	err := client.DeleteFile(t.Context(), "galleries/thumb.png")
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, handled, calls.Load())
}

func TestGetObjectKeyFromURL(t *testing.T) {
	client := New(newTestConfig("http://localhost:9000"), mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "own url", url: "https://cdn.example.com/galleries/thumb.png", want: "galleries/thumb.png"},
		{name: "foreign url", url: "https://other.example.com/galleries/thumb.png", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.GetObjectKeyFromURL(tt.url))
		})
	}
}

func TestNewBreaker_Defaults(t *testing.T) {
	cb := newBreaker("test", &config.Config{})

	failing := func() (any, error) { return nil, errors.New("down") }

	for range defaultBreakerMinRequests {
		_, err := cb.Execute(failing)
		assert.EqualError(t, err, "down")
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestNewBreaker_StaysClosedBelowRatio(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.Breaker.MinRequests = 4
	cfg.External.S3.Breaker.FailureRatio = 0.75

	cb := newBreaker("test", cfg)

	_, _ = cb.Execute(func() (any, error) { return nil, errors.New("down") })
	_, _ = cb.Execute(func() (any, error) { return "ok", nil })
	_, _ = cb.Execute(func() (any, error) { return nil, errors.New("down") })
	_, _ = cb.Execute(func() (any, error) { return "ok", nil })

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
