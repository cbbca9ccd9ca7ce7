package token_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shop/infras/otel/mocks"
	tokenMocks "shop/internal/domains/token/mocks"
	"shop/internal/domains/token/model/dto"
	"shop/internal/handlers/token"
	gDto "shop/shared/dto"
	"shop/shared/failure"
)

func newRouter(t *testing.T) (*tokenMocks.MockTokenService, http.Handler) {
	t.Helper()

	svc := tokenMocks.NewMockTokenService(gomock.NewController(t))
	handler := token.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandler_CreateToken(t *testing.T) {
	issuedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		setupMock  func(svc *tokenMocks.MockTokenService)
		wantStatus int
	}{
		{
			name: "with issued_at",
			body: `{"issued_at":"2026-05-01T09:00:00Z","user_id":3}`,
			setupMock: func(svc *tokenMocks.MockTokenService) {
				svc.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateTokenRequest) (dto.TokenResponse, error) {
						require.NotNil(t, req.IssuedAt)
						assert.True(t, issuedAt.Equal(*req.IssuedAt))

						return dto.TokenResponse{ID: 1, User: dto.UserResponse{ID: 3}}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "without issued_at",
			body: `{"user_id":3}`,
			setupMock: func(svc *tokenMocks.MockTokenService) {
				svc.EXPECT().
					Create(gomock.Any(), dto.CreateTokenRequest{UserID: 3}).
					Return(dto.TokenResponse{ID: 2}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing user",
			body:       `{}`,
			setupMock:  func(*tokenMocks.MockTokenService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed issued_at",
			body:       `{"issued_at":"yesterday","user_id":3}`,
			setupMock:  func(*tokenMocks.MockTokenService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			body: `{"user_id":404}`,
			setupMock: func(svc *tokenMocks.MockTokenService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.TokenResponse{}, failure.BadRequestFromString("user does not exist"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/v1/tokens", tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestHandler_GetTokens(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: "issued_at", SortDir: "DESC"}, gDto.FilterGroup{}).
		Return(dto.GetTokensResponse{Tokens: []dto.TokenResponse{{ID: 1}}, TotalData: 1, TotalPage: 1}, nil)

	recorder := serve(router, http.MethodGet, "/v1/tokens?sort_by=issued_at&sort_dir=desc", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Data dto.GetTokensResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Data.TotalData)
}

func TestHandler_GetTokenByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Get(gomock.Any(), int64(7)).Return(dto.TokenResponse{ID: 7}, nil)

		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/tokens/7", "").Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Get(gomock.Any(), int64(7)).Return(dto.TokenResponse{}, failure.NotFound("token"))

		recorder := serve(router, http.MethodGet, "/v1/tokens/7", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"error":"token not found"}`, recorder.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		_, router := newRouter(t)

		assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/v1/tokens/x1", "").Code)
	})
}

func TestHandler_UpdateToken(t *testing.T) {
	issuedAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("updated", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			Update(gomock.Any(), int64(1), dto.UpdateTokenRequest{IssuedAt: issuedAt, UserID: 5}).
			Return(dto.TokenResponse{ID: 1, User: dto.UserResponse{ID: 5}}, nil)

		recorder := serve(router, http.MethodPut, "/v1/tokens/1", `{"issued_at":"2026-06-01T00:00:00Z","user_id":5}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("issued_at required", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPut, "/v1/tokens/1", `{"user_id":5}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"error":"issued_at is required"}`, recorder.Body.String())
	})
}

func TestHandler_DeleteToken(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

		recorder := serve(router, http.MethodDelete, "/v1/tokens/1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"message":"Token deleted successfully"}`, recorder.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), int64(1)).Return(failure.NotFound("token"))

		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/v1/tokens/1", "").Code)
	})
}
