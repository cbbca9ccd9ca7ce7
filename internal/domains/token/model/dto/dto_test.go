package dto_test

import (
	"testing"
	"time"

	"shop/internal/domains/token/model"
	"shop/internal/domains/token/model/dto"
	"shop/shared/constant"
	gModel "shop/shared/model"
	"shop/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTokenRequest_ToModel(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 8, 30, 0, 123456789, time.UTC)

	tests := []struct {
		name     string
		req      dto.CreateTokenRequest
		expected func(t *testing.T, token model.Token)
	}{
		{
			name: "uses supplied issued_at",
			req:  dto.CreateTokenRequest{IssuedAt: &issuedAt, UserID: 4},
			expected: func(t *testing.T, token model.Token) {
				assert.Equal(t, issuedAt.Truncate(time.Microsecond), token.IssuedAt)
			},
		},
		{
			name: "defaults issued_at to now",
			req:  dto.CreateTokenRequest{UserID: 4},
			expected: func(t *testing.T, token model.Token) {
				assert.Equal(t, token.CreatedAt, token.IssuedAt)
				assert.WithinDuration(t, time.Now(), token.IssuedAt, time.Minute)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.req.ToModel()

			assert.Zero(t, token.ID)
			assert.Equal(t, int64(4), token.UserID)
			assert.Equal(t, token.CreatedAt, token.ModifiedAt)
			tt.expected(t, token)
		})
	}
}

func TestTokenResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	email := "ada@example.com"

	tests := []struct {
		name  string
		email *string
		want  dto.UserResponse
	}{
		{name: "with joined email", email: &email, want: dto.UserResponse{ID: 2, Email: email}},
		{name: "without joined email", want: dto.UserResponse{ID: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var response dto.TokenResponse
			response.FromModel(model.Token{
				ID:        1,
				IssuedAt:  now,
				UserID:    2,
				UserEmail: tt.email,
				Metadata:  gModel.Metadata{CreatedAt: now, ModifiedAt: now},
			})

			assert.Equal(t, int64(1), response.ID)
			assert.Equal(t, timezone.Format(now, constant.TimestampFormat), response.IssuedAt)
			assert.Equal(t, tt.want, response.User)
			assert.NotEmpty(t, response.ModifiedAt)
		})
	}
}

func TestTokenResponse_KeepsFractionalSeconds(t *testing.T) {
	issuedAt := time.Date(2026, 5, 1, 9, 0, 0, 123456000, time.UTC)

	var response dto.TokenResponse
	response.FromModel(model.Token{ID: 1, IssuedAt: issuedAt, UserID: 2})

	parsed, err := time.Parse(time.RFC3339Nano, response.IssuedAt)
	require.NoError(t, err)

	assert.True(t, issuedAt.Equal(parsed))
}

func TestGetTokensResponse_FromModels(t *testing.T) {
	tokens := []model.Token{{ID: 1, UserID: 1}, {ID: 2, UserID: 1}, {ID: 3, UserID: 2}}

	var response dto.GetTokensResponse
	response.FromModels(tokens, 3, 2)

	assert.Len(t, response.Tokens, 3)
	assert.Equal(t, 3, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Equal(t, int64(3), response.Tokens[2].ID)
}

func TestGetTokensResponse_FromModels_Empty(t *testing.T) {
	var response dto.GetTokensResponse
	response.FromModels([]model.Token{}, 0, 10)

	assert.NotNil(t, response.Tokens)
	assert.Empty(t, response.Tokens)
	assert.Equal(t, 1, response.TotalPage)
}
