package dto

import (
	"time"

	"shop/internal/domains/token/model"
	"shop/shared"
	"shop/shared/constant"
	gDto "shop/shared/dto"
	gModel "shop/shared/model"
	"shop/shared/timezone"
)

type CreateTokenRequest struct {
	IssuedAt *time.Time `json:"issued_at" swaggertype:"string" format:"date-time"`
	UserID   int64      `json:"user_id"   validate:"required,gt=0"`
}

// ToModel stamps the token with the current time when issued_at is omitted.
func (c *CreateTokenRequest) ToModel() model.Token {
	metadata := gModel.NewMetadata()

	issuedAt := metadata.CreatedAt
	if c.IssuedAt != nil {
		issuedAt = c.IssuedAt.Truncate(time.Microsecond)
	}

	return model.Token{
		IssuedAt: issuedAt,
		UserID:   c.UserID,
		Metadata: metadata,
	}
}

type UpdateTokenRequest struct {
	IssuedAt time.Time `db:"issued_at" json:"issued_at" swaggertype:"string" format:"date-time" validate:"required"`
	UserID   int64     `db:"user_id"   json:"user_id"   validate:"required,gt=0"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
}

type TokenResponse struct {
	ID       int64        `json:"id"`
	IssuedAt string       `json:"issued_at"`
	User     UserResponse `json:"user"`
	gDto.Metadata
}

func (r *TokenResponse) FromModel(token model.Token) {
	r.ID = token.ID
	r.IssuedAt = timezone.Format(token.IssuedAt, constant.TimestampFormat)
	r.User.ID = token.UserID

	if token.UserEmail != nil {
		r.User.Email = *token.UserEmail
	}

	r.Metadata.FromModel(token.Metadata)
}

type GetTokensResponse struct {
	Tokens    []TokenResponse `json:"tokens"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTokensResponse) FromModels(tokens []model.Token, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tokens = make([]TokenResponse, len(tokens))
	for i, t := range tokens {
		r.Tokens[i].FromModel(t)
	}
}
