package model

import (
	"time"

	"shop/shared/model"
)

const (
	TableName  = "tokens"
	EntityName = "token"

	FieldID       = "id"
	FieldIssuedAt = "issued_at"
	FieldUserID   = "user_id"
)

type Token struct {
	ID        int64     `db:"id" generated:"true"`
	IssuedAt  time.Time `db:"issued_at"`
	UserID    int64     `db:"user_id"`
	UserEmail *string   `db:"user_email" table:"users" column:"email"`
	model.Metadata
}

func (Token) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = tokens.user_id"
}
