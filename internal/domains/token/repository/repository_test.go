package repository_test

import (
	"regexp"
	"testing"
	"time"

	"shop/infras/otel/mocks"
	"shop/infras/postgres"
	"shop/internal/domains/token/model"
	"shop/internal/domains/token/repository"
	"shop/shared"
	gDto "shop/shared/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectToken = "SELECT tokens.id, tokens.issued_at, tokens.user_id, users.email AS user_email," +
	" tokens.created_at, tokens.modified_at"

var tokenColumns = []string{"id", "issued_at", "user_id", "user_email", "created_at", "modified_at"}

func newRepository(t *testing.T) (repository.Token, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestTokenRepository_Get(t *testing.T) {
	repo, mock := newRepository(t)

	issuedAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	query := selectToken + " FROM tokens LEFT JOIN users ON users.id = tokens.user_id WHERE (tokens.id = $1)"

	mock.ExpectPrepare(regexp.QuoteMeta(query)).
		ExpectQuery().
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(tokenColumns).
			AddRow(int64(2), issuedAt, int64(7), "ada@example.com", issuedAt, issuedAt))

	token, err := repo.Get(t.Context(), shared.FilterByID(int64(2), model.FieldID, model.TableName))
	require.NoError(t, err)

	assert.Equal(t, int64(7), token.UserID)
	assert.True(t, issuedAt.Equal(token.IssuedAt))
	require.NotNil(t, token.UserEmail)
	assert.Equal(t, "ada@example.com", *token.UserEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetAllPaginates(t *testing.T) {
	repo, mock := newRepository(t)

	query := selectToken + " FROM tokens LEFT JOIN users ON users.id = tokens.user_id" +
		" ORDER BY tokens.issued_at DESC LIMIT $1 OFFSET $2"

	mock.ExpectPrepare(regexp.QuoteMeta(query)).
		ExpectQuery().
		WithArgs(5, 0).
		WillReturnRows(sqlmock.NewRows(tokenColumns))

	tokens, err := repo.GetAll(t.Context(), gDto.QueryParams{Page: 1, Limit: 5, SortBy: "issued_at", SortDir: "DESC"}, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Empty(t, tokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}
