package repository

//go:generate go tool mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"shop/infras/otel"
	"shop/infras/postgres"
	"shop/internal/domains/token/model"
	gDto "shop/shared/dto"
	gRepo "shop/shared/repository"
)

type Token interface {
	Insert(ctx context.Context, token model.Token) (model.Token, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Token, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Token, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (model.Token, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Token]
}

func New(db *postgres.Connection, otel otel.Otel) Token {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Token](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
