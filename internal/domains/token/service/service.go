package service

//go:generate go tool mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Token=MockTokenService

import (
	"context"
	"errors"
	"fmt"
	"shop/config"
	"shop/infras/otel"
	"shop/internal/domains/token/model"
	"shop/internal/domains/token/model/dto"
	"shop/internal/domains/token/repository"
	"shop/shared"
	"shop/shared/cache"
	"shop/shared/constant"
	gDto "shop/shared/dto"
	"shop/shared/failure"
	gRepo "shop/shared/repository"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetToken    = "token:get"
	cacheGetAllToken = "token:get_all"
	cacheCountToken  = "token:count"
)

var (
	errUnknownUser = failure.BadRequestFromString("user does not exist")
	errDuplicate   = failure.Conflict("token already exists")
)

type Token interface {
	Create(ctx context.Context, req dto.CreateTokenRequest) (dto.TokenResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTokensResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.TokenResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTokenRequest) (dto.TokenResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Token
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Token, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Token {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Token.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	token, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Int64("userID", req.UserID).Msg("failed to create token")

		return res, mapWriteError(err)
	}

	s.invalidateLists(ctx)

	res.FromModel(token)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTokensResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Token.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllToken, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for tokens")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	tokens, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tokens")

		return res, fmt.Errorf("failed to get tokens: %w", err)
	}

	res.FromModels(tokens, total, req.PageSize(total))

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save tokens to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Token.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountToken, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &total); cacheErr == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tokens")

		return total, fmt.Errorf("failed to count tokens: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, total, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save token count to cache")
	}

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Token.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetToken, strconv.FormatInt(id, 10))

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for token")

		return res, nil
	}

	token, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get token")

		return res, fmt.Errorf("failed to get token: %w", err)
	}

	if token.ID == 0 {
		return res, failure.NotFound(model.EntityName)
	}

	res.FromModel(token)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save token to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Token.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	token, err := s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update token")

		return res, mapWriteError(err)
	}

	if token.ID == 0 {
		return res, failure.NotFound(model.EntityName)
	}

	s.invalidate(ctx, id)

	res.FromModel(token)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Token.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete token")

		return fmt.Errorf("failed to delete token: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(model.EntityName)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetToken, strconv.FormatInt(id, 10))); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete token cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllToken)
	shared.InvalidateCaches(ctx, s.cache, cacheCountToken)
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, gRepo.ErrForeignKeyViolation):
		return errUnknownUser
	case errors.Is(err, gRepo.ErrUniqueViolation):
		return errDuplicate
	}

	return fmt.Errorf("failed to write token: %w", err)
}
