package service

//go:generate go tool mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Gallery=MockGalleryService

import (
	"context"
	"errors"
	"fmt"
	"shop/config"
	"shop/infras/otel"
	"shop/infras/s3"
	"shop/internal/domains/gallery/model"
	"shop/internal/domains/gallery/model/dto"
	"shop/internal/domains/gallery/repository"
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
	cacheGetGallery    = "gallery:get"
	cacheGetAllGallery = "gallery:get_all"
	cacheCountGallery  = "gallery:count"
)

var (
	errUnknownProduct = failure.BadRequestFromString("product does not exist")
	errDuplicate      = failure.Conflict("gallery already exists")
)

type Gallery interface {
	Create(ctx context.Context, req dto.CreateGalleryRequest) (dto.GalleryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGalleriesResponse, error)
	GetByNote(ctx context.Context, note string, req gDto.QueryParams) (dto.GetGalleriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.GalleryResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateGalleryRequest) (dto.GalleryResponse, error)
	Delete(ctx context.Context, id int64) error
	UploadThumbnail(ctx context.Context, req dto.UploadThumbnailRequest) (dto.UploadThumbnailResponse, error)
}

type serviceImpl struct {
	repo  repository.Gallery
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Gallery, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGalleryRequest) (res dto.GalleryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	gallery, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create gallery")

		return res, mapWriteError(err)
	}

	s.invalidateLists(ctx)

	res.FromModel(gallery)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGalleriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGallery, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for galleries")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count galleries")

		return res, err
	}

	galleries, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get galleries")

		return res, fmt.Errorf("failed to get galleries: %w", err)
	}

	res.FromModels(galleries, total, req.PageSize(total))

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save galleries to cache")
	}

	return res, nil
}

func (s *serviceImpl) GetByNote(ctx context.Context, note string, req gDto.QueryParams) (res dto.GetGalleriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.GetByNote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.GetAll(ctx, req, shared.FilterByField(note, model.FieldNote, model.TableName))
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGallery, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &total); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for gallery count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count galleries")

		return total, fmt.Errorf("failed to count galleries: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, total, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save gallery count to cache")
	}

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.GalleryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetGallery, strconv.FormatInt(id, 10))

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for gallery")

		return res, nil
	}

	gallery, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery")

		return res, fmt.Errorf("failed to get gallery: %w", err)
	}

	if gallery.ID == 0 {
		return res, failure.NotFound(model.EntityName)
	}

	res.FromModel(gallery)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save gallery to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateGalleryRequest) (res dto.GalleryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	gallery, err := s.repo.Update(ctx, shared.TransformFields(req), filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update gallery")

		return res, mapWriteError(err)
	}

	if gallery.ID == 0 {
		return res, failure.NotFound(model.EntityName)
	}

	s.invalidate(ctx, id)

	res.FromModel(gallery)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	gallery, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldThumbnail)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery for thumbnail deletion")

		return fmt.Errorf("failed to get gallery: %w", err)
	}

	if gallery.ID == 0 {
		return failure.NotFound(model.EntityName)
	}

	affected, err := s.repo.Delete(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete gallery")

		return fmt.Errorf("failed to delete gallery: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(model.EntityName)
	}

	s.invalidate(ctx, id)
	s.deleteThumbnail(ctx, gallery.Thumbnail)

	return nil
}

func (s *serviceImpl) UploadThumbnail(ctx context.Context, req dto.UploadThumbnailRequest) (res dto.UploadThumbnailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gallery.UploadThumbnail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectName := req.ObjectName()

	url, err := s.s3.UploadFile(ctx, model.ThumbnailDirectory, objectName, req.ContentType(), req.FileData)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload thumbnail")

		return res, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	res.FromModel(url, objectName)

	return res, nil
}

// deleteThumbnail removes a stored thumbnail object. Thumbnails outside the bucket are left alone.
func (s *serviceImpl) deleteThumbnail(ctx context.Context, thumbnail string) {
	objectKey := s.s3.GetObjectKeyFromURL(thumbnail)
	if objectKey == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warn().Err(err).Str("objectKey", objectKey).Msg("failed to delete thumbnail from S3")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetGallery, strconv.FormatInt(id, 10))); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete gallery cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllGallery)
	shared.InvalidateCaches(ctx, s.cache, cacheCountGallery)
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, gRepo.ErrForeignKeyViolation):
		return errUnknownProduct
	case errors.Is(err, gRepo.ErrUniqueViolation):
		return errDuplicate
	}

	return fmt.Errorf("failed to write gallery: %w", err)
}
