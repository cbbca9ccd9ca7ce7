package gallery

import (
	"net/http"
	"shop/infras/otel"
	"shop/internal/domains/gallery/model/dto"
	"shop/internal/domains/gallery/service"
	"shop/shared"
	"shop/shared/constant"
	gDto "shop/shared/dto"
	"shop/shared/failure"
	"shop/shared/logger"
	"shop/shared/validator"
	"shop/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const queryParamNote = "note"

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/galleries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGallery)
		routerGroup.Get("/", handler.GetGalleries)
		routerGroup.Post("/thumbnails", handler.UploadThumbnail)
		routerGroup.Get("/{id}", handler.GetGalleryByID)
		routerGroup.Put("/{id}", handler.UpdateGallery)
		routerGroup.Delete("/{id}", handler.DeleteGallery)
	})
}

// CreateGallery handles the creation of a new gallery.
// @Summary Create a new gallery
// @Description Create a gallery for an existing product.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryRequest true "Create Gallery Request"
// @Success 201 {object} response.Data[dto.GalleryResponse] "Created gallery"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries [post]
func (handler *Handler) CreateGallery(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGallery")
	defer scope.End()

	req := dto.CreateGalleryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	gallery, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to create gallery")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gallery created successfully")

	response.WithData(writer, http.StatusCreated, gallery)
}

// GetGalleries lists galleries, optionally only those with the given note.
// @Summary Get all galleries
// @Description Retrieve galleries. Pagination and sorting apply only when requested.
// @Tags Gallery
// @Produce json
// @Param note query string false "Exact note to filter by"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} response.Data[dto.GetGalleriesResponse] "List of galleries"
// @Failure 500 {object} response.Error
// @Router /v1/galleries [get]
func (handler *Handler) GetGalleries(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	var (
		galleries dto.GetGalleriesResponse
		err       error
	)

	if request.URL.Query().Has(queryParamNote) {
		galleries, err = handler.service.GetByNote(ctx, request.URL.Query().Get(queryParamNote), queryParams)
	} else {
		galleries, err = handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	}

	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get galleries")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, galleries)
}

// GetGalleryByID retrieves a gallery by its ID.
// @Summary Get a gallery by ID
// @Tags Gallery
// @Produce json
// @Param id path int true "Gallery ID"
// @Success 200 {object} response.Data[dto.GalleryResponse] "Gallery details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries/{id} [get]
func (handler *Handler) GetGalleryByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	gallery, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to get gallery by ID")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, gallery)
}

// UpdateGallery overwrites the thumbnail and product of a gallery.
// @Summary Update a gallery by ID
// @Description Replace thumbnail and product. The note is left unchanged.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path int true "Gallery ID"
// @Param request body dto.UpdateGalleryRequest true "Update Gallery Request"
// @Success 200 {object} response.Data[dto.GalleryResponse] "Updated gallery"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries/{id} [put]
func (handler *Handler) UpdateGallery(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGallery")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateGalleryRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	gallery, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to update gallery")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gallery updated successfully")

	response.WithData(writer, http.StatusOK, gallery)
}

// DeleteGallery deletes a gallery by its ID.
// @Summary Delete a gallery by ID
// @Tags Gallery
// @Produce json
// @Param id path int true "Gallery ID"
// @Success 200 {object} response.Message "Gallery deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries/{id} [delete]
func (handler *Handler) DeleteGallery(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGallery")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to delete gallery")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gallery deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Gallery deleted successfully")
}

// UploadThumbnail stores an image in object storage and returns its public URL.
// @Summary Upload a gallery thumbnail
// @Description Upload a PNG or JPEG image. Use the returned URL as the gallery thumbnail.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 200 {object} response.Data[dto.UploadThumbnailResponse] "Thumbnail uploaded"
// @Failure 400 {object} response.Error
// @Failure 415 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries/thumbnails [post]
func (handler *Handler) UploadThumbnail(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadThumbnail")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.InvalidContentType)

		return
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get file from form")

		response.WithError(writer, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadThumbnailRequest{
		File:     fileHeader,
		FileData: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UploadThumbnail(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to upload thumbnail")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Thumbnail uploaded successfully")

	response.WithData(writer, http.StatusOK, res)
}
