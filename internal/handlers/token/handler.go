package token

import (
	"net/http"
	"shop/infras/otel"
	"shop/internal/domains/token/model/dto"
	"shop/internal/domains/token/service"
	"shop/shared"
	"shop/shared/constant"
	gDto "shop/shared/dto"
	"shop/shared/logger"
	"shop/shared/validator"
	"shop/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Token
	otel    otel.Otel
}

func New(service service.Token, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tokens", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateToken)
		routerGroup.Get("/", handler.GetTokens)
		routerGroup.Get("/{id}", handler.GetTokenByID)
		routerGroup.Put("/{id}", handler.UpdateToken)
		routerGroup.Delete("/{id}", handler.DeleteToken)
	})
}

// CreateToken stores a token for an existing user.
// @Summary Create a new token
// @Description issued_at defaults to the current time when omitted.
// @Tags Token
// @Accept json
// @Produce json
// @Param request body dto.CreateTokenRequest true "Create Token Request"
// @Success 201 {object} response.Data[dto.TokenResponse] "Created token"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tokens [post]
func (handler *Handler) CreateToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateToken")
	defer scope.End()

	req := dto.CreateTokenRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	token, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to create token")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusCreated, token)
}

// GetTokens lists tokens.
// @Summary Get all tokens
// @Tags Token
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} response.Data[dto.GetTokensResponse] "List of tokens"
// @Failure 500 {object} response.Error
// @Router /v1/tokens [get]
func (handler *Handler) GetTokens(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTokens")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	tokens, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get tokens")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, tokens)
}

// GetTokenByID retrieves a token by its ID.
// @Summary Get a token by ID
// @Tags Token
// @Produce json
// @Param id path int true "Token ID"
// @Success 200 {object} response.Data[dto.TokenResponse] "Token details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tokens/{id} [get]
func (handler *Handler) GetTokenByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTokenByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	token, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, token)
}

// UpdateToken overwrites issued_at and user of a token.
// @Summary Update a token by ID
// @Tags Token
// @Accept json
// @Produce json
// @Param id path int true "Token ID"
// @Param request body dto.UpdateTokenRequest true "Update Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse] "Updated token"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tokens/{id} [put]
func (handler *Handler) UpdateToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateToken")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateTokenRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	token, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to update token")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, token)
}

// DeleteToken deletes a token by its ID.
// @Summary Delete a token by ID
// @Tags Token
// @Produce json
// @Param id path int true "Token ID"
// @Success 200 {object} response.Message "Token deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tokens/{id} [delete]
func (handler *Handler) DeleteToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteToken")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to delete token")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Token deleted successfully")
}
