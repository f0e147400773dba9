package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/shared/listing"
	"bookstore-api/internal/shared/middleware"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/validation"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// List - GET /api/authors?page=1&limit=10&search=
func (h *AuthorHandler) List(c *gin.Context) {
	params := listing.ParseParams(c.Query("page"), c.Query("limit"), c.Query("search"))

	authors, meta, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err, "list authors")
		return
	}

	response.Paginated(c, "Authors retrieved successfully", author.ToResponses(authors), meta)
}

// GetByID - GET /api/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := validation.BindID(c)
	if err != nil {
		h.handleError(c, err, "get author")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "get author")
		return
	}

	response.OK(c, "Author retrieved successfully", a.ToResponse())
}

// Create - POST /api/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, err, "create author")
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "create author")
		return
	}

	response.Created(c, "Author created successfully", a.ToResponse())
}

// Update - PUT /api/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := validation.BindID(c)
	if err != nil {
		h.handleError(c, err, "update author")
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, err, "update author")
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err, "update author")
		return
	}

	response.OK(c, "Author updated successfully", a.ToResponse())
}

// Delete - DELETE /api/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := validation.BindID(c)
	if err != nil {
		h.handleError(c, err, "delete author")
		return
	}

	removed, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "delete author")
		return
	}
	if !removed {
		h.handleError(c, author.ErrAuthorNotFound, "delete author")
		return
	}

	response.OK(c, "Author deleted successfully", response.Deleted{ID: id, Deleted: true})
}

func (h *AuthorHandler) handleError(c *gin.Context, err error, op string) {
	if details, ok := validation.Collect(err); ok {
		response.ValidationFailed(c, details)
		return
	}

	status := author.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("operation", op).
			Msg("author request failed")
		response.InternalServerError(c)
		return
	}

	response.ErrorResponse(c, status, author.ToErrorCode(err), err.Error())
}
