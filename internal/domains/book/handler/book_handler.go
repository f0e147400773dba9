package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/domains/book/service"
	"bookstore-api/internal/shared/listing"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/validation"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(s service.ServiceInterface) *BookHandler {
	return &BookHandler{service: s}
}

// ListBooks - GET /api/books?page=1&limit=10&search=&author=
func (h *BookHandler) ListBooks(c *gin.Context) {
	params := listing.ParseParams(c.Query("page"), c.Query("limit"), c.Query("search"))
	authorID := parseAuthorFilter(c.Query("author"))

	books, meta, err := h.service.List(c.Request.Context(), params, authorID)
	if model.HandleBookError(c, err) {
		return
	}

	response.Paginated(c, "Books retrieved successfully", model.ToResponses(books), meta)
}

// parseAuthorFilter ignores a missing or non-numeric author filter like any other bad listing input.
func parseAuthorFilter(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil
	}
	return &id
}

// GetBookDetail - GET /api/books/:id
func (h *BookHandler) GetBookDetail(c *gin.Context) {
	id, err := validation.BindID(c)
	if model.HandleBookError(c, err) {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.OK(c, "Book retrieved successfully", b.ToResponse())
}

// CreateBook - POST /api/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleBookError(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Created(c, "Book created successfully", b.ToResponse())
}

// UpdateBook - PUT /api/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := validation.BindID(c)
	if model.HandleBookError(c, err) {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleBookError(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if model.HandleBookError(c, err) {
		return
	}

	response.OK(c, "Book updated successfully", b.ToResponse())
}

// DeleteBook - DELETE /api/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := validation.BindID(c)
	if model.HandleBookError(c, err) {
		return
	}

	removed, err := h.service.Delete(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}
	if !removed {
		model.HandleBookError(c, model.ErrBookNotFound)
		return
	}

	response.OK(c, "Book deleted successfully", response.Deleted{ID: id, Deleted: true})
}

// GetBookWithAuthor - GET /api/books/:id/author
func (h *BookHandler) GetBookWithAuthor(c *gin.Context) {
	id, err := validation.BindID(c)
	if model.HandleBookError(c, err) {
		return
	}

	result, err := h.service.GetWithAuthor(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.OK(c, "Book with author retrieved successfully", result)
}

// GetAuthorWithBooks - GET /api/authors/:id/books?page=1&limit=10
func (h *BookHandler) GetAuthorWithBooks(c *gin.Context) {
	id, err := validation.BindID(c)
	if model.HandleBookError(c, err) {
		return
	}

	params := listing.ParseParams(c.Query("page"), c.Query("limit"), c.Query("search"))
	result, err := h.service.GetAuthorWithBooks(c.Request.Context(), id, params)
	if model.HandleBookError(c, err) {
		return
	}

	response.OK(c, "Author with books retrieved successfully", result)
}
