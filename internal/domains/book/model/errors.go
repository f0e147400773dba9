package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/shared/middleware"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/validation"
)

var (
	ErrBookNotFound = errors.New("book not found")
	// ErrAuthorReferenceNotFound is raised when author_id points to no author.
	ErrAuthorReferenceNotFound = errors.New("author does not exist")
)

var bookErrorMap = []struct {
	Err     error
	Status  int
	Code    string
	Message string
}{
	{Err: ErrBookNotFound, Status: http.StatusNotFound, Code: "BOOK_NOT_FOUND", Message: "Book not found"},
	{Err: author.ErrAuthorNotFound, Status: http.StatusNotFound, Code: "AUTHOR_NOT_FOUND", Message: "Author not found"},
}

// HandleBookError writes the error response for err and reports whether one was written.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrAuthorReferenceNotFound) {
		response.ValidationFailed(c, validation.Field("author_id", ErrAuthorReferenceNotFound.Error()))
		return true
	}

	if details, ok := validation.Collect(err); ok {
		response.ValidationFailed(c, details)
		return true
	}

	for _, e := range bookErrorMap {
		if errors.Is(err, e.Err) {
			response.ErrorResponse(c, e.Status, e.Code, e.Message)
			return true
		}
	}

	// Lỗi không xác định
	log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("path", c.FullPath()).
		Msg("book request failed")
	response.InternalServerError(c)
	return true
}
