package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/user"
	"bookstore-api/internal/shared/middleware"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/validation"
)

// UserHandler xử lý HTTP requests cho user domain
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register xử lý POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, err, "register")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "register")
		return
	}

	response.Created(c, "User registered successfully", resp)
}

// Login xử lý POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, err, "login")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "login")
		return
	}

	response.OK(c, "Login successful", resp)
}

// GetProfile xử lý GET /api/users/me (requires Auth middleware)
func (h *UserHandler) GetProfile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	u, err := h.service.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.handleError(c, err, "get profile")
		return
	}

	response.OK(c, "Profile retrieved successfully", u.ToResponse())
}

func (h *UserHandler) handleError(c *gin.Context, err error, op string) {
	if details, ok := validation.Collect(err); ok {
		response.ValidationFailed(c, details)
		return
	}

	status := user.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		// Log error nhưng không expose details cho client
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("operation", op).
			Msg("user request failed")
		response.InternalServerError(c)
		return
	}

	response.ErrorResponse(c, status, user.ToErrorCode(err), err.Error())
}
