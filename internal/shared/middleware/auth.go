package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/shared/response"
	"bookstore-api/pkg/jwt"
)

const claimsKey = "auth_claims"

// TokenVerifier is satisfied by *jwt.Manager.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Auth - Middleware xác thực JWT token. Only authenticates; no role checks.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			return
		}

		// 2. Extract token từ "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			return
		}

		// 3. Verify và parse JWT
		claims, err := verifier.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the claims stored by Auth.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
