package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/shared/middleware"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/validation"
	"bookstore-api/pkg/container"
	"bookstore-api/pkg/logger"
)

func SetupRouter(c *container.Container) *gin.Engine {
	validation.RegisterTagNames()

	router := gin.New()

	// ClientIP() keys the login limiter, only listed proxies may override it
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, trusting none", map[string]interface{}{
			"proxies": c.Config.App.TrustedProxies,
			"error":   err.Error(),
		})
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Welcome to the Bookstore API")
	})

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(api, c)
		setupBookRoutes(api, c)
		setupUserRoutes(api, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container) {
	authors := api.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.POST("", c.AuthorHandler.Create)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
		authors.GET("/:id/books", c.BookHandler.GetAuthorWithBooks)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBookDetail)
		books.POST("", c.BookHandler.CreateBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
		books.GET("/:id/author", c.BookHandler.GetBookWithAuthor)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/users")
	{
		users.POST("/register", c.UserHandler.Register)
		users.POST("/login", c.LoginLimiter.Handler(), c.UserHandler.Login)
		users.GET("/me", middleware.Auth(c.JWTManager), c.UserHandler.GetProfile)
	}
}
