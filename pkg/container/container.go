package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookstore-api/internal/config"
	infraCache "bookstore-api/internal/infrastructure/cache"
	infraDB "bookstore-api/internal/infrastructure/database"
	"bookstore-api/internal/shared/middleware"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/database"
	"bookstore-api/pkg/jwt"
	"bookstore-api/pkg/password"

	// Author domain
	"bookstore-api/internal/domains/author"
	authorHandler "bookstore-api/internal/domains/author/handler"
	authorRepo "bookstore-api/internal/domains/author/repository"
	authorService "bookstore-api/internal/domains/author/service"

	// Book domain
	bookHandler "bookstore-api/internal/domains/book/handler"
	bookRepo "bookstore-api/internal/domains/book/repository"
	bookService "bookstore-api/internal/domains/book/service"

	// User domain
	"bookstore-api/internal/domains/user"
	userHandler "bookstore-api/internal/domains/user/handler"
	userRepo "bookstore-api/internal/domains/user/repository"
	userService "bookstore-api/internal/domains/user/service"
)

// Container chứa TẤT CẢ dependencies của application
// Thứ tự: Config -> Infrastructure -> Repositories -> Services -> Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *infraDB.PostgresDB // nil when built without a live pool
	Cache      cache.Cache         // nil when Redis is disabled or unreachable
	JWTManager *jwt.Manager

	redis *infraCache.RedisClient

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo author.Repository
	BookRepo   bookRepo.RepositoryInterface
	UserRepo   user.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService author.Service
	BookService   bookService.ServiceInterface
	UserService   user.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
	UserHandler   *userHandler.UserHandler

	LoginLimiter *middleware.RateLimiter
}

// NewContainer connects the infrastructure described by cfg and builds the dependency graph on top of it.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("initializing container")

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	dbConfig := cfg.LoadDatabaseConfig()

	if cfg.Database.Bootstrap {
		if err := infraDB.Bootstrap(ctx, dbConfig); err != nil {
			return nil, fmt.Errorf("failed to bootstrap database: %w", err)
		}
	}

	db := infraDB.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// ========================================
	// STEP 2: CACHE (optional)
	// ========================================
	var store cache.Cache
	var redisClient *infraCache.RedisClient
	if cfg.Redis.Enabled {
		redisClient = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Connect(ctx); err != nil {
			// Redis failure không critical - rate limiting fails open
			log.Warn().Err(err).Str("host", cfg.Redis.Host).Msg("redis unavailable, continuing without it")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			store = redisClient
		}
	}

	c := Build(cfg, db.Pool, store)
	c.DB = db
	c.redis = redisClient

	log.Info().Bool("redis", store != nil).Msg("container initialized")
	return c, nil
}

// Build wires repositories, services and handlers over an already connected accessor.
// store may be nil.
func Build(cfg *config.Config, db database.DBTX, store cache.Cache) *Container {
	c := &Container{
		Config:     cfg,
		Cache:      store,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry),
	}

	c.initRepositories(db)
	c.initServices()
	c.initHandlers()

	c.LoginLimiter = middleware.NewRateLimiter(store, "login", cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow)
	return c
}

func (c *Container) initRepositories(db database.DBTX) {
	c.AuthorRepo = authorRepo.NewPostgresRepository(db)
	c.BookRepo = bookRepo.NewPostgresRepository(db)
	c.UserRepo = userRepo.NewPostgresRepository(db)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)

	// Cross-domain dependency: books resolve their author through the author service
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorService)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		password.NewBcryptHasher(password.DefaultCost),
		c.JWTManager,
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database pool")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	log.Info().Msg("container cleanup completed")
}
