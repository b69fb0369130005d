package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"newsroom-backend/internal/config"
	"newsroom-backend/internal/handlers"
	"newsroom-backend/internal/middleware"
	"newsroom-backend/internal/models"
	"newsroom-backend/internal/repository"
	"newsroom-backend/internal/seed"
	"newsroom-backend/internal/service"
	"newsroom-backend/pkg/cache"
	"newsroom-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db          *gorm.DB
	cache       *cache.Cache
	rateLimiter *middleware.RateLimitManager

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	Category repository.CategoryRepository
	Article  repository.ArticleRepository
	Comment  repository.CommentRepository
}

type serviceContainer struct {
	Category *service.CategoryService
	Article  *service.ArticleService
	Comment  *service.CommentService
}

type handlerContainer struct {
	Category *handlers.CategoryHandler
	Article  *handlers.ArticleHandler
	Comment  *handlers.CommentHandler
	Seed     *handlers.SeedHandler
}

func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()

	app.rateLimiter = middleware.NewRateLimitManager(ctx)

	app.initRepositories()
	app.initServices()
	app.initHandlers()

	seed.EnsureDefaultCategories(app.services.Category)

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	// TranslateError turns postgres unique-constraint violations into
	// gorm.ErrDuplicatedKey, which the services treat as the slug-conflict
	// signal. The create paths rely on this instead of a check-then-act
	// existence query.
	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Category{},
		&models.Article{},
		&models.Comment{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	// Slug uniqueness per namespace is enforced here, at the storage layer.
	statements := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_slug ON articles(slug)",
		"CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_articles_tags ON articles USING GIN (tags)",
		"CREATE INDEX IF NOT EXISTS idx_comments_article ON comments(article_id) WHERE approved = true",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	cacheService, err := cache.New(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		// The cache is an optimization, not a dependency: log and run
		// without it rather than refusing to start.
		logger.Error(err, "Cache unavailable, continuing without it", nil)
		cacheService, _ = cache.New("", false)
	}
	a.cache = cacheService
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Category: repository.NewCategoryRepository(a.db),
		Article:  repository.NewArticleRepository(a.db),
		Comment:  repository.NewCommentRepository(a.db),
	}
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Category: service.NewCategoryService(a.repositories.Category, a.cache),
		Article:  service.NewArticleService(a.repositories.Article, a.cache),
		Comment:  service.NewCommentService(a.repositories.Comment, a.repositories.Article),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Category: handlers.NewCategoryHandler(a.services.Category),
		Article:  handlers.NewArticleHandler(a.services.Article),
		Comment:  handlers.NewCommentHandler(a.services.Comment),
		Seed:     handlers.NewSeedHandler(a.services.Category, a.services.Article),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.rateLimiter, a.cfg))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(a.cfg.CORSOrigins) == 1 && a.cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = a.cfg.CORSOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": a.cfg.SiteName + " API running"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"site":   a.cfg.SiteName,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", handlers.GetStatus(a.db, a.cache))

		v1.GET("/categories", a.handlers.Category.GetAll)
		v1.GET("/categories/:slug", a.handlers.Category.GetBySlug)
		v1.POST("/categories", a.handlers.Category.Create)

		v1.GET("/articles", a.handlers.Article.GetAll)
		v1.GET("/articles/:id", a.handlers.Article.GetByID)
		v1.GET("/articles/slug/:slug", a.handlers.Article.GetBySlug)
		v1.POST("/articles", a.handlers.Article.Create)

		v1.GET("/articles/:id/comments", a.handlers.Comment.GetByArticleID)
		v1.POST("/articles/:id/comments", a.handlers.Comment.Create)

		v1.POST("/seed", a.handlers.Seed.Seed)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}
