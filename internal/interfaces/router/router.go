package router

import (
	holdsvc "pm-backend/internal/application/holdings"
	pfsvc "pm-backend/internal/application/portfolios"
	quotesvc "pm-backend/internal/application/quotes"
	usersvc "pm-backend/internal/application/users"
	watchsvc "pm-backend/internal/application/watchlist"
	"pm-backend/internal/authz"
	"pm-backend/internal/config"
	"pm-backend/internal/infrastructure/database"
	authhandler "pm-backend/internal/interfaces/handlers/auth"
	healthhandler "pm-backend/internal/interfaces/handlers/health"
	holdhandler "pm-backend/internal/interfaces/handlers/holdings"
	pfhandler "pm-backend/internal/interfaces/handlers/portfolios"
	quotehandler "pm-backend/internal/interfaces/handlers/quotes"
	userhandler "pm-backend/internal/interfaces/handlers/users"
	"pm-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all middleware and routes. The DB is
// nil when no database URL is configured (some tests run that way); protected
// modules are only mounted when it is present.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.RequestLog())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	healthHandlers := &healthhandler.Handlers{DB: &gormDBPinger{db: db}}
	app.Get("/health/json", healthHandlers.JSON)

	// Quote proxy needs no database and no auth, matching the original surface.
	quoteService := quotesvc.NewService(cfg.QuoteAPIURL, rdb, cfg.QuoteCacheTTL)
	quoteHandlers := &quotehandler.Handlers{Service: quoteService}
	stocksGroup := app.Group("/api/v1/stocks")
	stocksGroup.Post("/quote", quoteHandlers.Quote)
	stocksGroup.Get("/search", quoteHandlers.Search)

	if db != nil {
		watchService := &watchsvc.Service{DB: db}
		portfolioService := &pfsvc.Service{DB: db}
		holdingService := &holdsvc.Service{DB: db}
		userService := &usersvc.Service{
			DB:         db,
			Portfolios: portfolioService,
			Watchlist:  watchService,
			BcryptCost: cfg.BcryptCost,
		}
		guard := authz.NewGuard(portfolioService, holdingService)

		authHandlers := &authhandler.Handlers{Users: userService, SecretKey: cfg.SecretKey}
		authGroup := app.Group("/api/v1/auth")
		authGroup.Post("/register", authHandlers.Register)
		authGroup.Post("/token", authHandlers.Token)

		userHandlers := &userhandler.Handlers{Service: userService}
		userGroup := app.Group("/api/v1/users", middleware.RequireAuth(cfg.SecretKey))
		userGroup.Get("/", userHandlers.List)
		userGroup.Get("/:username", middleware.CorrectUser(), userHandlers.Get)
		userGroup.Get("/:username/complete", middleware.CorrectUser(), userHandlers.GetComplete)
		userGroup.Patch("/:username", middleware.CorrectUser(), userHandlers.Update)
		userGroup.Delete("/:username", middleware.CorrectUser(), userHandlers.Remove)
		userGroup.Post("/:username/watchlist/:symbol", middleware.CorrectUser(), userHandlers.Watch)
		userGroup.Delete("/:username/watchlist/:symbol", middleware.CorrectUser(), userHandlers.Unwatch)

		pfHandlers := &pfhandler.Handlers{Service: portfolioService}
		pfGroup := app.Group("/api/v1/portfolios", middleware.RequireAuth(cfg.SecretKey))
		pfGroup.Post("/", pfHandlers.Create)
		pfGroup.Get("/:id", middleware.CorrectPortfolio(guard), pfHandlers.Get)
		pfGroup.Patch("/:id", middleware.CorrectPortfolio(guard), pfHandlers.Update)
		pfGroup.Delete("/:id", middleware.CorrectPortfolio(guard), pfHandlers.Remove)

		holdHandlers := &holdhandler.Handlers{Service: holdingService, Guard: guard}
		holdGroup := app.Group("/api/v1/holdings", middleware.RequireAuth(cfg.SecretKey))
		holdGroup.Post("/", holdHandlers.Create)
		holdGroup.Get("/:id", middleware.CorrectHolding(guard), holdHandlers.Get)
		holdGroup.Patch("/:id", middleware.CorrectHolding(guard), holdHandlers.Update)
		holdGroup.Delete("/:id", middleware.CorrectHolding(guard), holdHandlers.Remove)
	}

	return app, db, nil
}
