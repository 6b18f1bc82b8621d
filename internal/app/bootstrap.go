package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hiring-board/internal/config"
	"hiring-board/internal/database/migration"
	"hiring-board/internal/delivery/http/handler"
	"hiring-board/internal/delivery/http/middleware"
	"hiring-board/internal/delivery/http/routes"
	"hiring-board/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an initialised container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})

	registerGlobalMiddleware(f, cfg, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects dependencies, applies migrations and returns the app
// together with its cleanup function.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init container: %w", err)
	}

	r := migration.Runner{Dir: cfg.Migration.Dir, Logger: logger}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(corsConfig(cfg.HTTP.WebOrigin)))
	if cfg.HTTP.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimitMax,
			Expiration: cfg.HTTP.RateLimitWindow,
			LimitReached: func(c fiber.Ctx) error {
				return middleware.NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
			},
		}))
	}
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPatch, fiber.MethodOptions},
	}
	if origin = strings.TrimSpace(origin); origin != "" {
		cfg.AllowOrigins = []string{origin}
		cfg.AllowCredentials = true
	} else {
		cfg.AllowOrigins = []string{"*"}
	}
	return cfg
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Get("/uploads/*", static.New(c.Config.Upload.Dir))

	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	reg := &routes.Registry{
		Health:       handler.NewHealthHandler(c.DB, cachePinger),
		Auth:         handler.NewAuthHandler(c.Auth),
		Users:        handler.NewUserHandler(c.Users),
		Departments:  handler.NewDepartmentHandler(c.Departments),
		Jobs:         handler.NewJobHandler(c.Jobs),
		Applications: handler.NewApplicationHandler(c.Applications),
		Public:       handler.NewPublicHandler(c.Jobs),
		WS:           ws.NewHandler(c.Hub, c.Config.HTTP.WebOrigin, c.Logger),

		AuthMw:        middleware.NewAuthMiddleware(c.JWT),
		LoginThrottle: middleware.NewLoginThrottle(c.Config.HTTP.LoginPerMinute),
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
