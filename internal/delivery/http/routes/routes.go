package routes

import (
	"hiring-board/internal/delivery/http/handler"
	"hiring-board/internal/delivery/http/middleware"
	"hiring-board/internal/domain/access"
	"hiring-board/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Departments  *handler.DepartmentHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Public       *handler.PublicHandler
	WS           *ws.Handler

	AuthMw        *middleware.AuthMiddleware
	LoginThrottle *middleware.LoginThrottle
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	authMw := r.AuthMw.Middleware()

	var loginMw fiber.Handler
	if r.LoginThrottle != nil {
		loginMw = r.LoginThrottle.Middleware()
	}
	r.Auth.RegisterRoutes(api.Group("/auth"), authMw, loginMw)

	r.Public.RegisterRoutes(api.Group("/public"))

	apps := api.Group("/apps")
	r.Applications.RegisterPublicRoutes(apps)
	r.Applications.RegisterStaffRoutes(apps, authMw)

	r.Users.RegisterRoutes(api.Group("/users", authMw))
	r.Departments.RegisterRoutes(api.Group("/departments", authMw))
	r.Jobs.RegisterRoutes(api.Group("/jobs", authMw))
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS == nil {
		return
	}
	app.Get("/ws/jobs", r.AuthMw.QueryTokenMiddleware(), middleware.Require(access.JobsRead), r.WS.HandleJobsWS)
}
