package routes

import (
	"xrnode/internal/delivery/http/handler"
	v1 "xrnode/internal/delivery/http/routes/v1"
	"xrnode/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Options struct {
	Health  *handler.HealthHandler
	Events  *ws.Handler
	Metrics fiber.Handler
	Auth    fiber.Handler
	V1      v1.Handlers
}

type Registry struct {
	opts Options
}

func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerEvents(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.opts.Health != nil {
		r.opts.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.opts.Metrics != nil {
		app.Get("/metrics", r.opts.Metrics)
	}
}

func (r *Registry) registerEvents(app *fiber.App) {
	if r.opts.Events != nil {
		r.opts.Events.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.opts.V1, r.opts.Auth)
}
