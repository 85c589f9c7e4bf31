package routes

import (
	"skillsync/internal/delivery/http/handler"
	v1 "skillsync/internal/delivery/http/routes/v1"
	"skillsync/internal/pkg/metrics"
	"skillsync/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Registry struct {
	health *handler.HealthHandler
	chat   *ws.Handler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, chat *ws.Handler, api v1.Handlers) *Registry {
	if health == nil {
		health = handler.NewHealthHandler(nil)
	}
	return &Registry{health: health, chat: chat, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerMetrics(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.chat == nil {
		return
	}
	r.chat.RegisterRoutes(app)
}
