package app

import (
	"context"
	"fmt"
	"strings"

	"skillsync/internal/config"
	"skillsync/internal/delivery/http/handler"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/delivery/http/routes"
	v1 "skillsync/internal/delivery/http/routes/v1"
	"skillsync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app and starts the chat hub.
// The returned cleanup stops the hub and releases every connection.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(accessLog.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)
	mc := c.Config.Matching

	registry := routes.NewRegistry(
		handler.NewHealthHandler(healthChecks(c)),
		ws.NewHandler(c.Hub, authMw, c.Logger),
		v1.Handlers{
			Auth:  authMw,
			Match: handler.NewMatchHandler(c.Matching, mc.MaxLimit),
			Skill: handler.NewSkillHandler(c.Matching, mc.DefaultPopularLimit, mc.MaxLimit),
		},
	)
	registry.Register(app)
}

func healthChecks(c *Container) map[string]handler.Checker {
	checks := map[string]handler.Checker{}
	if c.DB != nil {
		checks["postgres"] = c.DB.Ping
	}
	if c.Cache != nil && c.Cache.Available() {
		checks["redis"] = c.Cache.Ping
	}
	if c.NATS != nil {
		checks["nats"] = c.NATS.Ping
	}
	return checks
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
