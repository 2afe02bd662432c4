package app

import (
	"fmt"
	"net/http"
	"strings"

	"xrnode/internal/config"
	"xrnode/internal/delivery/http/handler"
	"xrnode/internal/delivery/http/middleware"
	"xrnode/internal/delivery/http/routes"
	v1 "xrnode/internal/delivery/http/routes/v1"
	"xrnode/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)
	jwtSvc := c.JWT
	events := ws.NewHandler(c.Hub, func(r *http.Request) (string, bool) {
		if tok, ok := middleware.BearerToken(r.Header.Get("Authorization")); ok {
			return middleware.AccessTokenViewer(jwtSvc, tok)
		}
		return middleware.AccessTokenViewer(jwtSvc, r.URL.Query().Get("token"))
	}, c.Logger)

	routes.NewRegistry(routes.Options{
		Health:  handler.NewHealthHandler(c.Config.Event.Name, c.Pingers()),
		Events:  events,
		Metrics: adaptor.HTTPHandler(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})),
		Auth:    authMw.Middleware(),
		V1: v1.Handlers{
			Auth:       handler.NewAuthHandler(c.Auth),
			Profile:    handler.NewProfileHandler(c.Profiles),
			Match:      handler.NewMatchHandler(c.Matches),
			Directory:  handler.NewDirectoryHandler(c.Directory),
			Scan:       handler.NewScanHandler(c.Scans),
			Connection: handler.NewConnectionHandler(c.Connect),
			Handshake:  handler.NewHandshakeHandler(c.Handshakes),
		},
	}).Register(app)
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
