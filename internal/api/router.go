package api

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/members-auth/docs"
	"github.com/99minutos/members-auth/internal/api/handler"
	"github.com/99minutos/members-auth/internal/api/metrics"
	"github.com/99minutos/members-auth/internal/api/middleware"
	"github.com/99minutos/members-auth/internal/api/views"
	"github.com/99minutos/members-auth/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers. They are built
// by the caller; the router owns none of them.
type Deps struct {
	Auth     ports.AuthService
	Sessions ports.SessionManager
	Gate     middleware.Gate
	Cookies  handler.CookieJar
	Metrics  *metrics.Metrics
	// Registry backs both the request metrics middleware and /metrics.
	Registry  *prometheus.Registry
	Checks    map[string]handler.Check
	StaticDir string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "members_auth",
		Subsystem:  "http",
		Registerer: d.Registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	sessions := middleware.NewSessions(d.Sessions, d.Cookies, d.Gate, d.Metrics.AccessDeniedTotal)
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookies, d.Metrics)
	pagesHandler := handler.NewPagesHandler()
	healthHandler := handler.NewHealthHandler(d.Checks)

	// --- Pages ---
	e.GET("/", sessions.Visitor(pagesHandler.Home))
	e.GET("/members", sessions.Protect(pagesHandler.Members))
	e.GET("/does_not_exist", pagesHandler.NotFound)

	// --- Auth routes ---
	e.GET("/signup", authHandler.SignupForm)
	e.POST("/signupSubmit", authHandler.SignupSubmit)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/loggingin", authHandler.LoginSubmit)
	e.GET("/logout", authHandler.Logout)

	// --- Health probes ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: d.Registry,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if d.StaticDir != "" {
		e.Static("/static", d.StaticDir)
	}

	e.RouteNotFound("/*", pagesHandler.NotFound)

	return e, nil
}
