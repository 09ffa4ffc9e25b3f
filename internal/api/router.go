package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/examplews/greeting-service/docs"
	"github.com/examplews/greeting-service/internal/api/handler"
	"github.com/examplews/greeting-service/internal/api/middleware"
	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
	"github.com/examplews/greeting-service/internal/core/security"
)

// Deps are the collaborators the router wires into middleware and handlers.
type Deps struct {
	Log       zerolog.Logger
	Policy    *security.AccessPolicy
	Auth      ports.AuthService
	Greetings ports.GreetingService
	Roles     ports.RoleService
	// Recorder receives authentication audit events. Optional.
	Recorder middleware.AuthEventRecorder
	// Checks are the readiness probes behind /actuators/health.
	Checks map[string]handler.Check
	Info   handler.Info

	Realm          string
	WelcomeMessage string

	// Registerer and Gatherer back the HTTP metrics. Nil means the
	// Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	// The request context must exist before anything else touches the request.
	e.Use(middleware.RequestContext(d.Log))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.Auth(middleware.AuthConfig{
		Policy:   d.Policy,
		Service:  d.Auth,
		Recorder: d.Recorder,
		Realm:    d.Realm,
		Log:      d.Log,
	}))

	// --- Public routes ---
	welcome := handler.NewWelcomeHandler(d.WelcomeMessage)
	e.GET("/", welcome.Index)
	e.GET("/hello", welcome.Hello)
	e.GET("/hello2", welcome.HelloName)
	e.GET("/hello3", welcome.Message)
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Application API (USER) ---
	greetings := handler.NewGreetingHandler(d.Greetings)
	roles := handler.NewRoleHandler(d.Roles)

	apiGroup := e.Group("/api")
	apiGroup.GET("/greetings", greetings.List)
	apiGroup.POST("/greetings", greetings.Create)
	apiGroup.GET("/greetings/:id", greetings.Get)
	apiGroup.PUT("/greetings/:id", greetings.Update)
	apiGroup.DELETE("/greetings/:id", greetings.Delete, middleware.RequireAuthority(domain.RoleAdmin))
	apiGroup.GET("/roles", roles.List)
	apiGroup.GET("/roles/:code", roles.Get)

	// --- Management endpoints (SYSADMIN) ---
	info := d.Info
	for _, r := range d.Policy.Rules() {
		info.AccessRules = append(info.AccessRules, handler.Rule{Prefix: r.Prefix, Authority: r.Authority})
	}

	actuators := e.Group("/actuators")
	actuators.GET("/health", handler.NewReadinessHandler(d.Checks).Readiness)
	actuators.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	actuators.GET("/info", handler.NewInfoHandler(info).Info)

	return e
}
