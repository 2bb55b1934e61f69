package api

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eventio/ticket-registry/internal/api/handler"
	"github.com/eventio/ticket-registry/internal/api/middleware"
	"github.com/eventio/ticket-registry/internal/api/render"
	"github.com/eventio/ticket-registry/internal/core/ports"
)

// Deps carries the explicitly constructed collaborators the routes need.
// Nothing here is a process-wide singleton; everything is injected.
type Deps struct {
	Tickets  ports.TicketService
	Identity ports.IdentityService

	Pool  *pgxpool.Pool
	Redis *redis.Client

	SessionSecret string
	Logger        zerolog.Logger

	// BearerKeyfunc enables the bearer-protected JSON API when non-nil.
	BearerKeyfunc jwt.Keyfunc
	// Issuer and Audience are enforced on API bearer tokens.
	Issuer   string
	Audience string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(d.SessionSecret))))

	// --- Dependencies ---
	homeHandler := handler.NewHomeHandler(d.Tickets)
	ticketHandler := handler.NewTicketHandler(d.Tickets)
	authHandler := handler.NewAuthHandler(d.Identity, d.Logger)
	guard := middleware.SessionAuth(d.Logger)

	// --- Pages ---
	e.GET("/", homeHandler.Home)
	e.POST("/create", ticketHandler.Create, guard)
	e.GET("/ticket/:id", ticketHandler.Show, guard)

	// --- Identity flow ---
	e.GET("/login", authHandler.Login)
	e.GET("/callback", authHandler.Callback)
	e.GET("/logout", authHandler.Logout)

	// --- JSON API (machine clients, bearer tokens) ---
	if d.BearerKeyfunc != nil {
		bearer := middleware.Bearer(middleware.BearerConfig{
			Keyfunc:  d.BearerKeyfunc,
			Issuer:   d.Issuer,
			Audience: d.Audience,
		})
		e.GET("/api/tickets/:id", ticketHandler.APIGet, bearer)
	}

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Pool, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e, nil
}
