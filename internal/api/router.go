package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/verseyou/verse-api/docs"
	"github.com/verseyou/verse-api/internal/api/handler"
	"github.com/verseyou/verse-api/internal/api/middleware"
	"github.com/verseyou/verse-api/internal/auth"
	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
	"github.com/verseyou/verse-api/internal/infrastructure/http/handlers"
)

// authRateLimit caps unauthenticated requests per client IP on the auth
// endpoints, independent of the per-email sign-in throttle.
const authRateLimit = rate.Limit(20)

// Deps carries everything the router needs. Interfaces only, so tests can
// wire the whole HTTP surface against in-memory fakes.
type Deps struct {
	Auth     ports.AuthService
	Roles    ports.RoleService
	Profiles ports.ProfileService
	Hobbies  ports.HobbyService
	Events   ports.EventService
	Audit    ports.AuditRepository
	Verifier *auth.Verifier

	// Readiness handles GET /health/ready; nil disables dependency probes
	// and the route reports plain liveness.
	Readiness echo.HandlerFunc

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("verseyou"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	roleHandler := handler.NewRoleHandler(deps.Roles)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	hobbyHandler := handler.NewHobbyHandler(deps.Hobbies)
	eventHandler := handler.NewEventHandler(deps.Events)

	bearer := middleware.Auth(deps.Verifier)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	organiserWrite := middleware.RBAC(domain.RoleAdmin, domain.RoleOrganiser)

	// --- Auth (public, IP rate-limited) ---
	authGroup := e.Group("/api/auth",
		echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(authRateLimit)))
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/signin", authHandler.SignIn)

	// --- Roles (admin) ---
	roles := e.Group("/api/roles", bearer, adminOnly)
	roles.GET("", roleHandler.List)
	roles.POST("/create", roleHandler.Create)
	roles.POST("/assign", roleHandler.Assign)

	// --- Profile (own account) ---
	profile := e.Group("/api/profile", bearer)
	profile.GET("", profileHandler.Get)
	profile.POST("", profileHandler.Create)
	profile.PUT("", profileHandler.Update)
	profile.DELETE("", profileHandler.Delete)

	// --- Hobbies ---
	hobbies := e.Group("/api/hobbies", bearer)
	hobbies.GET("", hobbyHandler.List)
	hobbies.GET("/mine", hobbyHandler.Links)
	hobbies.POST("/mine", hobbyHandler.Link)
	hobbies.DELETE("/mine/:id", hobbyHandler.Unlink)
	hobbies.GET("/:id", hobbyHandler.Get)
	hobbies.POST("", hobbyHandler.Create, organiserWrite)
	hobbies.PUT("/:id", hobbyHandler.Update, organiserWrite)
	hobbies.DELETE("/:id", hobbyHandler.Delete, organiserWrite)

	// --- Events ---
	events := e.Group("/api/events", bearer)
	events.GET("", eventHandler.List)
	events.GET("/:id", eventHandler.Get)
	events.GET("/:id/participants", eventHandler.Participants)
	events.POST("/:id/rsvp", eventHandler.RSVP)
	events.POST("", eventHandler.Create, organiserWrite)
	events.PUT("/:id", eventHandler.Update, organiserWrite)
	events.DELETE("/:id", eventHandler.Delete, organiserWrite)

	// --- Audit trail (admin) ---
	if deps.Audit != nil {
		auditHandler := handler.NewAuditHandler(deps.Audit)
		e.GET("/api/audit", auditHandler.List, bearer, adminOnly)
	}

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness)
	}

	return e
}
