package handler

import (
	"net/http"

	"github.com/Baaaki/store-rating/internal/middleware"
	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handlers groups every route handler the router mounts.
type Handlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Admin  *AdminHandler
	Store  *StoreHandler
	Rating *RatingHandler
	Health *HealthHandler
}

// RouterOptions holds the cross-cutting pieces. Nil Prom, Gatherer and
// RateLimiter disable metrics and rate limiting.
type RouterOptions struct {
	JWTSecret      string
	AllowedOrigins []string
	IsProduction   bool
	ServiceName    string
	Tracing        bool
	Prom           *observability.Prom
	Gatherer       prometheus.Gatherer
	RateLimiter    *middleware.RateLimiter
}

func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if opts.Tracing {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.Prom != nil {
		router.Use(opts.Prom.GinHandleMiddleware())
	}
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(opts.IsProduction))

	// Public routes
	router.GET("/", h.Health.Banner)
	router.GET("/healthz", h.Health.Healthz)
	router.GET("/readyz", h.Health.Readyz)
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	auth := router.Group("/api/auth")
	if opts.RateLimiter != nil {
		auth.Use(opts.RateLimiter.Middleware())
	}
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}

	// Protected routes (require JWT)
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(opts.JWTSecret))
	{
		api.PUT("/users/password", h.User.ChangePassword)
		api.GET("/stores", h.Store.ListStores)
		api.POST("/ratings", h.Rating.Submit)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Admin.Dashboard)
		admin.POST("/users", h.Admin.CreateUser)
		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/users/:id", h.Admin.GetUser)
		admin.POST("/stores", h.Admin.CreateStore)
		admin.GET("/stores", h.Admin.ListStores)
	}

	owner := api.Group("/store-owner")
	owner.Use(middleware.RequireRoles(models.RoleStoreOwner))
	{
		owner.GET("/dashboard", h.Store.OwnerDashboard)
		owner.POST("/stores", h.Store.CreateOwnedStore)
		owner.PUT("/change-password", h.User.ChangePassword)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
