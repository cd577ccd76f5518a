// Package router sets up the HTTP routing for the application.
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/carbon-tracker/backend/internal/integration/observability"
)

// Controllers groups the HTTP handlers the router mounts.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	Catalog   *controller.CatalogController
	Entry     *controller.EntryController
	Footprint *controller.FootprintController
	Dashboard *controller.DashboardController
	Goal      *controller.GoalController
	Profile   *controller.ProfileController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
	cors             config.CORSConfig
	metrics          config.MetricsConfig
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	corsConfig config.CORSConfig,
	metricsConfig config.MetricsConfig,
) *Router {
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
		cors:             corsConfig,
		metrics:          metricsConfig,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()
	r.engine.Use(cors.New(r.corsConfig()))
	if r.metrics.Enabled {
		r.engine.Use(observability.Middleware())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.GuestSessionHeader},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(r.cors.AllowedOrigins) == 0 || slices.Contains(r.cors.AllowedOrigins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = r.cors.AllowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
	if r.metrics.Enabled {
		r.engine.GET(r.metrics.Path, gin.WrapH(promhttp.Handler()))
	}
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Resolve())
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.controllers.Auth.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.controllers.Auth.Login)
			auth.POST("/refresh", r.controllers.Auth.RefreshToken)
			auth.POST("/logout", r.controllers.Auth.Logout)
			auth.POST("/guest", r.controllers.Auth.Guest)
			auth.GET("/session", r.controllers.Auth.Session)
		}

		activityTypes := v1.Group("/activity-types")
		{
			activityTypes.GET("", r.controllers.Catalog.List)
			activityTypes.GET("/:id/estimate", r.controllers.Catalog.Estimate)
		}

		// Guests and signed-in users; anonymous reads are empty and writes are refused.
		entries := v1.Group("/entries")
		{
			entries.GET("", r.controllers.Entry.List)
			entries.POST("", r.controllers.Entry.Create)
			entries.DELETE("/:id", r.controllers.Entry.Delete)
		}

		footprint := v1.Group("/footprint")
		{
			footprint.GET("/daily", r.controllers.Footprint.Daily)
			footprint.GET("/weekly", r.controllers.Footprint.Weekly)
			footprint.GET("/range", r.controllers.Footprint.Range)
			footprint.GET("/recent", r.controllers.Footprint.Recent)
			footprint.GET("/total", r.controllers.Footprint.Total)
			footprint.GET("/trend", r.controllers.Footprint.Trend)
			footprint.GET("/series", r.controllers.Footprint.Series)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/overview", r.controllers.Dashboard.Overview)
			dashboard.GET("/monthly", r.controllers.Dashboard.Monthly)
			dashboard.GET("/analytics", r.controllers.Dashboard.Analytics)
		}

		goals := v1.Group("/goals")
		goals.Use(r.authMiddleware.Authenticate())
		{
			goals.GET("", r.controllers.Goal.List)
			goals.POST("", r.controllers.Goal.Create)
			goals.GET("/:id", r.controllers.Goal.Get)
			goals.PATCH("/:id", r.controllers.Goal.Update)
			goals.DELETE("/:id", r.controllers.Goal.Delete)
		}

		profile := v1.Group("/profile")
		profile.Use(r.authMiddleware.Authenticate())
		{
			profile.GET("", r.controllers.Profile.Get)
			profile.PUT("", r.controllers.Profile.Update)
		}
	}
}
