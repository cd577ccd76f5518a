// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/auth"
	"github.com/carbon-tracker/backend/internal/application/usecase/catalog"
	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/application/usecase/entry"
	"github.com/carbon-tracker/backend/internal/application/usecase/goal"
	"github.com/carbon-tracker/backend/internal/application/usecase/profile"
	"github.com/carbon-tracker/backend/internal/application/usecase/session"
	"github.com/carbon-tracker/backend/internal/infra/cache"
	infradb "github.com/carbon-tracker/backend/internal/infra/db"
	"github.com/carbon-tracker/backend/internal/infra/server/router"
	"github.com/carbon-tracker/backend/internal/integration/adapters"
	"github.com/carbon-tracker/backend/internal/integration/email"
	"github.com/carbon-tracker/backend/internal/integration/email/templates"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/carbon-tracker/backend/internal/integration/guest"
	"github.com/carbon-tracker/backend/internal/integration/observability"
	"github.com/carbon-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	Stores      *entry.Factory
	SeedCatalog *catalog.SeedCatalogUseCase
	EmailWorker *email.Worker
}

// Option customizes the injector.
type Option func(*options)

type options struct {
	now         func() time.Time
	emailSender adapter.EmailSender
}

// WithClock replaces the wall clock used by entries, goals and dashboards.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithEmailSender replaces the email provider.
func WithEmailSender(sender adapter.EmailSender) Option {
	return func(o *options) { o.emailSender = sender }
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...Option) (*Injector, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	profileRepo := persistence.NewProfileRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	entryRepo := persistence.NewEntryRepository(db)
	activityTypeRepo := persistence.NewActivityTypeRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	guestStore := guest.NewRedisStore(redisClient, cfg.Guest.SessionTTL)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT, tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	emailWorker, err := newEmailWorker(cfg.Email, emailQueueRepo, o.emailSender)
	if err != nil {
		return nil, err
	}

	// Entry stores notify goal alerts and metrics after every change
	checkGoalAlertsUseCase := goal.NewCheckGoalAlertsUseCase(goalRepo, userRepo, emailService, o.now)
	stores := entry.NewFactory(activityTypeRepo, entryRepo, guestStore,
		entry.WithClock(o.now),
		entry.WithObserver(observability.EntryObserver()),
		entry.WithObserver(checkGoalAlertsUseCase.Observer()),
	)
	clock := dashboard.Clock(o.now)

	if sqlDB, err := db.DB(); err == nil {
		if err := observability.RegisterDBStats(sqlDB, "carbon_tracker"); err != nil {
			slog.Warn("Failed to register database metrics", "error", err)
		}
	}

	// Controllers
	healthController := controller.NewHealthController(
		infradb.NewFromGorm(db).Healthy,
		func() bool { return cache.HealthCheck(redisClient) },
	)

	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, goalRepo, passwordService, tokenService, emailService),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
		auth.NewRefreshTokenUseCase(tokenService),
		session.NewSignOutUseCase(guestStore, tokenService),
		session.NewSignInAsGuestUseCase(guestStore),
	)

	catalogController := controller.NewCatalogController(
		catalog.NewListActivityTypesUseCase(activityTypeRepo),
		catalog.NewEstimateEmissionUseCase(activityTypeRepo),
	)

	entryController := controller.NewEntryController(stores, dashboard.NewGetHistoryUseCase(stores))

	footprintController := controller.NewFootprintController(
		dashboard.NewGetDailySummaryUseCase(stores, clock),
		dashboard.NewGetWeeklySummaryUseCase(stores, clock),
		dashboard.NewGetEntriesInRangeUseCase(stores),
		dashboard.NewGetRecentEntriesUseCase(stores),
		dashboard.NewGetTotalUseCase(stores),
		dashboard.NewGetTrendUseCase(stores),
		dashboard.NewGetDailySeriesUseCase(stores, clock),
	)

	dashboardController := controller.NewDashboardController(
		dashboard.NewGetOverviewUseCase(stores, clock),
		dashboard.NewGetMonthlyComparisonUseCase(stores, clock),
		dashboard.NewGetAnalyticsUseCase(stores),
	)

	goalController := controller.NewGoalController(
		goal.NewListGoalsUseCase(goalRepo, entryRepo, activityTypeRepo, o.now),
		goal.NewCreateGoalUseCase(goalRepo),
		goal.NewGetGoalUseCase(goalRepo, entryRepo, activityTypeRepo, o.now),
		goal.NewUpdateGoalUseCase(goalRepo),
		goal.NewDeleteGoalUseCase(goalRepo),
	)

	profileController := controller.NewProfileController(
		profile.NewGetProfileUseCase(userRepo, profileRepo, entryRepo, activityTypeRepo, o.now),
		profile.NewUpdateProfileUseCase(profileRepo),
	)

	// Middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(session.NewResolveUseCase(guestStore, tokenService))

	r := router.NewRouter(router.Controllers{
		Health:    healthController,
		Auth:      authController,
		Catalog:   catalogController,
		Entry:     entryController,
		Footprint: footprintController,
		Dashboard: dashboardController,
		Goal:      goalController,
		Profile:   profileController,
	}, loginRateLimiter, authMiddleware, cfg.CORS, cfg.Metrics)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      r,
		Stores:      stores,
		SeedCatalog: catalog.NewSeedCatalogUseCase(activityTypeRepo),
		EmailWorker: emailWorker,
	}, nil
}

func newEmailWorker(cfg config.EmailConfig, queue adapter.EmailQueueRepository, sender adapter.EmailSender) (*email.Worker, error) {
	if sender == nil {
		if cfg.ResendAPIKey != "" {
			client, err := email.NewResendClient(cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to create resend client: %w", err)
			}
			sender = client
		} else {
			slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
			sender = email.NewLogSender(slog.Info)
		}
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	workerConfig := email.DefaultWorkerConfig()
	if cfg.PollInterval > 0 {
		workerConfig.PollInterval = cfg.PollInterval
	}
	if cfg.BatchSize > 0 {
		workerConfig.BatchSize = cfg.BatchSize
	}
	if cfg.StaleAfter > 0 {
		workerConfig.StaleAfter = cfg.StaleAfter
	}
	return email.NewWorker(queue, sender, renderer, workerConfig), nil
}
