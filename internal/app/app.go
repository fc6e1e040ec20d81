package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventstaff_backend/database"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/config"
	"eventstaff_backend/internal/email"
	"eventstaff_backend/internal/handlers"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/routes"
	"eventstaff_backend/internal/search"
	"eventstaff_backend/internal/services"
	"eventstaff_backend/internal/validator"
	"eventstaff_backend/internal/workers"
)

// Deps are the external collaborators. Nil fields fall back to in-process
// implementations; a nil Index means browse reads from the database.
type Deps struct {
	Sessions  auth.SessionStore
	Publisher messaging.Publisher
	Index     search.EventIndex
	Mailer    email.Provider
	Now       func() time.Time
}

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Repos     *repositories.RepositoryContainer
	Services  *services.ServiceContainer
	Metrics   *metrics.Registry
	Notifier  *auth.Notifier
	Publisher messaging.Publisher
	Mailer    email.Provider
	Router    *gin.Engine

	SubscriptionWorker *workers.SubscriptionWorker
	PaymentDueWatcher  *workers.PaymentDueWatcher

	closers []func() error
}

// Run is the server entrypoint: load config, connect everything, serve until
// SIGINT or SIGTERM.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := database.ConnectGorm(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}
	logger.Info("database connected")

	deps, closers := ConnectDeps(ctx, cfg)
	a := New(cfg, gormDB, deps)
	a.closers = append(a.closers, closers...)
	defer a.Close()

	a.SubscriptionWorker.Start(ctx)
	a.PaymentDueWatcher.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	a.SubscriptionWorker.Stop()
	a.PaymentDueWatcher.Stop()
}

// ConnectDeps dials whatever cfg configures. Every connection failure is
// fatal except Elasticsearch, which degrades to database browse.
func ConnectDeps(ctx context.Context, cfg *config.Config) (Deps, []func() error) {
	var deps Deps
	var closers []func() error

	if cfg.Redis.Addr != "" {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		deps.Sessions = auth.NewRedisSessionStore(client)
		closers = append(closers, client.Close)
		logger.Info("redis session store enabled", "addr", cfg.Redis.Addr)
	} else {
		logger.Warn("redis not configured, sessions are kept in memory")
	}

	if cfg.NATS.URL != "" {
		pub, err := messaging.NewNATSPublisher(messaging.Config{
			URL:       cfg.NATS.URL,
			ClusterID: cfg.NATS.ClusterID,
			ClientID:  cfg.NATS.ClientID,
		})
		if err != nil {
			logger.Fatal("failed to connect to nats streaming", "error", err)
		}
		deps.Publisher = pub
		logger.Info("nats publisher enabled", "url", cfg.NATS.URL)
	}

	if cfg.Elasticsearch.URL != "" {
		index, err := search.NewElasticsearchIndex(ctx, search.Config{
			URL:   cfg.Elasticsearch.URL,
			Index: cfg.Elasticsearch.Index,
		})
		if err != nil {
			logger.Error("elasticsearch unavailable, browse falls back to database", "error", err)
		} else {
			deps.Index = index
			logger.Info("elasticsearch index enabled", "index", cfg.Elasticsearch.Index)
		}
	}

	smtp := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		Timeout:   10 * time.Second,
	}
	if smtp.Enabled() {
		deps.Mailer = email.NewSMTPProvider(smtp, email.NewTemplateManager())
		logger.Info("smtp mailer enabled", "host", smtp.Host)
	}

	return deps, closers
}

// New wires repositories, services, handlers, routes and workers.
func New(cfg *config.Config, db *gorm.DB, deps Deps) *App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sessions == nil {
		deps.Sessions = auth.NewMemorySessionStore()
	}
	if deps.Publisher == nil {
		deps.Publisher = messaging.NoopPublisher{}
	}
	if deps.Mailer == nil {
		deps.Mailer = email.NewLogProvider(email.NewTemplateManager())
	}

	a := &App{
		Config:    cfg,
		DB:        db,
		Repos:     repositories.NewRepositoryContainer(),
		Metrics:   metrics.NewRegistry(),
		Notifier:  auth.NewNotifier(deps.Publisher),
		Publisher: deps.Publisher,
		Mailer:    deps.Mailer,
	}
	a.closers = append(a.closers, deps.Publisher.Close, deps.Mailer.Close)

	v := validator.New()
	a.Services = initializeServices(cfg, a, v, deps)

	gin.SetMode(ginMode(cfg.Server.Env))
	a.Router = initializeGinRouter(db, a.Metrics)
	routes.RegisterRoutes(a.Router, initializeHandlers(a.Services, a.Notifier, v), routes.Options{
		AuthMiddleware: middleware.AuthMiddleware(a.Services.AuthService),
		AuthRateLimit:  middleware.RateLimitMiddleware(cfg.Server.AuthRateLimit, cfg.Server.AuthBurst),
		Metrics:        a.Metrics,
		EnableSwagger:  cfg.Server.Env != "production",
	})

	a.SubscriptionWorker = workers.NewSubscriptionWorker(db, a.Repos.Subscription, a.Metrics,
		time.Duration(cfg.Workers.SubscriptionInterval)*time.Minute, deps.Now)
	a.PaymentDueWatcher = workers.NewPaymentDueWatcher(db, a.Repos, deps.Publisher, deps.Mailer, a.Metrics,
		time.Duration(cfg.Workers.PaymentDueInterval)*time.Minute, deps.Now)

	return a
}

func initializeServices(cfg *config.Config, a *App, v *validator.Validator, deps Deps) *services.ServiceContainer {
	market := services.MarketplaceFromConfig(cfg)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.TokenTTL(), deps.Now)
	profileCache := auth.NewProfileCache(5 * time.Minute)

	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		ist = time.FixedZone("IST", 5*60*60+30*60)
	}

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(a.Repos, tokens, deps.Sessions, profileCache, a.Notifier, v, a.Metrics, deps.Now),
		ProfileService:      services.NewProfileService(a.Repos.Profile, profileCache, v),
		SubscriptionService: services.NewSubscriptionService(a.Repos.Subscription, market, deps.Now),
		EventService:        services.NewEventService(a.Repos, deps.Index, deps.Publisher, v, a.Metrics, market, deps.Now),
		ApplicationService:  services.NewApplicationService(a.Repos, deps.Publisher, v, a.Metrics, deps.Now),
		AttendanceService:   services.NewAttendanceService(a.Repos, deps.Publisher, a.Metrics, market, ist, deps.Now),
		DashboardService:    services.NewDashboardService(a.Repos, market, deps.Now),
	}
}

func initializeHandlers(svc *services.ServiceContainer, notifier *auth.Notifier, v *validator.Validator) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(v)
	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(base, svc.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(base, svc.ProfileService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(base, svc.SubscriptionService),
		EventHandler:        handlers.NewEventHandler(base, svc.EventService),
		ApplicationHandler:  handlers.NewApplicationHandler(base, svc.ApplicationService),
		AttendanceHandler:   handlers.NewAttendanceHandler(base, svc.AttendanceService),
		DashboardHandler:    handlers.NewDashboardHandler(base, svc.DashboardService),
		HealthHandler:       handlers.NewHealthHandler(base),
		WSHandler:           handlers.NewWSHandler(base, notifier),
	}
}

func initializeGinRouter(db *gorm.DB, m *metrics.Registry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func ginMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// Close releases every connection the app opened.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}
