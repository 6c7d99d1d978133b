package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencehub/config"
	"conferencehub/internal/adapters/auth"
	"conferencehub/internal/adapters/calendar"
	"conferencehub/internal/adapters/email"
	httpdelivery "conferencehub/internal/delivery/http"
	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/repository/postgres"
	"conferencehub/internal/services"
)

const (
	bcryptCost      = 10
	readTimeout     = 10 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	db         *sql.DB
	httpServer *http.Server
}

// New connects to the database, applies migrations and wires the HTTP server.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{cfg: cfg, log: log}

	if err := app.initDB(); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	if err := postgres.Migrate(app.db); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	app.log.Info("migrations applied successfully")

	if err := app.initServer(); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("init server: %w", err)
	}

	return app, nil
}

func (a *App) initDB() error {
	db, err := sql.Open("postgres", a.cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ContextTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.Info("database connected")
	return nil
}

func (a *App) initServer() error {
	timeout := a.cfg.ContextTimeout

	userRepo := postgres.NewUserRepository(a.db)
	roleRepo := postgres.NewRoleRepository(a.db)
	eventRepo := postgres.NewEventRepository(a.db)
	activityRepo := postgres.NewActivityRepository(a.db)
	staffRepo := postgres.NewStaffRepository(a.db)
	registrationRepo := postgres.NewEventRegistrationRepository(a.db)
	catalogRepo := postgres.NewCatalogRepository(a.db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    a.cfg.Email.Provider,
		FromAddress: a.cfg.Email.FromAddress,
		FromName:    a.cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             a.cfg.Email.AWSRegion,
			AccessKeyID:        a.cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    a.cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: a.cfg.Email.InsecureSkipVerify,
		},
	}, a.log)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("init email templates: %w", err)
	}
	emailService := services.NewEmailService(mailer, renderer, a.log)

	hasher := auth.NewBcryptHasher(bcryptCost)
	issuer := auth.NewJWTIssuer(a.cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(a.cfg.JWTSecret)

	authService := services.NewAuthService(userRepo, roleRepo, hasher, issuer, a.cfg.JWTExpiry, emailService, a.log, timeout)
	userService := services.NewUserService(userRepo, hasher, timeout)
	catalogService := services.NewCatalogService(catalogRepo, timeout)
	eventService := services.NewEventService(eventRepo, activityRepo, staffRepo, calendar.NewICSExporter(), a.cfg.Schedule, timeout)
	activityService := services.NewActivityService(eventRepo, activityRepo, staffRepo, a.cfg.Schedule, timeout)
	staffService := services.NewStaffService(eventRepo, activityRepo, staffRepo, timeout)
	attendeeService := services.NewAttendeeService(eventRepo, registrationRepo, userRepo, emailService, a.log, timeout)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:     controllers.NewAuthController(a.log, authService),
		User:     controllers.NewUserController(a.log, userService),
		Catalog:  controllers.NewCatalogController(a.log, catalogService),
		Event:    controllers.NewEventController(a.log, eventService),
		Activity: controllers.NewActivityController(a.log, activityService),
		Staff:    controllers.NewStaffController(a.log, staffService),
		Attendee: controllers.NewAttendeeController(a.log, attendeeService),
	}, verifier, a.log)

	var handler http.Handler = router
	handler = middleware.CORS(a.cfg.CORSOrigins, handler)
	handler = middleware.LoggingMiddleware(a.log, handler)

	a.httpServer = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return nil
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server starting", "addr", a.httpServer.Addr, "env", a.cfg.Environment)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.db.Close()
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("HTTP server stopped")

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	a.log.Info("app stopped")
	return nil
}
