package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/http"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/realtime"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/cryptox"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/mailer"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the TaskFlow service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	keys   *Keys
	mailer mailer.Sender
	hub    *realtime.Hub

	// Services
	authService          *service.AuthService
	passwordResetService *service.PasswordResetService
	projectService       *service.ProjectService
	invitationService    *service.InvitationService
	taskService          *service.TaskService
	activityService      *service.ActivityService
	housekeepingService  *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskflow",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys = keys

	app.mailer = newMailer(cfg.Mail)
	app.logger.Info("mail driver configured", "driver", cfg.Mail.Driver)

	app.hub = realtime.NewHub(0)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("taskflow starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, ends event streams and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskflow...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Event streams never finish on their own.
	app.hub.Close()
	app.logger.Info("event hub closed", "dropped_events", app.hub.Dropped())

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slogx.Err(err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slogx.Err(err))
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slogx.Err(err))
		return err
	}

	app.logger.Info("taskflow stopped")
	return nil
}

// OpenStore opens the database file with the server's connection settings
// and applies pending migrations.
func OpenStore(path string) (*sqlite.Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func newMailer(cfg MailConfig) mailer.Sender {
	switch cfg.Driver {
	case "smtp":
		return &mailer.SMTPSender{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.From,
		}
	case "resend":
		return mailer.NewResendSender(cfg.ResendAPIKey, cfg.From)
	default:
		return mailer.LogSender{}
	}
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		KeyManager: app.keys.Manager,
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}
	app.passwordResetService = &service.PasswordResetService{
		Store:    app.db,
		Mailer:   app.mailer,
		Tokens:   app.keys.ResetTokens,
		OTPKey:   app.keys.OTPKey,
		OTPTTL:   app.cfg.OTPTTL,
		ResetTTL: app.cfg.ResetTokenTTL,
	}
	app.projectService = &service.ProjectService{Store: app.db, Mailer: app.mailer}
	app.invitationService = &service.InvitationService{Store: app.db, Mailer: app.mailer}
	app.taskService = &service.TaskService{Store: app.db, Events: app.hub}
	app.activityService = &service.ActivityService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.Manager,
		app.db,
		app.hub,
		app.logger,
		httpapi.RouterOptions{
			ErrorDetail:   !app.cfg.IsProduction(),
			CookieSecure:  app.cfg.CookieSecure,
			RefreshMaxAge: app.cfg.RefreshTokenTTL,
			Heartbeat:     app.cfg.StreamHeartbeat,
		},
	)

	router.AuthService = app.authService
	router.PasswordResetService = app.passwordResetService
	router.ProjectService = app.projectService
	router.InvitationService = app.invitationService
	router.TaskService = app.taskService
	router.ActivityService = app.activityService
	router.ApplyRoutes()

	app.router = router

	// No WriteTimeout: event streams are long-lived and clear their own
	// deadline.
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
