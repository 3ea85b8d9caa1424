package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/opencouncil/deskd/internal/http"
	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/internal/store"
	"github.com/opencouncil/deskd/internal/store/drivers/sqlite"
	"github.com/opencouncil/deskd/pkg/jwtx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the complaint desk service with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.HS256

	authService      *service.AuthService
	userService      *service.UserService
	complaintService *service.ComplaintService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "deskd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initTokens(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("deskd starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down deskd...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("deskd stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initTokens builds the HS256 signer/verifier. Outside dev a missing secret
// is a startup error, never a silent fallback.
func (app *Application) initTokens() error {
	secret := []byte(app.cfg.JWTSecret)

	if len(secret) == 0 {
		if !app.cfg.IsDev() {
			return fmt.Errorf("DESK_JWT_SECRET is required when ENV=%q", app.cfg.Env)
		}

		// Dev convenience: ephemeral secret, tokens die with the process.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate ephemeral JWT secret: %w", err)
		}
		app.logger.Warn("DESK_JWT_SECRET not set, using ephemeral secret; issued tokens will not survive a restart")
	}

	tokens, err := jwtx.NewHS256(secret, app.cfg.Issuer, app.cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.tokens = tokens

	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Tokens: app.tokens,
	}
	app.userService = &service.UserService{Store: app.db}
	app.complaintService = &service.ComplaintService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	app.router = &httpapi.Router{
		Store:            app.db,
		Verifier:         app.tokens,
		AuthService:      app.authService,
		UserService:      app.userService,
		ComplaintService: app.complaintService,
		StartTime:        time.Now(),
		Version:          BuildVersion,
	}

	handler := slogx.HTTPMiddleware(app.logger)(app.router.Handler())

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
