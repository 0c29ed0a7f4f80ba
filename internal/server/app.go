// Package server assembles the userbook server: it opens the store, applies
// migrations, optionally seeds sample users and serves the HTTP API until
// the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userbook/internal/logging"
	"github.com/dmitrijs2005/userbook/internal/server/config"
	"github.com/dmitrijs2005/userbook/internal/server/httpapi"
	"github.com/dmitrijs2005/userbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userbook/internal/server/services"
	"github.com/dmitrijs2005/userbook/internal/server/storage"
	"github.com/gin-gonic/gin"
)

// logOutput is where the JSON log lines go.
var logOutput io.Writer = os.Stdout

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

// NewApp opens the database named by c.DatabaseDSN and brings its schema up
// to date. Sample users are inserted when c.SeedSampleData is set.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(logOutput, c.LogLevel)

	db, dialect, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(dialect)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(db, rm),
	}

	if c.SeedSampleData {
		n, err := app.userService.Seed(ctx)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
		logger.Info(ctx, "Sample data", "inserted", n)
	}

	logger.Info(ctx, "Database ready", "dialect", string(dialect))
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// router builds the gin engine for the API, with the limiter when enabled.
func (app *App) router(ctx context.Context) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	var limiter *httpapi.RateLimiter
	if app.config.RateLimitRPS > 0 {
		limiter = httpapi.NewRateLimiter(ctx, app.config.RateLimitRPS, app.config.RateLimitBurst)
	}

	h := httpapi.NewHandler(app.userService, app.logger)
	r := httpapi.NewRouter(h, app.logger, limiter, app.db.PingContext)
	if err := httpapi.TrustProxies(r, app.config.TrustedProxies); err != nil {
		return nil, err
	}
	return r, nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var runErr error
	if r, err := app.router(ctx); err != nil {
		runErr = err
	} else {
		srv := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, r, app.logger, app.config.ShutdownTimeout)
		runErr = srv.Run(ctx)
	}
	if runErr != nil {
		app.logger.Error(ctx, runErr.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err.Error())
	}

	app.logger.Info(ctx, "Stopped")
	return runErr
}
