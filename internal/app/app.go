package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/config"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/hash"
	"github.com/shandysiswandi/gopost/internal/pkg/idempotency"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/messaging"
	"github.com/shandysiswandi/gopost/internal/pkg/router"
	"github.com/shandysiswandi/gopost/internal/pkg/session"
	"github.com/shandysiswandi/gopost/internal/pkg/uid"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	hmac      hash.Signer
	pbkdf2    hash.Salted

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	sessions  *session.Manager
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	// released in reverse order of acquisition
	closers []resourceCloser
}

type resourceCloser struct {
	name string
	fn   func(context.Context) error
}

// New loads configuration from CONFIG_PATH and wires the application, exiting on failure.
func New() *App {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	app, err := NewWithConfig(cfg)
	if err != nil {
		slog.Error("failed to init application", "error", err)
		os.Exit(1)
	}

	return app
}

// NewWithConfig wires the application from an already loaded configuration.
// Resources opened before a failing step are released before returning.
func NewWithConfig(cfg config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
		config: cfg,
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"instrument", app.initInstrument},
		{"libraries", app.initLibraries},
		{"database", app.initDatabase},
		{"cache", app.initCache},
		{"messaging", app.initMessaging},
		{"http server", app.initHTTPServer},
		{"modules", app.initModules},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			slog.Error("failed to init "+step.name, "error", err)
			app.closeResources(context.Background())
			cancel()
			return nil, err
		}
	}

	return app, nil
}
