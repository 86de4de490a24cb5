package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vodintech/caragecarcare/internal/config"
	"github.com/vodintech/caragecarcare/internal/handlers"
	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/services"
	"github.com/vodintech/caragecarcare/internal/store"
	"github.com/vodintech/caragecarcare/internal/websocket"
	"github.com/vodintech/caragecarcare/pkg/catalog"
)

// sweepInterval paces the idle-session and stale-record cleanup loop
const sweepInterval = time.Hour

// App holds all application dependencies
type App struct {
	log         logger.Logger
	cfg         config.Config
	handlers    *handlers.Handlers
	sessions    *services.SessionManager
	store       *store.Store
	cancelSweep context.CancelFunc
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg config.Config, client catalog.Client) (*App, error) {
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	sender := services.NewLogSender(log)
	sessions := services.NewSessionManager(log, st, client, sender, cfg.YearStepEnabled, cfg.CountdownSeconds)

	hub := websocket.New(log)
	hub.Start()
	sessions.SetBroadcaster(hub)

	h := handlers.New(sessions, client, hub, log)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		log:         log,
		cfg:         cfg,
		handlers:    h,
		sessions:    sessions,
		store:       st,
		cancelSweep: cancel,
	}
	go app.sweep(ctx)

	return app, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// sweep evicts idle sessions and purges their stale store records
func (a *App) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := a.sessions.EvictIdle(a.cfg.SessionMaxAge)
			purged, err := a.store.PurgeOlderThan(ctx, a.cfg.SessionMaxAge)
			if err != nil {
				a.log.Warn("Store purge failed", "error", err)
				continue
			}
			if evicted > 0 || purged > 0 {
				a.log.Info("Session sweep complete", "evicted", evicted, "purged", purged)
			}
		}
	}
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.cancelSweep != nil {
		a.cancelSweep()
	}
	a.sessions.Close()
	if err := a.store.Close(); err != nil {
		a.log.Warn("Store close failed", "error", err)
	}
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	a.log.Info("Server starting", "addr", addr, "catalog", a.cfg.CatalogBaseURL)
	return http.ListenAndServe(addr, a.Router())
}
