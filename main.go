package main

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/km-arc/go-silhouette/app"
	"github.com/km-arc/go-silhouette/config"
	"github.com/km-arc/go-silhouette/container"
	"github.com/km-arc/go-silhouette/facade"
)

// ── Demo services ─────────────────────────────────────────────────────────────

// DBPool stands in for a shared connection pool.
type DBPool struct {
	conns atomic.Int64
}

func NewDBPool() *DBPool { return &DBPool{} }

// Conn hands out a numbered connection.
func (p *DBPool) Conn() DBConnection {
	return DBConnection{ID: p.conns.Add(1)}
}

// DBConnection is resolved transiently — a fresh one per request.
type DBConnection struct {
	ID int64
}

// BuildInfo is process-wide state, shared through the facade rather than
// the kernel's container.
type BuildInfo struct {
	Version string
}

// ── Providers ─────────────────────────────────────────────────────────────────

// DatabaseServiceProvider wires the pool singleton and the per-resolution
// connection factory.
type DatabaseServiceProvider struct {
	container.BaseProvider
}

func (p *DatabaseServiceProvider) Register(c *container.Container) {
	// Always the same pool — Laravel: $app->singleton(DBPool::class, ...)
	container.Singleton(c, func(_ *container.Container) *DBPool {
		return NewDBPool()
	})

	// A new connection each resolve — Laravel: $app->bind(DBConnection::class, ...)
	container.Bind(c, func(c *container.Container) DBConnection {
		pool := container.MustResolve[*DBPool](c)
		return pool.Conn()
	})
}

// ── main ──────────────────────────────────────────────────────────────────────

func main() {
	application := app.New() // loads .env automatically

	application.Providers.Register(&DatabaseServiceProvider{})
	application.Boot()
	// All registration happens before the server starts; handlers only
	// resolve, which never mutates the container.

	// Process-wide state goes through the facade's shared container.
	// Laravel: App::singleton(BuildInfo::class, ...)
	if err := facade.Singleton(func(_ *container.Container) BuildInfo {
		return BuildInfo{Version: "1.0.0"}
	}); err != nil {
		panic(err)
	}

	c := application.Container
	r := application.Router

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		cfg := container.MustResolve[*config.Config](c)
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Welcome to " + cfg.App.Name + "!",
			"env":     cfg.App.Env,
		})
	})

	// Each hit resolves a fresh transient connection from the shared pool.
	r.Get("/conn", func(w http.ResponseWriter, req *http.Request) {
		conn, err := container.Resolve[DBConnection](c)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"connection": conn.ID})
	})

	r.Get("/pool", func(w http.ResponseWriter, req *http.Request) {
		pool := container.MustResolve[*DBPool](c)
		writeJSON(w, http.StatusOK, map[string]any{"handed_out": pool.conns.Load()})
	})

	r.Get("/version", func(w http.ResponseWriter, req *http.Request) {
		info, err := facade.Resolve[BuildInfo]()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"version": info.Version})
	})

	application.Run()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
