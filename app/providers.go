package app

import (
	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-silhouette/config"
	"github.com/km-arc/go-silhouette/container"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration into the
// container as a *config.Config singleton.
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider

	// Config, when non-nil, is bound as-is. Otherwise Register loads a
	// fresh one from EnvFiles.
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	cfg := p.Config
	envFiles := p.EnvFiles
	container.Singleton(app, func(_ *container.Container) *config.Config {
		if cfg != nil {
			return cfg
		}
		return config.Load(envFiles...)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router into the container under
// the chi.Router interface type, so handlers and providers can resolve it
// without reaching for the kernel.
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider

	// Router, when non-nil, is bound as-is. Otherwise a fresh mux is built.
	Router chi.Router
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	r := p.Router
	container.Singleton(app, func(_ *container.Container) chi.Router {
		if r != nil {
			return r
		}
		return chi.NewRouter()
	})
}
