// Package app provides the application kernel: it bootstraps a service
// container, registers core providers, and runs the HTTP server — mirrors
// Laravel's Application in bootstrap/app.php.
package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-silhouette/config"
	"github.com/km-arc/go-silhouette/container"
)

// Application is the top-level application container.
// It embeds the service Container so user code can pass it straight to
// container.Bind / container.Singleton — exactly like $app in Laravel.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
	Config    *config.Config
	Router    chi.Router
}

// New creates and bootstraps the application: loads configuration,
// builds the container, and registers the core providers.
//
//	application := app.New() // loads .env automatically
//	application.Router.Get("/", handler)
//	application.Run()
func New(envFiles ...string) *Application {
	cfg := config.Load(envFiles...)

	var opts []container.Option
	if cfg.Container.DefaultFallback {
		opts = append(opts, container.WithDefaultFallback())
	}
	c := container.New(opts...)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	application := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		Config:    cfg,
		Router:    r,
	}

	// Core providers, same order as Laravel's bootstrappers.
	application.Providers.Register(&ConfigServiceProvider{Config: cfg})
	application.Providers.Register(&RoutingServiceProvider{Router: r})

	return application
}

// Boot boots all registered providers. Run calls it for you; call it
// yourself when embedding the kernel without the HTTP server.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Run boots the providers and starts the HTTP server on APP_PORT
// (default 8000).
func (a *Application) Run() {
	a.Boot()

	addr := ":" + a.Config.App.Port
	fmt.Printf("🚀  %s running on http://localhost%s  [%s]\n",
		a.Config.App.Name, addr, a.Config.App.Env)

	if err := http.ListenAndServe(addr, a.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
