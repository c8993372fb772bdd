package container

import (
	"fmt"
	"reflect"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type PoolProvider struct{ container.BaseProvider }
//
//	func (p *PoolProvider) Register(app *container.Container) {
//	    container.Singleton(app, func(_ *container.Container) *DBPool {
//	        return NewDBPool()
//	    })
//	}
//
//	func (p *PoolProvider) Boot(app *container.Container) {
//	    pool := container.MustResolve[*DBPool](app)
//	    pool.Warm()
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any binding here.
	Boot(app *Container)

	// Provides returns the type keys this provider registers.
	// Used for deferred (lazy) provider loading; a deferred provider must
	// list exactly the types its Register call binds.
	// Return nil / empty slice if the provider is always eager.
	Provides() []reflect.Type

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() types is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)        {}
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
//
// Deferred loading registers an interceptor factory that mutates the
// container on first resolution, so deferred providers belong to
// single-goroutine bootstrap on an unsynchronized container — never
// behind the facade's read lock.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[reflect.Type]ServiceProvider // type key → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[reflect.Type]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, key := range provider.Provides() {
			r.deferred[key] = provider
		}
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// A provider registered after Boot() is booted immediately.
	if r.booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred binds a placeholder factory for each deferred type.
// The first resolution triggers real registration + boot.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, key := range provider.Provides() {
		r.app.bind(key, func(c *Container) any {
			if _, pending := r.deferred[key]; pending {
				r.load(provider, c)
			}
			v, err := c.resolveKey(key)
			if err != nil {
				panic(fmt.Sprintf("container: deferred provider %T did not register %s", provider, key))
			}
			return v
		})
	}
}

// load performs the real registration of a deferred provider. The
// interceptor bindings are dropped first so Register starts from a clean
// slate for every provided type.
func (r *ProviderRegistry) load(provider ServiceProvider, c *Container) {
	for _, key := range provider.Provides() {
		delete(r.deferred, key)
		delete(c.bindings, key)
	}
	provider.Register(c)
	if r.booted {
		provider.Boot(c)
	}
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
