// Package container provides a Laravel-style service container for Go,
// keyed by concrete Go types instead of string abstracts.
//
// # Overview
//
// The container associates a type with a means of producing its value —
// either a transient factory invoked on every resolution, or a singleton
// materialized once at registration time and handed out as a copy
// thereafter. Scoped singletons are additionally marked for bulk eviction
// via ForgetScopedInstances, the building block for per-request lifetimes.
//
// Because Go methods cannot take type parameters, registration and
// resolution are package-level generic functions taking the container as
// their first argument.
//
// # Registration
//
//	c := container.New()
//
//	// Singleton — materialized now, shared (copied) on every Resolve
//	// Laravel: $app->singleton(DBPool::class, fn($app) => new DBPool)
//	container.Singleton(c, func(_ *container.Container) *DBPool {
//	    return NewDBPool()
//	})
//
//	// Transient — a fresh value on every Resolve
//	// Laravel: $app->bind(DBConnection::class, fn($app) => ...)
//	container.Bind(c, func(c *container.Container) DBConnection {
//	    pool := container.MustResolve[*DBPool](c)
//	    return pool.Conn()
//	})
//
//	// Scoped — a singleton evicted in bulk by ForgetScopedInstances
//	// Laravel: $app->scoped(RequestState::class, fn($app) => ...)
//	container.Scoped(c, func(_ *container.Container) RequestState {
//	    return NewRequestState()
//	})
//
// Each registration form has an *If variant that is a no-op when a
// registration of that same form already exists. The checks are
// deliberately asymmetric and must stay that way: BindIf consults the
// factory table only, SingletonIf the instance table only, ScopedIf the
// scoped set only.
//
// Registering a transient binding for a type drops its cached singleton;
// a type never answers with a stale instance after a fresh Bind.
//
// # Resolution
//
//	// Laravel: $app->make(DBConnection::class)
//	conn, err := container.Resolve[DBConnection](c)
//
// Resolution follows a fixed precedence: materialized instance, then
// transient factory, then — only on containers built with
// WithDefaultFallback — the type's zero value, then ErrNotFound.
// Resolve never mutates the container and never caches a transient result.
//
// Singleton values implementing Cloner[T] are cloned on every read;
// all other values are returned by assignment, so value types are copied
// and pointer types share their pointee.
//
// A factory must not return a bare nil for an interface type: the nil
// cannot be asserted back to the interface, so the binding resolves to
// ErrCastFailed. Typed nil pointers round-trip normally.
//
// # Concurrency
//
// A Container carries no lock. It is intended for a single owner or
// externally synchronized use; the facade package wraps the process-wide
// shared container in a reader/writer lock. A factory may resolve other
// bindings during its own invocation but must never register — under the
// facade's read lock that is a self-deadlock.
//
// # Service providers
//
// ServiceProvider and ProviderRegistry port Laravel's provider lifecycle:
// Register() binds, Boot() runs after all providers are registered, and
// deferred providers are loaded on the first resolution of one of their
// Provides() types.
package container
