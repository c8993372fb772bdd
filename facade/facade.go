package facade

import (
	"errors"
	"sync"

	"github.com/km-arc/go-silhouette/config"
	"github.com/km-arc/go-silhouette/container"
)

// ErrLock is returned when the shared container is poisoned — a factory
// panicked while a registration held the write lock, so the tables may be
// mid-update. Distinct from the container sentinels: errors.Is(err, ErrLock)
// means the container could not even be reached.
var ErrLock = errors.New("facade: shared container is poisoned")

var (
	mu       sync.RWMutex
	poisoned bool // guarded by mu; set only while the write lock is held
)

// shared lazily constructs the process-wide container exactly once.
// CONTAINER_DEFAULT_FALLBACK from the environment (or .env) selects the
// zero-value fallback at construction time.
var shared = sync.OnceValue(func() *container.Container {
	cfg := config.Load()

	var opts []container.Option
	if cfg.Container.DefaultFallback {
		opts = append(opts, container.WithDefaultFallback())
	}
	return container.New(opts...)
})

// write runs fn under the exclusive lock. A panic escaping fn (i.e. a
// panicking factory inside Singleton/Scoped) poisons the shared container
// and is re-raised unchanged.
func write(fn func(c *container.Container)) error {
	c := shared()

	mu.Lock()
	defer mu.Unlock()
	if poisoned {
		return ErrLock
	}

	defer func() {
		if r := recover(); r != nil {
			poisoned = true
			panic(r)
		}
	}()
	fn(c)
	return nil
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory for T on the shared container.
//
//	// Laravel: App::bind(...)
//	err := facade.Bind(func(c *container.Container) DBConnection { ... })
func Bind[T any](f container.Factory[T]) error {
	return write(func(c *container.Container) { container.Bind(c, f) })
}

// BindIf registers the factory only when no factory exists for T yet.
func BindIf[T any](f container.Factory[T]) error {
	return write(func(c *container.Container) { container.BindIf(c, f) })
}

// Singleton materializes f's value on the shared container. The factory
// runs while the write lock is held, so it may resolve other bindings but
// must never call back into registration.
func Singleton[T any](f container.Factory[T]) error {
	return write(func(c *container.Container) { container.Singleton(c, f) })
}

// SingletonIf registers the singleton only when no materialized instance
// exists for T yet.
func SingletonIf[T any](f container.Factory[T]) error {
	return write(func(c *container.Container) { container.SingletonIf(c, f) })
}

// Scoped registers a singleton marked for bulk eviction via
// ForgetScopedInstances.
func Scoped[T any](f container.Factory[T]) error {
	return write(func(c *container.Container) { container.Scoped(c, f) })
}

// ScopedIf registers the scoped singleton only when T is not already
// scoped-marked.
func ScopedIf[T any](f container.Factory[T]) error {
	return write(func(c *container.Container) { container.ScopedIf(c, f) })
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve produces a value for T from the shared container under the read
// lock. Container errors pass through unwrapped, so callers can
// distinguish errors.Is(err, container.ErrNotFound) from
// errors.Is(err, facade.ErrLock).
//
//	pool, err := facade.Resolve[*DBPool]()
func Resolve[T any]() (T, error) {
	c := shared()

	mu.RLock()
	defer mu.RUnlock()
	if poisoned {
		var zero T
		return zero, ErrLock
	}
	return container.Resolve[T](c)
}

// ── Eviction ──────────────────────────────────────────────────────────────────

// ForgetScopedInstances removes the materialized instance of every
// scoped-marked type on the shared container.
func ForgetScopedInstances() error {
	return write(func(c *container.Container) { c.ForgetScopedInstances() })
}

// Flush resets the shared container to its just-constructed state. Since a
// fresh container cannot be mid-update, Flush also clears poisoning — it
// is the one recovery path after a factory panic.
func Flush() error {
	c := shared()

	mu.Lock()
	defer mu.Unlock()
	poisoned = false
	c.Flush()
	return nil
}
