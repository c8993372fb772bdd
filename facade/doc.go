// Package facade exposes the process-wide shared service container behind
// free functions — the Go rendering of Laravel's static facades.
//
//	// Laravel: App::singleton(DBPool::class, fn() => new DBPool)
//	facade.Singleton(func(_ *container.Container) *DBPool {
//	    return NewDBPool()
//	})
//
//	// somewhere else in the application...
//	pool, err := facade.Resolve[*DBPool]()
//
// The shared container is created lazily on first use and lives for the
// rest of the process. It is never handed out directly: every function
// here acquires a single reader/writer lock guarding all container state
// as one unit — exclusive for registration, eviction, and Flush; shared
// for Resolve. Factory invocations run while the lock is held, so a
// factory may resolve other bindings but must never register; doing so
// under the read lock is a self-deadlock.
//
// # Poisoning
//
// A factory panic during registration leaves the container mid-update.
// The panic propagates unchanged to the registering caller, and the
// container is marked poisoned: every later facade call fails with
// ErrLock until Flush() resets it. A panic during Resolve (read access)
// does not poison.
//
// Flush is the deliberate exception to "every later call": Rust's RwLock
// offers no recovery from poisoning, but a flushed container is
// indistinguishable from a freshly constructed one — it cannot be
// mid-update — so Flush clears the poisoned state instead of failing.
//
// # Configuration
//
// First use loads configuration through the config package:
// CONTAINER_DEFAULT_FALLBACK=true (environment or .env) builds the shared
// container with the zero-value fallback enabled. Disabled by default.
package facade
