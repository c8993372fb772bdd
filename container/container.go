package container

import (
	"fmt"
	"reflect"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value of type T from the container.
// A factory may resolve other registered types through its container
// argument, but must never register during its own invocation (see the
// facade package for the locking contract).
type Factory[T any] func(c *Container) T

// factory is the erased form stored in the bindings table.
type factory func(c *Container) any

// Cloner is implemented by singleton values that need a deep copy handed
// out on every resolution. Values that do not implement it are returned
// by plain assignment, which copies value types and shares pointees.
type Cloner[T any] interface {
	Clone() T
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the service container — mirrors Laravel's
// Illuminate\Container\Container, keyed by concrete Go types instead of
// string abstracts.
//
// It owns three tables, all keyed by reflect.Type:
//   - bindings:  transient factories, invoked on every Resolve
//   - instances: materialized singleton/scoped values, resolved at
//     registration time and handed out as copies
//   - scoped:    the set of types subject to ForgetScopedInstances
//
// A Container performs no locking of its own; it is meant for a single
// owner or external synchronization. The facade package wraps a shared
// Container in a process-wide reader/writer lock.
type Container struct {
	// type → transient factory
	bindings map[reflect.Type]factory

	// type → thunk yielding a copy of the materialized value
	instances map[reflect.Type]func() any

	// types eligible for bulk eviction
	scoped map[reflect.Type]struct{}

	// when set, Resolve falls back to the zero value instead of ErrNotFound
	defaultFallback bool
}

// Option configures a Container at construction time.
type Option func(*Container)

// WithDefaultFallback makes Resolve produce the requested type's zero
// value when no binding or instance exists, instead of ErrNotFound.
// Disabled by default. Flush does not reset it.
func WithDefaultFallback() Option {
	return func(c *Container) { c.defaultFallback = true }
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		bindings:  make(map[reflect.Type]factory),
		instances: make(map[reflect.Type]func() any),
		scoped:    make(map[reflect.Type]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TypeKey returns the reflect.Type used to key every table for T.
// It is derived from the type parameter alone, so interface types work
// the same as concrete ones.
//
//	container.TypeKey[*DBPool]()   // *main.DBPool
//	container.TypeKey[Mailer]()    // main.Mailer (interface)
func TypeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory for T — a fresh value is produced on
// every Resolve.
//
//	// Laravel: $app->bind(DBConnection::class, fn($app) => ...)
//	container.Bind(c, func(c *container.Container) DBConnection {
//	    pool := container.MustResolve[*DBPool](c)
//	    return pool.Conn()
//	})
//
// Bind drops any materialized instance for T, so a previously cached
// singleton is no longer returned. The factory is not invoked here.
func Bind[T any](c *Container, f Factory[T]) {
	c.bind(TypeKey[T](), func(c *Container) any { return f(c) })
}

// BindIf registers the factory only when no factory exists for T yet.
// It consults the bindings table alone: a type carrying only a cached
// singleton counts as unbound here.
//
//	// Laravel: $app->bindIf(...)
func BindIf[T any](c *Container, f Factory[T]) {
	if _, ok := c.bindings[TypeKey[T]()]; !ok {
		Bind(c, f)
	}
}

// Singleton invokes f immediately and caches the produced value; every
// Resolve for T returns a copy of it (via Clone when T implements Cloner).
// f is never invoked again. A panic inside f propagates to the caller and
// nothing is stored.
//
//	// Laravel: $app->singleton(DBPool::class, fn($app) => new DBPool)
//	container.Singleton(c, func(_ *container.Container) *DBPool {
//	    return NewDBPool()
//	})
//
// The bindings table is untouched, so Singleton shadows (rather than
// removes) an existing transient factory for T.
func Singleton[T any](c *Container, f Factory[T]) {
	v := f(c)
	c.instances[TypeKey[T]()] = materialize(v)
}

// SingletonIf registers the singleton only when no materialized instance
// exists for T yet. It consults the instances table alone — a transient
// factory for T does not suppress it.
func SingletonIf[T any](c *Container, f Factory[T]) {
	if _, ok := c.instances[TypeKey[T]()]; !ok {
		Singleton(c, f)
	}
}

// Scoped registers a singleton additionally marked for bulk eviction via
// ForgetScopedInstances.
//
//	// Laravel: $app->scoped(RequestState::class, fn($app) => ...)
func Scoped[T any](c *Container, f Factory[T]) {
	c.scoped[TypeKey[T]()] = struct{}{}
	Singleton(c, f)
}

// ScopedIf registers the scoped singleton only when T is not already
// scoped-marked. Unlike SingletonIf it consults the scoped set, not the
// instances table.
func ScopedIf[T any](c *Container, f Factory[T]) {
	if _, ok := c.scoped[TypeKey[T]()]; !ok {
		Scoped(c, f)
	}
}

// bind stores an erased factory and invalidates any materialized instance
// for the same key.
func (c *Container) bind(key reflect.Type, f factory) {
	delete(c.instances, key)
	c.bindings[key] = f
}

// materialize wraps a produced value as the thunk stored in the instances
// table. Cloner values are cloned per read; everything else is returned
// as-is and copied by assignment.
func materialize[T any](v T) func() any {
	if cl, ok := any(v).(Cloner[T]); ok {
		return func() any { return cl.Clone() }
	}
	return func() any { return v }
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve produces a value for T following the fixed precedence:
// materialized instance, then transient factory, then (when enabled) the
// zero value, then ErrNotFound. It never mutates the container and never
// caches a transient result.
//
//	// Laravel: $app->make(DBPool::class)
//	pool, err := container.Resolve[*DBPool](c)
func Resolve[T any](c *Container) (T, error) {
	key := TypeKey[T]()

	if thunk, ok := c.instances[key]; ok {
		return cast[T](thunk())
	}

	if f, ok := c.bindings[key]; ok {
		return cast[T](f(c))
	}

	var zero T
	if c.defaultFallback {
		return zero, nil
	}
	return zero, ErrNotFound
}

// MustResolve is Resolve for wiring code where a missing binding is a
// programming error; it panics instead of returning one.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("container: resolve %s: %v", TypeKey[T](), err))
	}
	return v
}

// cast asserts an erased value to the requested type. A nil interface
// value always fails the assertion, so factories returning a bare nil for
// an interface type surface here as ErrCastFailed (see errors.go).
func cast[T any](v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: have %T, want %s", ErrCastFailed, v, TypeKey[T]())
	}
	return typed, nil
}

// resolveKey is the erased resolver used by deferred providers. The
// zero-value fallback needs a static type, so it does not apply here.
func (c *Container) resolveKey(key reflect.Type) (any, error) {
	if thunk, ok := c.instances[key]; ok {
		return thunk(), nil
	}
	if f, ok := c.bindings[key]; ok {
		return f(c), nil
	}
	return nil, ErrNotFound
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound reports whether T has a transient factory or a materialized
// instance. Note that BindIf deliberately does NOT use this check.
//
//	// Laravel: $app->bound(DBPool::class)
func Bound[T any](c *Container) bool {
	key := TypeKey[T]()
	if _, ok := c.bindings[key]; ok {
		return true
	}
	_, ok := c.instances[key]
	return ok
}

// Resolved reports whether a materialized instance currently exists for T.
//
//	// Laravel: $app->resolved(DBPool::class)
func Resolved[T any](c *Container) bool {
	_, ok := c.instances[TypeKey[T]()]
	return ok
}

// ── Eviction ──────────────────────────────────────────────────────────────────

// ForgetScopedInstances removes the materialized instance of every
// scoped-marked type. Factories and the scoped marks themselves survive: a
// subsequent Resolve falls through to a transient factory when one was
// registered, otherwise fails with ErrNotFound.
//
//	// Laravel: $app->forgetScopedInstances()
func (c *Container) ForgetScopedInstances() {
	for key := range c.scoped {
		delete(c.instances, key)
	}
}

// Flush clears all bindings, materialized instances, and scoped marks,
// returning the container to its just-constructed state.
//
//	// Laravel: $app->flush()
func (c *Container) Flush() {
	c.bindings = make(map[reflect.Type]factory)
	c.instances = make(map[reflect.Type]func() any)
	c.scoped = make(map[reflect.Type]struct{})
}
