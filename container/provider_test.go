package container_test

import (
	"reflect"
	"testing"

	"github.com/km-arc/go-silhouette/container"
)

// ── stub services & providers ─────────────────────────────────────────────────

type eagerService struct{ name string }
type deferredService struct{ name string }

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(app *container.Container) {
	p.registerCalled = true
	container.Singleton(app, func(_ *container.Container) eagerService {
		return eagerService{name: "eager"}
	})
}

func (p *eagerProvider) Boot(app *container.Container) {
	p.bootCalled = true
}

// deferredProvider is lazy — registered only when deferredService is first
// resolved.
type deferredProvider struct {
	container.BaseProvider
	registerCalled bool
}

func (p *deferredProvider) Register(app *container.Container) {
	p.registerCalled = true
	container.Singleton(app, func(_ *container.Container) deferredService {
		return deferredService{name: "deferred-value"}
	})
}

func (p *deferredProvider) IsDeferred() bool { return true }
func (p *deferredProvider) Provides() []reflect.Type {
	return []reflect.Type{container.TypeKey[deferredService]()}
}

// multiProvider registers multiple types.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(app *container.Container) {
	container.Singleton(app, func(_ *container.Container) string { return "alpha" })
	container.Singleton(app, func(_ *container.Container) int { return 42 })
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)

	if !p.registerCalled {
		t.Error("Register() should be called immediately for eager providers")
	}
}

func TestRegistry_EagerProvider_BootCalledAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)

	if p.bootCalled {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}

	reg.Boot()

	if !p.bootCalled {
		t.Error("Boot() should be called after registry.Boot()")
	}
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})
	reg.Boot()

	got := container.MustResolve[eagerService](c)
	if got.name != "eager" {
		t.Errorf("eagerService: got %q, want 'eager'", got.name)
	}
}

func TestRegistry_Boot_IdempotentCallsAreIgnored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})

	reg.Boot()
	reg.Boot() // second call should be no-op

	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	if reg.Booted() {
		t.Error("Booted() should be false before Boot()")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)
	reg.Register(p) // second register of same instance

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1", len(reg.Providers()))
	}
}

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Boot() // boot before registering

	p := &eagerProvider{}
	reg.Register(p)

	if !p.bootCalled {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	if p.registerCalled {
		t.Error("deferred provider Register() should not be called until first resolve")
	}
}

func TestRegistry_DeferredProvider_RegisteredOnFirstResolve(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	got := container.MustResolve[deferredService](c)
	if got.name != "deferred-value" {
		t.Errorf("deferredService: got %q, want 'deferred-value'", got.name)
	}
	if !p.registerCalled {
		t.Error("first resolve should trigger the real registration")
	}
}

func TestRegistry_DeferredProvider_SingletonStableAcrossResolves(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&deferredProvider{})
	reg.Boot()

	first := container.MustResolve[deferredService](c)
	second := container.MustResolve[deferredService](c)
	if first != second {
		t.Errorf("deferred singleton should be stable: %v vs %v", first, second)
	}
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&multiProvider{})
	reg.Register(&eagerProvider{})
	reg.Boot()

	if got := container.MustResolve[string](c); got != "alpha" {
		t.Errorf("string: got %q, want 'alpha'", got)
	}
	if got := container.MustResolve[int](c); got != 42 {
		t.Errorf("int: got %d, want 42", got)
	}
	if got := container.MustResolve[eagerService](c); got.name != "eager" {
		t.Errorf("eagerService: got %q, want 'eager'", got.name)
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	c := container.New()

	p.Boot(c) // should not panic

	if p.IsDeferred() {
		t.Error("BaseProvider.IsDeferred() should be false")
	}
	if len(p.Provides()) != 0 {
		t.Error("BaseProvider.Provides() should return empty slice")
	}
}
