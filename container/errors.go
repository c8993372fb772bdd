package container

import "errors"

// Sentinel errors returned by Resolve. Match with errors.Is.
var (
	// ErrNotFound is returned when neither a materialized instance nor a
	// binding exists for the requested type (and the zero-value fallback
	// is disabled).
	ErrNotFound = errors.New("container: binding not found")

	// ErrCastFailed is returned when a stored value cannot be asserted to
	// the requested type. Through the typed API the one way to hit it is a
	// factory returning a nil interface value — a type assertion on a nil
	// interface always fails, so such a registration is misuse and
	// resolves to this error rather than the nil. A typed nil (e.g. a nil
	// *DBPool) round-trips fine.
	ErrCastFailed = errors.New("container: failed to cast binding to requested type")
)
