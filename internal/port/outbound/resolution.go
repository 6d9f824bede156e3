package outbound

// Resolution is the result of resolving an optional dependency: either a
// usable port or an explicit reason it is not wired up. Callers check it
// once per request instead of scattering nil checks through every handler.
type Resolution[T any] struct {
	port       T
	configured bool
	reason     string
}

// Configured wraps a wired-up port.
func Configured[T any](port T) Resolution[T] {
	return Resolution[T]{port: port, configured: true}
}

// Unconfigured records why the dependency is absent.
func Unconfigured[T any](reason string) Resolution[T] {
	return Resolution[T]{reason: reason}
}

// Get returns the port and whether it is configured.
func (r Resolution[T]) Get() (T, bool) {
	return r.port, r.configured
}

// Reason returns the explanation for an unconfigured dependency.
func (r Resolution[T]) Reason() string {
	return r.reason
}
