package vm

import "fmt"

// Backend is a named execution strategy. All backends produce identical
// results for every program produced by Compile.
type Backend struct {
	Name string
	Run  func(Program) (float64, error)
}

var backends = []Backend{
	{Name: "baseline", Run: Run},
	{Name: "array", Run: RunArray},
	{Name: "compact", Run: RunCompact},
	{Name: "cached", Run: RunCached},
	{Name: "fused", Run: RunFused},
}

// Backends returns every registered backend, baseline first.
func Backends() []Backend {
	out := make([]Backend, len(backends))
	copy(out, backends)
	return out
}

// BackendNames returns the names of the registered backends in order.
func BackendNames() []string {
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name
	}
	return names
}

// LookupBackend returns the backend with the given name.
func LookupBackend(name string) (Backend, error) {
	for _, b := range backends {
		if b.Name == name {
			return b, nil
		}
	}
	return Backend{}, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}
