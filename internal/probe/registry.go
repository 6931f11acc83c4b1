// Package probe implements the collection functions that populate the
// agent's value store from /proc, /sys and user-supplied shell commands.
package probe

import "github.com/mzg/suntd/internal/store"

// Func inserts one probe's entries into s. A Func must be idempotent: two
// runs with no intervening host change must leave the same set of OIDs
// (values may differ for counters and timeticks, which naturally advance).
type Func func(s *store.Store) error

// Descriptor names a probe for logging and metrics. Probes are expressed
// as a registry of descriptors, not hard-coded calls (spec.md §9), so
// tests can inject synthetic probes.
type Descriptor struct {
	Name string
	Run  Func
}

// Registry is an ordered list of probes run on every refresh.
type Registry struct {
	probes []Descriptor
}

// NewRegistry builds a registry from the given descriptors, run in order.
func NewRegistry(descriptors ...Descriptor) *Registry {
	return &Registry{probes: descriptors}
}

// Add appends a probe to the registry.
func (r *Registry) Add(d Descriptor) {
	r.probes = append(r.probes, d)
}

// ProbeErrorHook is invoked once per failing probe, for metrics/logging.
type ProbeErrorHook func(probeName string, err error)

// Refresh runs every registered probe into a fresh, finalized Store. A
// probe that returns an error only skips its own rows (spec.md §7): the
// refresh continues with the remaining probes and always returns a usable
// store. Callers that care about a failing probe pass onError; Refresh
// itself does not log (the caller's logger is already level-gated).
func (r *Registry) Refresh(onError ProbeErrorHook) *store.Store {
	s := store.New()
	for _, d := range r.probes {
		if err := d.Run(s); err != nil {
			if onError != nil {
				onError(d.Name, err)
			}
		}
	}
	s.Finalize()
	return s
}

// Names returns the registered probe names in run order, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, len(r.probes))
	for i, d := range r.probes {
		names[i] = d.Name
	}
	return names
}
