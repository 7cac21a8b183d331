package engine

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/config"
)

// Entry pairs a simulation's parameter schema with its factory.
type Entry struct {
	Config config.SimConfig
	New    func() Simulation
}

// Registry maps slugs to simulation entries. Hosts look up by the same slug
// the external configuration uses ("three-body-problem", "gas-laws", ...).
type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

func (r *Registry) Register(e Entry) {
	r.entries[e.Config.Slug] = e
}

func (r *Registry) Lookup(slug string) (Entry, error) {
	e, ok := r.entries[slug]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownSim, slug)
	}
	return e, nil
}

// List returns the registered slugs in sorted order.
func (r *Registry) List() []string {
	slugs := make([]string, 0, len(r.entries))
	for slug := range r.entries {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
