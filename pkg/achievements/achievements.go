// Package achievements holds the static table of one-time milestones.
package achievements

import (
	"fmt"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// Condition is a pure predicate over cumulative stats.
type Condition func(stats entities.UserStats) bool

// Definition is one unlockable milestone.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	XPReward    int64
	Condition   Condition
}

// Met reports whether stats satisfy the definition.
func (d Definition) Met(stats entities.UserStats) bool {
	return d.Condition != nil && d.Condition(stats)
}

// Registry is an ordered, read-only set of definitions.
type Registry struct {
	defs []Definition
	byID map[string]int
}

// NewRegistry validates defs and keeps their order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs: make([]Definition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("achievement %q: empty id", d.Title)
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("achievement %q: duplicate id", d.ID)
		}
		if d.XPReward < 0 {
			return nil, fmt.Errorf("achievement %q: negative xp reward", d.ID)
		}
		if d.Condition == nil {
			return nil, fmt.Errorf("achievement %q: missing condition", d.ID)
		}
		r.byID[d.ID] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// Default returns the built-in achievement table.
func Default() *Registry {
	r, err := NewRegistry(builtin...)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the definitions in registry order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Get looks up a definition by id.
func (r *Registry) Get(id string) (Definition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Len is the number of definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Evaluate returns, in registry order, every definition not yet unlocked
// whose condition holds for stats.
func (r *Registry) Evaluate(stats entities.UserStats, unlocked func(id string) bool) []Definition {
	var out []Definition
	for _, d := range r.defs {
		if unlocked(d.ID) {
			continue
		}
		if d.Met(stats) {
			out = append(out, d)
		}
	}
	return out
}
