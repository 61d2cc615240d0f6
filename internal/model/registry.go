package model

import (
	"sort"

	"girgen/internal/diag"
)

// Registry maps qualified names to entities across every loaded
// namespace. It is built in two phases: population, which may happen in
// any order, and a frozen read-only phase covering the whole traversal.
type Registry struct {
	entities map[Name]Entity
	frozen   bool
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[Name]Entity)}
}

// Put inserts an entity during the population phase. Inserting into a
// frozen registry is a generator defect, not an input problem.
func (r *Registry) Put(name Name, e Entity) error {
	if r.frozen {
		return diag.Internalf("insert of %s into frozen registry", name)
	}
	r.entities[name] = e
	return nil
}

// Lift inserts an entity that was declared embedded inside another one.
// Lifting is idempotent for the same entity, but a collision with a
// different entity under the same name means derived state is corrupt.
func (r *Registry) Lift(name Name, e Entity) error {
	if old, ok := r.entities[name]; ok {
		if old == e {
			return nil
		}
		return diag.Internalf("lifted entity %s collides with existing registry entry", name)
	}
	return r.Put(name, e)
}

// Freeze ends the population phase.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Lookup resolves a qualified name, reporting whether it is loaded.
func (r *Registry) Lookup(name Name) (Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Names lists every loaded name, sorted for deterministic traversal.
func (r *Registry) Names() []Name {
	out := make([]Name, 0, len(r.entities))
	for n := range r.entities {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Local < out[j].Local
	})
	return out
}

// Namespace lists the names declared in ns, sorted for deterministic
// traversal.
func (r *Registry) Namespace(ns string) []Name {
	var out []Name
	for n := range r.entities {
		if n.Namespace == ns {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Local < out[j].Local })
	return out
}
