// Package graph derives the inheritance and capability relations of a
// frozen API model: effective interface sets, resolution order for casts
// and overloads, and object-likeness of interfaces.
package graph

import (
	"girgen/internal/diag"
	"girgen/internal/model"
)

// Hierarchy is the derived cast/overload information of one object-like
// entity. It is computed on demand, never written back into the model.
type Hierarchy struct {
	Parent     *model.Name
	Interfaces []model.Name
	// Resolution is the order ancestors are tried in: parent first,
	// then the deduplicated interfaces in declaration order.
	Resolution []model.Name
}

// ObjectLike reports whether the entity behind name is backed by the
// dynamic-type mechanism. This is a registry query, not a name check:
// objects qualify through their type registration, interfaces through
// their own registration or any object-like prerequisite.
func ObjectLike(reg *model.Registry, name model.Name) bool {
	return objectLike(reg, name, map[model.Name]bool{})
}

func objectLike(reg *model.Registry, name model.Name, seen map[model.Name]bool) bool {
	if seen[name] {
		return false
	}
	seen[name] = true
	e, ok := reg.Lookup(name)
	if !ok {
		return false
	}
	switch v := e.(type) {
	case *model.Object:
		return v.TypeInit != ""
	case *model.Interface:
		if v.TypeInit != "" {
			return true
		}
		for _, pre := range v.Prerequisites {
			if objectLike(reg, pre, seen) {
				return true
			}
		}
		return false
	}
	return false
}

// ObjectHierarchy computes the effective relations of one object: its
// single ancestor, its declared interfaces minus those the ancestor
// already provides, and the resolution order.
func ObjectHierarchy(reg *model.Registry, name model.Name, obj *model.Object) (Hierarchy, error) {
	var h Hierarchy

	parentIfaces := map[model.Name]bool{}
	if obj.Parent != nil {
		pe, ok := reg.Lookup(*obj.Parent)
		if !ok {
			return h, diag.Malformedf("object %s has unresolvable parent %s", name, *obj.Parent)
		}
		po, ok := pe.(*model.Object)
		if !ok {
			return h, diag.Malformedf("object %s has non-object parent %s", name, *obj.Parent)
		}
		h.Parent = obj.Parent
		h.Resolution = append(h.Resolution, *obj.Parent)
		for _, i := range po.Interfaces {
			parentIfaces[i] = true
		}
	}
	for _, i := range obj.Interfaces {
		if parentIfaces[i] {
			continue
		}
		h.Interfaces = append(h.Interfaces, i)
		h.Resolution = append(h.Resolution, i)
	}
	return h, nil
}

// InterfaceHierarchy computes the cast relations of one interface. An
// object-like interface participates in the cast graph like an object,
// with its object-like prerequisites as the ancestor set; any other
// interface is a bare capability marker with no cast support.
func InterfaceHierarchy(reg *model.Registry, name model.Name, iface *model.Interface) (Hierarchy, error) {
	var h Hierarchy
	if !ObjectLike(reg, name) {
		return h, nil
	}
	for _, pre := range iface.Prerequisites {
		if ObjectLike(reg, pre) {
			h.Resolution = append(h.Resolution, pre)
		}
	}
	if len(h.Resolution) > 0 {
		p := h.Resolution[0]
		h.Parent = &p
	}
	if len(h.Resolution) > 1 {
		// The single-ancestor slot has no defined tie-break when several
		// prerequisites are object-like; refuse to guess.
		return h, diag.Unsupportedf("interface %s has %d object-like prerequisites", name, len(h.Resolution))
	}
	return h, nil
}
