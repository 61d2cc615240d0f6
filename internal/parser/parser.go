// Package parser turns schema elements into API model values. All name
// resolution happens against an explicit Context so that parsing stays
// deterministic and testable in isolation.
package parser

import (
	"fmt"
	"strconv"

	"girgen/internal/diag"
	"girgen/internal/gir"
	"girgen/internal/model"
	"girgen/internal/platform"
)

// Context carries the loaded repositories and the namespace that bare
// names resolve against.
type Context struct {
	Namespace string
	Repos     map[string]*gir.Repository
}

// WithNamespace returns a copy of ctx resolving bare names against ns.
func (c *Context) WithNamespace(ns string) *Context {
	return &Context{Namespace: ns, Repos: c.Repos}
}

// containerParser decodes one of the well-known managed container kinds.
type containerParser func(ctx *Context, el *gir.Element) (model.Type, error)

// containers keys the managed list/hash/closure kinds by their fixed
// qualified names. Populated in init to avoid an initialization cycle
// through parseTypeElement.
var containers map[model.Name]containerParser

func init() {
	containers = map[model.Name]containerParser{
		{Namespace: "GLib", Local: "List"}:         parseList(true),
		{Namespace: "GLib", Local: "SList"}:        parseList(false),
		{Namespace: "GLib", Local: "HashTable"}:    parseHashTable,
		{Namespace: "GLib", Local: "Error"}:        parseFixed(model.ErrorType{}),
		{Namespace: "GLib", Local: "Variant"}:      parseFixed(model.VariantType{}),
		{Namespace: "GObject", Local: "ParamSpec"}: parseFixed(model.ParamSpecType{}),
		{Namespace: "GObject", Local: "Value"}:     parseFixed(model.ValueType{}),
		{Namespace: "GObject", Local: "Closure"}:   parseClosure,
	}
}

// typeChildren returns the type-describing children of el in document
// order.
func typeChildren(el *gir.Element) []*gir.Element {
	var out []*gir.Element
	for _, c := range el.Nodes {
		if c.Name == "type" || c.Name == "array" {
			out = append(out, c)
		}
	}
	return out
}

// parseTypeElement decodes one <type> or <array> element.
func parseTypeElement(ctx *Context, el *gir.Element) (model.Type, error) {
	if el.Name == "array" {
		return parseArray(ctx, el)
	}
	name, ok := el.LookupAttr("name")
	if !ok {
		return nil, diag.Malformedf("type element without name attribute")
	}
	if name == "none" {
		return nil, diag.Malformedf(`"none" used where a concrete type is required`)
	}
	if b, ok := model.Primitive(name); ok {
		return b, nil
	}
	if a, ok := platform.Lookup(name); ok {
		return model.FromAlias(name, a.Bytes, a.Signed)
	}
	qn := model.ParseName(ctx.Namespace, name)
	if cp, ok := containers[qn]; ok {
		return cp(ctx, el)
	}
	return model.RefType{Name: qn}, nil
}

// queryType finds the single required type child of el. Zero or more
// than one type-describing children, or the "none" sentinel, are
// malformed here.
func queryType(ctx *Context, el *gir.Element) (model.Type, error) {
	kids := typeChildren(el)
	if len(kids) != 1 {
		return nil, diag.Malformedf("expected exactly one type element, found %d", len(kids))
	}
	return parseTypeElement(ctx, kids[0])
}

// queryOptionalType finds the type child of el in a context where a type
// may be genuinely absent. No child, or a single child named "none",
// yields a nil type without error.
func queryOptionalType(ctx *Context, el *gir.Element) (model.Type, error) {
	kids := typeChildren(el)
	switch len(kids) {
	case 0:
		return nil, nil
	case 1:
		if kids[0].Name == "type" && kids[0].Attr("name") == "none" {
			return nil, nil
		}
		return parseTypeElement(ctx, kids[0])
	}
	return nil, diag.Malformedf("expected at most one type element, found %d", len(kids))
}

// parseList decodes the managed linked-list kinds. An absent element
// type defaults to the opaque pointer.
func parseList(doubly bool) containerParser {
	return func(ctx *Context, el *gir.Element) (model.Type, error) {
		elem, err := nestedElem(ctx, el)
		if err != nil {
			return nil, err
		}
		return model.ListType{Elem: elem, Doubly: doubly}, nil
	}
}

// nestedElem parses the optional single nested element type of a
// container, defaulting to the opaque pointer. "none" never names a real
// element type.
func nestedElem(ctx *Context, el *gir.Element) (model.Type, error) {
	kids := typeChildren(el)
	switch len(kids) {
	case 0:
		return model.TPtr, nil
	case 1:
		return parseTypeElement(ctx, kids[0])
	}
	return nil, diag.Malformedf("container with %d element types, want 0 or 1", len(kids))
}

// parseHashTable requires zero or exactly two nested type elements.
func parseHashTable(ctx *Context, el *gir.Element) (model.Type, error) {
	kids := typeChildren(el)
	switch len(kids) {
	case 0:
		return model.HashType{Key: model.TPtr, Value: model.TPtr}, nil
	case 2:
		key, err := parseTypeElement(ctx, kids[0])
		if err != nil {
			return nil, err
		}
		value, err := parseTypeElement(ctx, kids[1])
		if err != nil {
			return nil, err
		}
		return model.HashType{Key: key, Value: value}, nil
	}
	return nil, diag.Malformedf("hash table with %d element types, want 0 or 2", len(kids))
}

func parseFixed(t model.Type) containerParser {
	return func(*Context, *gir.Element) (model.Type, error) { return t, nil }
}

// parseClosure decodes a callback-closure container; the declared
// callback type is optional.
func parseClosure(ctx *Context, el *gir.Element) (model.Type, error) {
	if cb, ok := el.LookupAttr("type"); ok {
		qn := model.ParseName(ctx.Namespace, cb)
		return model.ClosureType{Callback: &qn}, nil
	}
	return model.ClosureType{}, nil
}

// managedArrays maps the declared array names that select a managed kind
// instead of a C array.
var managedArrays = map[model.Name]bool{
	{Namespace: "GLib", Local: "Array"}:     true,
	{Namespace: "GLib", Local: "PtrArray"}:  true,
	{Namespace: "GLib", Local: "ByteArray"}: true,
}

// parseArray decodes an <array> element: one of the three managed kinds
// when declared by name, a C array otherwise.
func parseArray(ctx *Context, el *gir.Element) (model.Type, error) {
	if name, ok := el.LookupAttr("name"); ok {
		qn := model.ParseName(ctx.Namespace, name)
		if managedArrays[qn] {
			switch qn.Local {
			case "ByteArray":
				return model.ByteArrayType{}, nil
			case "PtrArray":
				elem, err := nestedElem(ctx, el)
				if err != nil {
					return nil, err
				}
				return model.PtrArrayType{Elem: elem}, nil
			default:
				elem, err := nestedElem(ctx, el)
				if err != nil {
					return nil, err
				}
				return model.ArrayType{Elem: elem}, nil
			}
		}
	}
	zeroTerminated, err := boolAttr(el, "zero-terminated", true)
	if err != nil {
		return nil, err
	}
	length, err := intAttr(el, "length", -1)
	if err != nil {
		return nil, err
	}
	fixedSize, err := intAttr(el, "fixed-size", -1)
	if err != nil {
		return nil, err
	}
	elem, err := queryType(ctx, el)
	if err != nil {
		return nil, fmt.Errorf("array element type: %w", err)
	}
	return model.CArrayType{
		Elem:           elem,
		ZeroTerminated: zeroTerminated,
		FixedSize:      fixedSize,
		Length:         length,
	}, nil
}

func boolAttr(el *gir.Element, name string, def bool) (bool, error) {
	v, ok := el.LookupAttr(name)
	if !ok {
		return def, nil
	}
	switch v {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, diag.Malformedf("attribute %s has non-boolean value %q", name, v)
}

func intAttr(el *gir.Element, name string, def int) (int, error) {
	v, ok := el.LookupAttr(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, diag.Malformedf("attribute %s has non-integer value %q", name, v)
	}
	return n, nil
}
