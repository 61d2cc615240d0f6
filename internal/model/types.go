// Package model defines the typed intermediate representation of an
// introspected API surface: types, entities, callables, and the registry
// keyed by qualified name.
package model

import (
	"strings"

	"girgen/internal/diag"
)

// Name identifies an entity uniquely within the loaded namespaces.
type Name struct {
	Namespace string
	Local     string
}

func (n Name) String() string {
	if n.Namespace == "" {
		return n.Local
	}
	return n.Namespace + "." + n.Local
}

// ParseName resolves a raw schema name against the current namespace. An
// explicit "Namespace.name" form always resolves against that literal
// namespace; a bare name resolves against cur.
func ParseName(cur, raw string) Name {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return Name{Namespace: raw[:i], Local: raw[i+1:]}
	}
	return Name{Namespace: cur, Local: raw}
}

// BasicType is one of the fixed primitive kinds.
type BasicType int

const (
	TBoolean BasicType = iota
	TInt8
	TUInt8
	TInt16
	TUInt16
	TInt32
	TUInt32
	TInt64
	TUInt64
	TFloat
	TDouble
	TPtr
	TUTF8
	TFileName
	TUniChar
	TGType
)

var basicNames = map[BasicType]string{
	TBoolean:  "gboolean",
	TInt8:     "gint8",
	TUInt8:    "guint8",
	TInt16:    "gint16",
	TUInt16:   "guint16",
	TInt32:    "gint32",
	TUInt32:   "guint32",
	TInt64:    "gint64",
	TUInt64:   "guint64",
	TFloat:    "gfloat",
	TDouble:   "gdouble",
	TPtr:      "gpointer",
	TUTF8:     "utf8",
	TFileName: "filename",
	TUniChar:  "gunichar",
	TGType:    "GType",
}

func (b BasicType) String() string { return basicNames[b] }

// Type is the closed variant over everything a schema type can resolve
// to. Every implementation lives in this package; consumers dispatch with
// a type switch.
type Type interface {
	girType()
}

func (BasicType) girType() {}

// RefType references another named entity. Resolution is deferred to the
// first registry lookup, allowing forward references across namespaces.
type RefType struct {
	Name Name
}

func (RefType) girType() {}

// CArrayType is a C-level array. Length is the index of the sibling
// argument holding the element count, or -1 when not length-tracked.
type CArrayType struct {
	Elem           Type
	ZeroTerminated bool
	FixedSize      int
	Length         int
}

func (CArrayType) girType() {}

// ArrayType is a managed GArray.
type ArrayType struct{ Elem Type }

func (ArrayType) girType() {}

// PtrArrayType is a managed GPtrArray.
type PtrArrayType struct{ Elem Type }

func (PtrArrayType) girType() {}

// ByteArrayType is a managed GByteArray.
type ByteArrayType struct{}

func (ByteArrayType) girType() {}

// ListType is a managed linked list; Doubly distinguishes GList from
// GSList.
type ListType struct {
	Elem   Type
	Doubly bool
}

func (ListType) girType() {}

// HashType is a managed hash table.
type HashType struct {
	Key   Type
	Value Type
}

func (HashType) girType() {}

// ErrorType is the recoverable domain-error carrier.
type ErrorType struct{}

func (ErrorType) girType() {}

// VariantType is the tagged-union value container.
type VariantType struct{}

func (VariantType) girType() {}

// ParamSpecType is the dynamic-property-specification carrier.
type ParamSpecType struct{}

func (ParamSpecType) girType() {}

// ValueType is the generic boxed value container.
type ValueType struct{}

func (ValueType) girType() {}

// ClosureType is a callback-closure container, optionally carrying the
// declared callback type.
type ClosureType struct {
	Callback *Name
}

func (ClosureType) girType() {}

// primitives maps the textual names appearing in schemas to basic types.
// Platform-dependent aliases are not here; they go through FromAlias.
var primitives = map[string]BasicType{
	"gboolean":  TBoolean,
	"gchar":     TInt8,
	"gint8":     TInt8,
	"guchar":    TUInt8,
	"guint8":    TUInt8,
	"gint16":    TInt16,
	"guint16":   TUInt16,
	"gint32":    TInt32,
	"guint32":   TUInt32,
	"gint64":    TInt64,
	"guint64":   TUInt64,
	"gfloat":    TFloat,
	"gdouble":   TDouble,
	"gpointer":  TPtr,
	"utf8":      TUTF8,
	"filename":  TFileName,
	"gunichar":  TUniChar,
	"GType":     TGType,
	"GLib.Type": TGType,
}

// Primitive looks a textual name up in the fixed primitive table. A miss
// is not an error; the name falls through to alias or reference
// resolution.
func Primitive(name string) (BasicType, bool) {
	b, ok := primitives[name]
	return b, ok
}

// FromAlias maps a platform-dependent integer alias of the given measured
// width to the concrete fixed-width basic type. Widths outside {2,4,8}
// bytes are rejected rather than truncated.
func FromAlias(name string, bytes int, signed bool) (BasicType, error) {
	switch bytes {
	case 2:
		if signed {
			return TInt16, nil
		}
		return TUInt16, nil
	case 4:
		if signed {
			return TInt32, nil
		}
		return TUInt32, nil
	case 8:
		if signed {
			return TInt64, nil
		}
		return TUInt64, nil
	}
	return 0, diag.Unsupportedf("integer alias %s has width %d bytes, want 2, 4 or 8", name, bytes)
}
