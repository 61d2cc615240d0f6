package generator

import (
	"fmt"
	"strings"

	"girgen/internal/diag"
	"girgen/internal/model"
)

// refName renders a reference, verifying it resolves and recording the
// cross-namespace dependency. Unqualified rendering is used for names in
// the unit's own namespace.
func (g *Generator) refName(n model.Name) (string, error) {
	if _, ok := g.reg.Lookup(n); !ok {
		return "", diag.Malformedf("reference to unknown entity %s", n)
	}
	g.dep(n.Namespace)
	if n.Namespace == g.ns {
		return n.Local, nil
	}
	return n.String(), nil
}

// typeName renders a model type as a target type expression. The switch
// is exhaustive over the closed type variant.
func (g *Generator) typeName(t model.Type) (string, error) {
	switch v := t.(type) {
	case model.BasicType:
		return v.String(), nil
	case model.RefType:
		return g.refName(v.Name)
	case model.CArrayType:
		elem, err := g.typeName(v.Elem)
		if err != nil {
			return "", err
		}
		var attrs []string
		if v.ZeroTerminated {
			attrs = append(attrs, "zero-terminated")
		}
		if v.FixedSize >= 0 {
			attrs = append(attrs, fmt.Sprintf("fixed=%d", v.FixedSize))
		}
		if v.Length >= 0 {
			attrs = append(attrs, fmt.Sprintf("length=%d", v.Length))
		}
		if len(attrs) == 0 {
			return "carray " + elem, nil
		}
		return "carray(" + strings.Join(attrs, ",") + ") " + elem, nil
	case model.ArrayType:
		elem, err := g.typeName(v.Elem)
		if err != nil {
			return "", err
		}
		return "GArray " + elem, nil
	case model.PtrArrayType:
		elem, err := g.typeName(v.Elem)
		if err != nil {
			return "", err
		}
		return "GPtrArray " + elem, nil
	case model.ByteArrayType:
		return "GByteArray", nil
	case model.ListType:
		elem, err := g.typeName(v.Elem)
		if err != nil {
			return "", err
		}
		if v.Doubly {
			return "GList " + elem, nil
		}
		return "GSList " + elem, nil
	case model.HashType:
		key, err := g.typeName(v.Key)
		if err != nil {
			return "", err
		}
		value, err := g.typeName(v.Value)
		if err != nil {
			return "", err
		}
		return "GHashTable " + key + " " + value, nil
	case model.ErrorType:
		return "GError", nil
	case model.VariantType:
		return "GVariant", nil
	case model.ParamSpecType:
		return "GParamSpec", nil
	case model.ValueType:
		return "GValue", nil
	case model.ClosureType:
		if v.Callback == nil {
			return "GClosure", nil
		}
		cb, err := g.refName(*v.Callback)
		if err != nil {
			return "", err
		}
		return "GClosure " + cb, nil
	}
	return "", diag.Internalf("unknown type variant %T", t)
}

// argName renders one argument of a signature.
func (g *Generator) argName(a model.Arg) (string, error) {
	t, err := g.typeName(a.Type)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	switch a.Direction {
	case model.DirectionOut:
		b.WriteString("out ")
	case model.DirectionInOut:
		b.WriteString("inout ")
	}
	b.WriteString(a.Name)
	b.WriteString(": ")
	b.WriteString(t)
	if a.MayBeNull {
		b.WriteByte('?')
	}
	if a.Transfer != model.TransferNothing {
		b.WriteString(" [" + a.Transfer.String() + "]")
	}
	return b.String(), nil
}

// signature renders a full calling contract.
func (g *Generator) signature(c model.Callable) (string, error) {
	parts := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		s, err := g.argName(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	ret := "()"
	if c.ReturnType != nil {
		r, err := g.typeName(c.ReturnType)
		if err != nil {
			return "", err
		}
		ret = r
		if c.ReturnMayBeNull {
			ret += "?"
		}
		if c.ReturnTransfer != model.TransferNothing {
			ret += " [" + c.ReturnTransfer.String() + "]"
		}
	}
	sig := "(" + strings.Join(parts, ", ") + ") -> " + ret
	if c.Throws {
		sig += " throws"
	}
	return sig, nil
}
