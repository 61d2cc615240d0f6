package parser

import (
	"fmt"
	"strconv"

	"girgen/internal/diag"
	"girgen/internal/gir"
	"girgen/internal/model"
)

func parseConstant(ctx *Context, el *gir.Element) (*model.Constant, error) {
	t, err := queryType(ctx, el)
	if err != nil {
		return nil, err
	}
	return &model.Constant{Type: t, Value: el.Attr("value")}, nil
}

func parseFunction(ctx *Context, el *gir.Element) (*model.Function, error) {
	c, err := parseCallable(ctx, el)
	if err != nil {
		return nil, err
	}
	deprecated, err := boolAttr(el, "deprecated", false)
	if err != nil {
		return nil, err
	}
	return &model.Function{
		Symbol:     el.AttrC("identifier"),
		Callable:   c,
		Deprecated: deprecated,
	}, nil
}

// enumStorage derives the storage width and signedness of an
// enumeration from its declared C type. An absent declaration means the
// default C int.
func enumStorage(ctype string) (bytes int, signed bool) {
	switch ctype {
	case "", "int", "gint", "gint32":
		return 4, true
	case "unsigned", "unsigned int", "guint", "guint32":
		return 4, false
	case "gint16", "short":
		return 2, true
	case "guint16", "unsigned short":
		return 2, false
	case "gint64", "long", "glong":
		return 8, true
	case "guint64", "unsigned long", "gulong":
		return 8, false
	}
	return 4, true
}

func parseEnum(ctx *Context, el *gir.Element) (*model.Enumeration, error) {
	e := &model.Enumeration{
		ErrorDomain: el.AttrGLib("error-domain"),
		TypeInit:    el.AttrGLib("get-type"),
	}
	e.StorageBytes, e.StorageSigned = enumStorage(el.AttrC("type"))
	for _, m := range el.Children("member") {
		raw := m.Attr("value")
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, diag.Malformedf("member %s has non-integer value %q", m.Attr("name"), raw)
		}
		e.Members = append(e.Members, model.EnumMember{Name: m.Attr("name"), Value: v})
	}
	return e, nil
}

func parseFlags(ctx *Context, el *gir.Element) (*model.Flags, error) {
	e, err := parseEnum(ctx, el)
	if err != nil {
		return nil, err
	}
	return &model.Flags{Enumeration: *e}, nil
}

func parseCallback(ctx *Context, el *gir.Element) (*model.Callback, error) {
	c, err := parseCallable(ctx, el)
	if err != nil {
		return nil, err
	}
	return &model.Callback{Callable: c}, nil
}

// parseMethods collects the constructors, member functions and ordinary
// methods declared under el.
func parseMethods(ctx *Context, el *gir.Element) ([]model.Method, error) {
	kinds := []struct {
		element string
		mtype   model.MethodType
	}{
		{"constructor", model.Constructor},
		{"function", model.MemberFunction},
		{"method", model.OrdinaryMethod},
	}
	var out []model.Method
	for _, k := range kinds {
		for _, m := range el.Children(k.element) {
			c, err := parseCallable(ctx, m)
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", m.Attr("name"), err)
			}
			deprecated, err := boolAttr(m, "deprecated", false)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Method{
				Name:       m.Attr("name"),
				Symbol:     m.AttrC("identifier"),
				Type:       k.mtype,
				Callable:   c,
				Deprecated: deprecated,
			})
		}
	}
	return out, nil
}

func parseSignals(ctx *Context, el *gir.Element) ([]model.Signal, error) {
	var out []model.Signal
	for _, s := range el.Children("signal") {
		c, err := parseCallable(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("signal %s: %w", s.Attr("name"), err)
		}
		out = append(out, model.Signal{Name: s.Attr("name"), Callable: c})
	}
	return out, nil
}

// parseFields decodes the fields of a struct or union. A field declared
// as an inline callback keeps the parsed callback for lifting.
func parseFields(ctx *Context, el *gir.Element) ([]model.Field, error) {
	var out []model.Field
	for _, f := range el.Children("field") {
		if cb := f.Child("callback"); cb != nil {
			parsed, err := parseCallback(ctx, cb)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Attr("name"), err)
			}
			out = append(out, model.Field{Name: cb.Attr("name"), Callback: parsed})
			continue
		}
		t, err := queryType(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Attr("name"), err)
		}
		out = append(out, model.Field{Name: f.Attr("name"), Type: t})
	}
	return out, nil
}

func parseStruct(ctx *Context, el *gir.Element) (*model.Struct, error) {
	fields, err := parseFields(ctx, el)
	if err != nil {
		return nil, err
	}
	methods, err := parseMethods(ctx, el)
	if err != nil {
		return nil, err
	}
	typeInit := el.AttrGLib("get-type")
	return &model.Struct{
		Fields:   fields,
		Methods:  methods,
		IsBoxed:  typeInit != "",
		TypeInit: typeInit,
	}, nil
}

func parseUnion(ctx *Context, el *gir.Element) (*model.Union, error) {
	fields, err := parseFields(ctx, el)
	if err != nil {
		return nil, err
	}
	methods, err := parseMethods(ctx, el)
	if err != nil {
		return nil, err
	}
	return &model.Union{
		Fields:   fields,
		Methods:  methods,
		TypeInit: el.AttrGLib("get-type"),
	}, nil
}

func parseObject(ctx *Context, el *gir.Element) (*model.Object, error) {
	o := &model.Object{TypeInit: el.AttrGLib("get-type")}
	if parent, ok := el.LookupAttr("parent"); ok {
		qn := model.ParseName(ctx.Namespace, parent)
		o.Parent = &qn
	}
	for _, impl := range el.Children("implements") {
		o.Interfaces = append(o.Interfaces, model.ParseName(ctx.Namespace, impl.Attr("name")))
	}
	var err error
	if o.Methods, err = parseMethods(ctx, el); err != nil {
		return nil, err
	}
	if o.Signals, err = parseSignals(ctx, el); err != nil {
		return nil, err
	}
	return o, nil
}

func parseInterface(ctx *Context, el *gir.Element) (*model.Interface, error) {
	i := &model.Interface{TypeInit: el.AttrGLib("get-type")}
	for _, pre := range el.Children("prerequisite") {
		i.Prerequisites = append(i.Prerequisites, model.ParseName(ctx.Namespace, pre.Attr("name")))
	}
	var err error
	if i.Methods, err = parseMethods(ctx, el); err != nil {
		return nil, err
	}
	if i.Signals, err = parseSignals(ctx, el); err != nil {
		return nil, err
	}
	return i, nil
}

func parseBoxed(ctx *Context, el *gir.Element) (*model.Boxed, error) {
	return &model.Boxed{TypeInit: el.AttrGLib("get-type")}, nil
}
