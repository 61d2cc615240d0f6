package generator

import (
	"fmt"

	"girgen/internal/diag"
	"girgen/internal/graph"
	"girgen/internal/model"
)

func (g *Generator) genConstant(n model.Name, c *model.Constant) ([]string, error) {
	t, err := g.typeName(c.Type)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("const %s :: %s = %s", n.Local, t, c.Value)}, nil
}

func (g *Generator) genFunction(n model.Name, f *model.Function) ([]string, error) {
	if err := model.ValidateIndices(f.Callable); err != nil {
		return nil, err
	}
	sig, err := g.signature(f.Callable)
	if err != nil {
		return nil, err
	}
	line := fmt.Sprintf("function %s :: %s", camelCase(n.Local), sig)
	if f.Symbol != "" {
		line += " -- " + f.Symbol
	}
	return []string{line}, nil
}

func (g *Generator) genEnum(n model.Name, e *model.Enumeration, kind string) ([]string, error) {
	if e.StorageBytes != 4 {
		return nil, diag.Unsupportedf("%s %s has %d-byte storage, only 32-bit supported", kind, n, e.StorageBytes*8)
	}
	lines := []string{fmt.Sprintf("%s %s {", kind, n.Local)}
	for _, m := range e.Members {
		lines = append(lines, fmt.Sprintf("  %s = %d", pascalCase(m.Name), m.Value))
	}
	if e.ErrorDomain != "" {
		lines = append(lines, fmt.Sprintf("  -- error domain %q", e.ErrorDomain))
	}
	lines = append(lines, "}")
	return lines, nil
}

func (g *Generator) genCallback(n model.Name, c *model.Callback) ([]string, error) {
	if err := model.ValidateIndices(c.Callable); err != nil {
		return nil, err
	}
	sig, err := g.signature(c.Callable)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("callback %s :: %s", n.Local, sig)}, nil
}

// genMethod adapts and renders one attached callable. Receiver
// prepending happens before any index-sensitive logic runs.
func (g *Generator) genMethod(owner model.Name, m model.Method, instantiable bool) (string, error) {
	c := m.Callable
	switch m.Type {
	case model.OrdinaryMethod:
		c = model.AddImplicitReceiver(owner, c)
	case model.Constructor:
		c = model.NarrowConstructorReturn(owner, c, instantiable)
	}
	if err := model.ValidateIndices(c); err != nil {
		return "", err
	}
	sig, err := g.signature(c)
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf("  method %s :: %s", camelCase(m.Name), sig)
	if m.Symbol != "" {
		line += " -- " + m.Symbol
	}
	return line, nil
}

// methodLines renders the attached callables of owner, each under its
// own failure boundary so one bad method never hides its siblings.
func (g *Generator) methodLines(owner model.Name, methods []model.Method, instantiable bool) ([]string, error) {
	var lines []string
	for _, m := range methods {
		if m.Deprecated && g.cfg.Options.SkipDeprecated {
			continue
		}
		line, err := g.genMethod(owner, m, instantiable)
		if err != nil {
			if !diag.Recoverable(err) {
				return nil, err
			}
			mn := model.Name{Namespace: owner.Namespace, Local: owner.Local + "." + m.Name}
			g.out.Diags = append(g.out.Diags, Diagnostic{Name: mn, Err: err})
			lines = append(lines, "  "+placeholder(mn, err))
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (g *Generator) signalLines(owner model.Name, signals []model.Signal) ([]string, error) {
	var lines []string
	for _, s := range signals {
		err := model.ValidateIndices(s.Callable)
		var sig string
		if err == nil {
			sig, err = g.signature(s.Callable)
		}
		if err != nil {
			if !diag.Recoverable(err) {
				return nil, err
			}
			sn := model.Name{Namespace: owner.Namespace, Local: owner.Local + "::" + s.Name}
			g.out.Diags = append(g.out.Diags, Diagnostic{Name: sn, Err: err})
			lines = append(lines, "  "+placeholder(sn, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("  signal %s :: %s", s.Name, sig))
	}
	return lines, nil
}

func (g *Generator) genStruct(n model.Name, s *model.Struct) ([]string, error) {
	head := "struct " + n.Local
	if s.IsBoxed {
		head += " (boxed)"
	}
	lines := []string{head + " {"}
	for _, f := range s.Fields {
		if f.Callback != nil {
			// Lifted before traversal; the field keeps a reference.
			ref, err := g.refName(model.Name{Namespace: n.Namespace, Local: f.Name})
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("  field %s :: %s", f.Name, ref))
			continue
		}
		t, err := g.typeName(f.Type)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("  field %s :: %s", f.Name, t))
	}
	ms, err := g.methodLines(n, s.Methods, false)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ms...)
	lines = append(lines, "}")
	return lines, nil
}

func (g *Generator) genUnion(n model.Name, u *model.Union) ([]string, error) {
	lines := []string{"union " + n.Local + " {"}
	for _, f := range u.Fields {
		if f.Callback != nil {
			ref, err := g.refName(model.Name{Namespace: n.Namespace, Local: f.Name})
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("  field %s :: %s", f.Name, ref))
			continue
		}
		t, err := g.typeName(f.Type)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("  field %s :: %s", f.Name, t))
	}
	ms, err := g.methodLines(n, u.Methods, false)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ms...)
	lines = append(lines, "}")
	return lines, nil
}

func (g *Generator) genObject(n model.Name, o *model.Object) ([]string, error) {
	if o.TypeInit == "" {
		return nil, diag.Unsupportedf("object %s is not registered with the dynamic type system", n)
	}
	h, err := graph.ObjectHierarchy(g.reg, n, o)
	if err != nil {
		return nil, err
	}
	head := "class " + n.Local
	if len(h.Resolution) > 0 {
		var rendered []string
		for _, a := range h.Resolution {
			ref, err := g.refName(a)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, ref)
		}
		head += " : " + joinComma(rendered)
	}
	lines := []string{head + " {"}
	ms, err := g.methodLines(n, o.Methods, true)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ms...)
	ss, err := g.signalLines(n, o.Signals)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ss...)
	lines = append(lines, "}")
	return lines, nil
}

func (g *Generator) genInterface(n model.Name, i *model.Interface) ([]string, error) {
	h, err := graph.InterfaceHierarchy(g.reg, n, i)
	if err != nil {
		return nil, err
	}
	kind := "capability"
	if graph.ObjectLike(g.reg, n) {
		kind = "interface"
	}
	head := kind + " " + n.Local
	if len(h.Resolution) > 0 {
		var rendered []string
		for _, a := range h.Resolution {
			ref, err := g.refName(a)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, ref)
		}
		head += " : " + joinComma(rendered)
	}
	lines := []string{head + " {"}
	ms, err := g.methodLines(n, i.Methods, false)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ms...)
	ss, err := g.signalLines(n, i.Signals)
	if err != nil {
		return nil, err
	}
	lines = append(lines, ss...)
	lines = append(lines, "}")
	return lines, nil
}
