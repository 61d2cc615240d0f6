// Package generator walks a frozen API model in a fixed traversal order
// and assembles the output unit. Failures of a single entity are caught
// at its boundary and recorded as placeholders; only internal
// inconsistencies abort the run.
package generator

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"girgen/internal/config"
	"girgen/internal/diag"
	"girgen/internal/model"
)

// denied is the fixed set of entities the target runtime supplies
// natively. They are excluded from traversal wherever they appear.
var denied = map[string]bool{
	"GLib.List":         true,
	"GLib.SList":        true,
	"GLib.HashTable":    true,
	"GLib.Error":        true,
	"GLib.Variant":      true,
	"GLib.Array":        true,
	"GLib.PtrArray":     true,
	"GLib.ByteArray":    true,
	"GObject.Value":     true,
	"GObject.Closure":   true,
	"GObject.ParamSpec": true,
}

// Diagnostic records one entity that failed to generate.
type Diagnostic struct {
	Name model.Name
	Err  error
}

// Output is the assembled unit for one namespace.
type Output struct {
	Namespace string
	Version   string
	Deps      []string
	Decls     []string
	Diags     []Diagnostic
}

var headerTmpl = template.Must(template.New("header").Parse(
	`-- Code generated for {{.Namespace}}-{{.Version}}. DO NOT EDIT.
{{- range .Deps}}
import {{.}}
{{- end}}
`))

// Render assembles the final unit: header and import section first, then
// the generated declarations.
func (o *Output) Render() (string, error) {
	var b strings.Builder
	if err := headerTmpl.Execute(&b, o); err != nil {
		return "", fmt.Errorf("rendering header: %w", err)
	}
	for _, d := range o.Decls {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Generator drives emission for one namespace.
type Generator struct {
	reg     *model.Registry
	cfg     *config.Config
	ns      string
	version string
	deps    map[string]bool
	out     *Output
}

// New prepares a generator over an unfrozen registry. The registry is
// frozen by Run before traversal starts.
func New(reg *model.Registry, cfg *config.Config, ns, version string) *Generator {
	return &Generator{
		reg:     reg,
		cfg:     cfg,
		ns:      ns,
		version: version,
		deps:    make(map[string]bool),
	}
}

func (g *Generator) isDenied(n model.Name) bool {
	return denied[n.String()] || g.cfg.Denied(n.String())
}

// dep records that emission touched a foreign namespace. The unit never
// depends on its own namespace.
func (g *Generator) dep(ns string) {
	if ns != g.ns && ns != "" {
		g.deps[ns] = true
	}
}

// liftEmbedded inserts callbacks declared inline in struct and union
// bodies under their own qualified names. Lifting the same declaration
// again is a no-op; a genuine collision aborts the run.
func liftEmbedded(reg *model.Registry) error {
	for _, n := range reg.Names() {
		e, _ := reg.Lookup(n)
		var fields []model.Field
		switch v := e.(type) {
		case *model.Struct:
			fields = v.Fields
		case *model.Union:
			fields = v.Fields
		default:
			continue
		}
		for _, f := range fields {
			if f.Callback == nil {
				continue
			}
			lifted := model.Name{Namespace: n.Namespace, Local: f.Name}
			if err := reg.Lift(lifted, f.Callback); err != nil {
				return err
			}
		}
	}
	return nil
}

// kindOrder gives the fixed traversal order over entity kinds.
var kindOrder = []func(model.Entity) bool{
	func(e model.Entity) bool { _, ok := e.(*model.Constant); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Function); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Enumeration); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Flags); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Callback); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Struct); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Union); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Object); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Interface); return ok },
	func(e model.Entity) bool { _, ok := e.(*model.Boxed); return ok },
}

// Run lifts embedded declarations, freezes the registry, and emits every
// entity of the generator's namespace. The returned error is non-nil
// only for internal inconsistencies; input problems end up in the
// output's diagnostics.
func (g *Generator) Run() (*Output, error) {
	if err := liftEmbedded(g.reg); err != nil {
		return nil, err
	}
	g.reg.Freeze()
	g.out = &Output{Namespace: g.ns, Version: g.version}

	names := g.reg.Namespace(g.ns)
	for _, matches := range kindOrder {
		for _, n := range names {
			e, _ := g.reg.Lookup(n)
			if !matches(e) || g.isDenied(n) {
				continue
			}
			if f, ok := e.(*model.Function); ok && f.Deprecated && g.cfg.Options.SkipDeprecated {
				continue
			}
			if err := g.emit(n, e); err != nil {
				return nil, err
			}
		}
	}

	g.out.Deps = make([]string, 0, len(g.deps))
	for d := range g.deps {
		g.out.Deps = append(g.out.Deps, d)
	}
	sort.Strings(g.out.Deps)
	return g.out, nil
}

// emit generates one entity under its local failure boundary.
func (g *Generator) emit(n model.Name, e model.Entity) error {
	lines, err := g.genEntity(n, e)
	if err != nil {
		if !diag.Recoverable(err) {
			return err
		}
		g.out.Diags = append(g.out.Diags, Diagnostic{Name: n, Err: err})
		g.out.Decls = append(g.out.Decls, placeholder(n, err))
		return nil
	}
	g.out.Decls = append(g.out.Decls, lines...)
	return nil
}

func placeholder(n model.Name, err error) string {
	return fmt.Sprintf("-- %s skipped: %v", n, err)
}

// genEntity dispatches on the entity kind. The switch is exhaustive over
// the closed variant.
func (g *Generator) genEntity(n model.Name, e model.Entity) ([]string, error) {
	switch v := e.(type) {
	case *model.Constant:
		return g.genConstant(n, v)
	case *model.Function:
		return g.genFunction(n, v)
	case *model.Enumeration:
		return g.genEnum(n, v, "enum")
	case *model.Flags:
		return g.genEnum(n, &v.Enumeration, "flags")
	case *model.Callback:
		return g.genCallback(n, v)
	case *model.Struct:
		return g.genStruct(n, v)
	case *model.Union:
		return g.genUnion(n, v)
	case *model.Object:
		return g.genObject(n, v)
	case *model.Interface:
		return g.genInterface(n, v)
	case *model.Boxed:
		// Opaque: registration only, nothing to declare.
		return nil, nil
	}
	return nil, diag.Internalf("unknown entity kind for %s", n)
}
