package generator

import (
	"strings"
	"testing"

	"girgen/internal/config"
	"girgen/internal/model"
)

func name(ns, local string) model.Name {
	return model.Name{Namespace: ns, Local: local}
}

func put(t *testing.T, reg *model.Registry, n model.Name, e model.Entity) {
	t.Helper()
	if err := reg.Put(n, e); err != nil {
		t.Fatal(err)
	}
}

func findDecl(out *Output, prefix string) string {
	for _, d := range out.Decls {
		if strings.HasPrefix(strings.TrimSpace(d), prefix) {
			return d
		}
	}
	return ""
}

func TestEndToEndWidget(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "Printable"), &model.Interface{TypeInit: "demo_printable_get_type"})
	put(t, reg, name("Demo", "Widget"), &model.Object{
		TypeInit:   "demo_widget_get_type",
		Interfaces: []model.Name{name("Demo", "Printable")},
		Methods: []model.Method{
			{Name: "show", Type: model.OrdinaryMethod, Callable: model.Callable{}},
		},
	})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Diags) != 0 {
		t.Fatalf("diagnostics: %+v", out.Diags)
	}

	// Resolution order is exactly [Printable]: no ancestor.
	if d := findDecl(out, "class Widget : Printable {"); d == "" {
		t.Fatalf("widget head missing in %q", out.Decls)
	}
	// The normalized argument list is exactly the receiver.
	if d := findDecl(out, "method show :: (_obj: Widget) -> ()"); d == "" {
		t.Fatalf("normalized method missing in %q", out.Decls)
	}
	// A unit never depends on its own namespace.
	if len(out.Deps) != 0 {
		t.Fatalf("deps = %v, want none", out.Deps)
	}
}

func TestMalformedEntityDoesNotAbortSiblings(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "bad"), &model.Function{Callable: model.Callable{
		Args: []model.Arg{
			{Name: "data", Type: model.CArrayType{Elem: model.TUInt8, Length: 5}, Closure: -1, Destroy: -1},
		},
	}})
	put(t, reg, name("Demo", "good"), &model.Function{Callable: model.Callable{
		ReturnType: model.TBoolean,
	}})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Diags) != 1 || out.Diags[0].Name != name("Demo", "bad") {
		t.Fatalf("diags = %+v", out.Diags)
	}
	if d := findDecl(out, "function good"); d == "" {
		t.Fatalf("sibling not generated: %q", out.Decls)
	}
	if d := findDecl(out, "-- Demo.bad skipped:"); d == "" {
		t.Fatalf("placeholder missing: %q", out.Decls)
	}
}

func TestConstructorNarrowing(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("GObject", "Object"), &model.Object{TypeInit: "g_object_get_type"})
	put(t, reg, name("Demo", "Widget"), &model.Object{
		TypeInit: "demo_widget_get_type",
		Methods: []model.Method{
			{
				Name: "new",
				Type: model.Constructor,
				Callable: model.Callable{
					ReturnType: model.RefType{Name: name("GObject", "Object")},
				},
			},
		},
	})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if d := findDecl(out, "method new :: () -> Widget"); d == "" {
		t.Fatalf("constructor not narrowed: %q", out.Decls)
	}
	// The declared ancestor return was never rendered, so GObject is not
	// a dependency.
	if len(out.Deps) != 0 {
		t.Fatalf("deps = %v", out.Deps)
	}
}

func TestDependencyTracking(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Gtk", "Widget"), &model.Object{TypeInit: "gtk_widget_get_type"})
	put(t, reg, name("Demo", "steal"), &model.Function{Callable: model.Callable{
		Args: []model.Arg{
			{Name: "w", Type: model.RefType{Name: name("Gtk", "Widget")}, Closure: -1, Destroy: -1},
		},
	}})
	put(t, reg, name("Demo", "MAX"), &model.Constant{Type: model.TInt32, Value: "100"})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Deps) != 1 || out.Deps[0] != "Gtk" {
		t.Fatalf("deps = %v, want [Gtk]", out.Deps)
	}

	rendered, err := out.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rendered, "import Gtk\n") {
		t.Fatalf("import section missing:\n%s", rendered)
	}
	if !strings.HasPrefix(rendered, "-- Code generated for Demo-1.0.") {
		t.Fatalf("header missing:\n%s", rendered)
	}
}

func TestUnresolvableReference(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "lost"), &model.Function{Callable: model.Callable{
		ReturnType: model.RefType{Name: name("Demo", "Ghost")},
	}})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Diags) != 1 {
		t.Fatalf("diags = %+v", out.Diags)
	}
}

func TestDenyList(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("GLib", "List"), &model.Struct{})
	put(t, reg, name("GLib", "checksum"), &model.Function{Callable: model.Callable{}})

	cfg := config.New()
	cfg.Deny = append(cfg.Deny, "GLib.checksum")

	out, err := New(reg, cfg, "GLib", "2.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Decls) != 0 || len(out.Diags) != 0 {
		t.Fatalf("denied entities still emitted: %q %v", out.Decls, out.Diags)
	}
}

func TestUnsupportedEnumStorage(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "Big"), &model.Enumeration{
		StorageBytes:  8,
		StorageSigned: true,
		Members:       []model.EnumMember{{Name: "a", Value: 1}},
	})
	put(t, reg, name("Demo", "Small"), &model.Enumeration{
		StorageBytes:  4,
		StorageSigned: true,
		Members:       []model.EnumMember{{Name: "deep-blue", Value: 2}},
	})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Diags) != 1 || out.Diags[0].Name != name("Demo", "Big") {
		t.Fatalf("diags = %+v", out.Diags)
	}
	if d := findDecl(out, "enum Small {"); d == "" {
		t.Fatalf("32-bit enum missing: %q", out.Decls)
	}
	if d := findDecl(out, "DeepBlue = 2"); d == "" {
		t.Fatalf("member casing: %q", out.Decls)
	}
}

func TestLiftedCallbacksAreEmitted(t *testing.T) {
	cb := &model.Callback{Callable: model.Callable{}}
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "Buffer"), &model.Struct{
		Fields: []model.Field{
			{Name: "len", Type: model.TUInt64},
			{Name: "BufferFullFunc", Callback: cb},
		},
	})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if d := findDecl(out, "callback BufferFullFunc ::"); d == "" {
		t.Fatalf("lifted callback not emitted: %q", out.Decls)
	}
	if d := findDecl(out, "field BufferFullFunc :: BufferFullFunc"); d == "" {
		t.Fatalf("struct field not rendered: %q", out.Decls)
	}

	// Re-entering generation over the same registry lifts idempotently.
	out2, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(out2.Decls) != len(out.Decls) {
		t.Fatalf("runs differ: %d vs %d decls", len(out.Decls), len(out2.Decls))
	}
}

func TestNonDynamicObjectUnsupported(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "Plain"), &model.Object{})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Diags) != 1 || out.Diags[0].Name != name("Demo", "Plain") {
		t.Fatalf("diags = %+v", out.Diags)
	}
}

func TestBadMethodDoesNotHideSiblings(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "Widget"), &model.Object{
		TypeInit: "demo_widget_get_type",
		Methods: []model.Method{
			{Name: "broken", Type: model.OrdinaryMethod, Callable: model.Callable{
				Args: []model.Arg{
					{Name: "cb", Type: model.TPtr, Closure: 9, Destroy: -1},
				},
			}},
			{Name: "fine", Type: model.OrdinaryMethod, Callable: model.Callable{}},
		},
	})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Diags) != 1 || out.Diags[0].Name.Local != "Widget.broken" {
		t.Fatalf("diags = %+v", out.Diags)
	}
	if d := findDecl(out, "method fine ::"); d == "" {
		t.Fatalf("sibling method missing: %q", out.Decls)
	}
}

func TestSkipDeprecated(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "old"), &model.Function{Deprecated: true, Callable: model.Callable{}})
	put(t, reg, name("Demo", "Widget"), &model.Object{
		TypeInit: "demo_widget_get_type",
		Methods: []model.Method{
			{Name: "legacy", Type: model.OrdinaryMethod, Deprecated: true, Callable: model.Callable{}},
			{Name: "show", Type: model.OrdinaryMethod, Callable: model.Callable{}},
		},
	})

	cfg := config.New()
	cfg.Options.SkipDeprecated = true
	out, err := New(reg, cfg, "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	if d := findDecl(out, "function old"); d != "" {
		t.Fatalf("deprecated function emitted: %q", d)
	}
	if d := findDecl(out, "method legacy"); d != "" {
		t.Fatalf("deprecated method emitted: %q", d)
	}
	if d := findDecl(out, "method show ::"); d == "" {
		t.Fatalf("live method missing: %q", out.Decls)
	}
}

func TestTraversalOrder(t *testing.T) {
	reg := model.NewRegistry()
	put(t, reg, name("Demo", "Widget"), &model.Object{TypeInit: "w_get_type"})
	put(t, reg, name("Demo", "MAX"), &model.Constant{Type: model.TInt32, Value: "1"})
	put(t, reg, name("Demo", "Color"), &model.Enumeration{
		StorageBytes: 4, StorageSigned: true,
		Members: []model.EnumMember{{Name: "red", Value: 0}},
	})

	out, err := New(reg, config.New(), "Demo", "1.0").Run()
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(out.Decls, "\n")
	constAt := strings.Index(joined, "const MAX")
	enumAt := strings.Index(joined, "enum Color")
	classAt := strings.Index(joined, "class Widget")
	if constAt < 0 || enumAt < 0 || classAt < 0 {
		t.Fatalf("missing decls:\n%s", joined)
	}
	if !(constAt < enumAt && enumAt < classAt) {
		t.Fatalf("traversal order wrong:\n%s", joined)
	}
}
