package gir

import (
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0"?>
<repository version="1.2"
    xmlns="http://www.gtk.org/introspection/core/1.0"
    xmlns:c="http://www.gtk.org/introspection/c/1.0"
    xmlns:glib="http://www.gtk.org/introspection/glib/1.0">
  <include name="GLib" version="2.0"/>
  <include name="GObject" version="2.0"/>
  <namespace name="Demo" version="1.0">
    <class name="Widget" parent="GObject.Object" glib:get-type="demo_widget_get_type">
      <method name="show" c:identifier="demo_widget_show">
        <return-value><type name="none"/></return-value>
      </method>
    </class>
  </namespace>
</repository>`

func TestLoad(t *testing.T) {
	repo, err := Load(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if repo.Namespace != "Demo" || repo.Version != "1.0" {
		t.Fatalf("namespace = %s-%s", repo.Namespace, repo.Version)
	}
	if len(repo.Includes) != 2 || repo.Includes[0].Name != "GLib" || repo.Includes[1].Version != "2.0" {
		t.Fatalf("includes = %+v", repo.Includes)
	}
}

func TestElementLookups(t *testing.T) {
	repo, err := Load(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	classes := repo.Root.Children("class")
	if len(classes) != 1 {
		t.Fatalf("got %d classes", len(classes))
	}
	w := classes[0]
	if w.Attr("name") != "Widget" || w.Attr("parent") != "GObject.Object" {
		t.Fatalf("attrs = %v", w.Attrs)
	}
	if w.AttrGLib("get-type") != "demo_widget_get_type" {
		t.Fatalf("glib:get-type = %q", w.AttrGLib("get-type"))
	}
	m := w.Child("method")
	if m == nil || m.AttrC("identifier") != "demo_widget_show" {
		t.Fatalf("c:identifier lookup failed: %+v", m)
	}
	// Scoped attributes never leak into plain lookup.
	if _, ok := m.LookupAttr("identifier"); ok {
		t.Fatal("c:identifier visible as plain attribute")
	}
	if w.Child("no-such-child") != nil {
		t.Fatal("missing child found")
	}
}

func TestLoadRejectsNonRepository(t *testing.T) {
	if _, err := Load(strings.NewReader("<root/>")); err == nil {
		t.Fatal("expected error for document without repository")
	}
	if _, err := Load(strings.NewReader("<repository/>")); err == nil {
		t.Fatal("expected error for repository without namespace")
	}
}
