package platform

import "testing"

func TestAlwaysPresentAliases(t *testing.T) {
	short, ok := Lookup("gshort")
	if !ok || short.Bytes != 2 || !short.Signed {
		t.Fatalf("gshort = %+v, %v", short, ok)
	}
	ushort, ok := Lookup("gushort")
	if !ok || ushort.Bytes != 2 || ushort.Signed {
		t.Fatalf("gushort = %+v, %v", ushort, ok)
	}
}

func TestMeasuredWidthsAreSane(t *testing.T) {
	for _, name := range []string{"gint", "guint", "glong", "gulong", "gsize", "gssize", "goffset"} {
		a, ok := Lookup(name)
		if !ok {
			t.Fatalf("%s missing from table", name)
		}
		switch a.Bytes {
		case 2, 4, 8:
		default:
			t.Fatalf("%s has width %d", name, a.Bytes)
		}
	}
}

func TestAbsentAliasIsNotAnError(t *testing.T) {
	if _, ok := Lookup("no_such_alias_t"); ok {
		t.Fatal("unknown alias reported present")
	}
}
