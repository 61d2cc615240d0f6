package diag

import (
	"fmt"
	"testing"
)

func TestCategories(t *testing.T) {
	m := Malformedf("bad %s", "thing")
	if !IsMalformed(m) || IsUnsupported(m) || IsInternal(m) {
		t.Fatalf("malformed misclassified: %v", m)
	}
	u := Unsupportedf("odd width")
	if !IsUnsupported(u) || !Recoverable(u) {
		t.Fatalf("unsupported misclassified: %v", u)
	}
	i := Internalf("double shift")
	if !IsInternal(i) || Recoverable(i) {
		t.Fatalf("internal misclassified: %v", i)
	}
}

func TestWrappedClassification(t *testing.T) {
	err := fmt.Errorf("argument data: %w", Malformedf("length index 7 outside argument list"))
	if !IsMalformed(err) || !Recoverable(err) {
		t.Fatalf("wrapped error lost its category: %v", err)
	}
}

func TestUnclassifiedEscalates(t *testing.T) {
	err := fmt.Errorf("plain failure")
	if Recoverable(err) {
		t.Fatal("plain errors must escalate")
	}
}

func TestMessages(t *testing.T) {
	if got := Malformedf("x").Error(); got != "malformed input: x" {
		t.Fatalf("message = %q", got)
	}
	if got := Unsupportedf("y").Error(); got != "unsupported: y" {
		t.Fatalf("message = %q", got)
	}
}
