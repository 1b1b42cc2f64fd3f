package extension

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog_RegisterAndList(t *testing.T) {
	catalog := NewCatalog()
	catalog.MustRegister(NewPlugin("org.example.b", "1.0"))
	catalog.MustRegister(NewPlugin("org.example.a", ""))

	if diff := cmp.Diff([]string{"org.example.a", "org.example.b"}, catalog.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !catalog.Has(" org.example.a ") {
		t.Fatalf("expected lookup to ignore surrounding whitespace")
	}
	if _, ok := catalog.Get("org.example.c"); ok {
		t.Fatalf("unexpected plugin")
	}
}

func TestCatalog_RegisterRejectsDuplicatesAndBlankIDs(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Register(NewPlugin("org.example", "")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := catalog.Register(NewPlugin("org.example", "2.0")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := catalog.Register(NewPlugin("  ", "")); err == nil {
		t.Fatalf("expected blank id error")
	}
	if err := catalog.Register(nil); err == nil {
		t.Fatalf("expected nil plugin error")
	}
}

func TestCatalog_MustRegisterPanics(t *testing.T) {
	catalog := NewCatalog()
	catalog.MustRegister(NewPlugin("org.example", ""))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	catalog.MustRegister(NewPlugin("org.example", ""))
}
