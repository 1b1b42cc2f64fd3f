package extension

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-initgen/pkg/pluginrequest"
	"github.com/goliatone/go-initgen/pkg/project"
)

func supplierNamed(name string) project.Supplier {
	return &project.StaticSupplier{SupplierName: name}
}

func newTestCatalog() *Catalog {
	catalog := NewCatalog()
	catalog.MustRegister(NewPlugin("org.example.base", "", supplierNamed("base")))
	catalog.MustRegister(NewPlugin("org.example.kotlin", "1.0.0", supplierNamed("kotlin-app"), supplierNamed("kotlin-lib")))
	catalog.MustRegister(NewPlugin("org.example.groovy", "2.1", supplierNamed("groovy")))
	return catalog
}

func supplierNames(t *testing.T, scope *Scope) []string {
	t.Helper()
	suppliers, err := scope.Suppliers(context.Background())
	if err != nil {
		t.Fatalf("suppliers: %v", err)
	}
	names := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		names = append(names, s.Name())
	}
	return names
}

func TestScope_OnlyAppliedPluginsAreVisible(t *testing.T) {
	scope, err := NewScope("demo", newTestCatalog(), "org.example.base")
	if err != nil {
		t.Fatalf("new scope: %v", err)
	}

	if diff := cmp.Diff([]string{"base"}, supplierNames(t, scope)); diff != "" {
		t.Fatalf("suppliers mismatch (-want +got):\n%s", diff)
	}
}

func TestScope_ActivateAppendsInRequestOrder(t *testing.T) {
	scope, err := NewScope("demo", newTestCatalog(), "org.example.base")
	if err != nil {
		t.Fatalf("new scope: %v", err)
	}

	requests, err := pluginrequest.Parse("org.example.groovy,org.example.kotlin:1.0,org.example.base")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := scope.Activate(context.Background(), requests); err != nil {
		t.Fatalf("activate: %v", err)
	}

	want := []string{"base", "groovy", "kotlin-app", "kotlin-lib"}
	if diff := cmp.Diff(want, supplierNames(t, scope)); diff != "" {
		t.Fatalf("suppliers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"org.example.base", "org.example.groovy", "org.example.kotlin"}, scope.Applied()); diff != "" {
		t.Fatalf("applied mismatch (-want +got):\n%s", diff)
	}
}

func TestScope_ActivateRejectsUnknownPlugins(t *testing.T) {
	scope, err := NewScope("demo", newTestCatalog())
	if err != nil {
		t.Fatalf("new scope: %v", err)
	}

	err = scope.Activate(context.Background(), []pluginrequest.Request{{ID: "org.example.missing"}})
	if !project.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestScope_ActivateChecksVersions(t *testing.T) {
	cases := []struct {
		name    string
		request pluginrequest.Request
		wantErr bool
	}{
		{name: "exact", request: pluginrequest.Request{ID: "org.example.groovy", Version: "2.1"}},
		{name: "semantic equal", request: pluginrequest.Request{ID: "org.example.groovy", Version: "2.1.0"}},
		{name: "mismatch", request: pluginrequest.Request{ID: "org.example.groovy", Version: "3.0"}, wantErr: true},
		{name: "unversioned plugin", request: pluginrequest.Request{ID: "org.example.base", Version: "1.0"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := NewScope("demo", newTestCatalog())
			if err != nil {
				t.Fatalf("new scope: %v", err)
			}
			err = scope.Activate(context.Background(), []pluginrequest.Request{tc.request})
			if tc.wantErr && !project.IsConfig(err) {
				t.Fatalf("expected config error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("activate: %v", err)
			}
		})
	}
}

func TestNewScope_UnknownAppliedPlugin(t *testing.T) {
	if _, err := NewScope("demo", newTestCatalog(), "org.example.nope"); !project.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if _, err := NewScope("demo", nil); err == nil {
		t.Fatalf("expected error for nil catalog")
	}
}

func TestScope_NilSupplierIsInternal(t *testing.T) {
	catalog := NewCatalog()
	catalog.MustRegister(NewPlugin("org.example.broken", "", nil))
	scope, err := NewScope("demo", catalog, "org.example.broken")
	if err != nil {
		t.Fatalf("new scope: %v", err)
	}
	if _, err := scope.Suppliers(context.Background()); !project.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
