package registry_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-initgen/pkg/project"
	"github.com/goliatone/go-initgen/pkg/registry"
	"github.com/goliatone/go-initgen/pkg/testsupport"
)

func TestRegistry_ResolvesEveryAvailableTemplate(t *testing.T) {
	ga := testsupport.NewRecordingGenerator("ga")
	gb := testsupport.NewRecordingGenerator("gb")
	gc := testsupport.NewRecordingGenerator("gc")

	owners := map[string]project.Generator{}
	var entries []registry.Entry
	for _, tc := range []struct {
		gen *testsupport.RecordingGenerator
		ids []string
	}{
		{gen: ga, ids: []string{"a1", "a2", "a3"}},
		{gen: gb, ids: []string{"b1"}},
		{gen: gc, ids: []string{"c1", "c2"}},
	} {
		entry := registry.Entry{Generator: tc.gen, Supplier: tc.gen.Name()}
		for _, id := range tc.ids {
			entry.Specs = append(entry.Specs, testsupport.Spec(t, id))
			owners[id] = tc.gen
		}
		entries = append(entries, entry)
	}

	reg, err := registry.New(entries...)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	available := reg.AvailableTemplates()
	if len(available) != 6 {
		t.Fatalf("expected 6 templates, got %d", len(available))
	}
	seen := map[string]bool{}
	for _, spec := range available {
		if seen[spec.ID()] {
			t.Fatalf("duplicate spec %q", spec.ID())
		}
		seen[spec.ID()] = true

		gen, err := reg.ProjectGenerator(spec)
		if err != nil {
			t.Fatalf("resolve %q: %v", spec.ID(), err)
		}
		if gen != owners[spec.ID()] {
			t.Fatalf("spec %q resolved to %s", spec.ID(), project.NameOf(gen))
		}
	}
}

func TestRegistry_UnknownSpecIsInternalError(t *testing.T) {
	reg, err := registry.New(registry.Entry{
		Generator: testsupport.NewRecordingGenerator("ga"),
		Specs:     []project.Spec{testsupport.Spec(t, "a1")},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	_, err = reg.ProjectGenerator(testsupport.Spec(t, "stranger"))
	if !project.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if project.IsConfig(err) {
		t.Fatalf("unknown spec must not be reported as a configuration error")
	}
}

func TestRegistry_TemplatesAvailable(t *testing.T) {
	empty, err := registry.New()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if empty.TemplatesAvailable() {
		t.Fatalf("empty registry must not report templates")
	}

	var nilRegistry *registry.Registry
	if nilRegistry.TemplatesAvailable() {
		t.Fatalf("nil registry must not report templates")
	}

	onlyEmptyEntries, err := registry.New(registry.Entry{Generator: testsupport.NewRecordingGenerator("ga")})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if onlyEmptyEntries.TemplatesAvailable() {
		t.Fatalf("entries without specs must not count as available templates")
	}

	populated, err := registry.New(registry.Entry{
		Generator: testsupport.NewRecordingGenerator("ga"),
		Specs:     []project.Spec{testsupport.Spec(t, "a1")},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if !populated.TemplatesAvailable() {
		t.Fatalf("expected templates to be available")
	}
}

func TestRegistry_DuplicateSpecAcrossSuppliers(t *testing.T) {
	_, err := registry.New(
		registry.Entry{Generator: testsupport.NewRecordingGenerator("ga"), Specs: []project.Spec{testsupport.Spec(t, "app")}, Supplier: "a"},
		registry.Entry{Generator: testsupport.NewRecordingGenerator("gb"), Specs: []project.Spec{testsupport.Spec(t, "app")}, Supplier: "b"},
	)
	if !project.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestRegistry_MergesEntriesSharingAGenerator(t *testing.T) {
	gen := testsupport.NewRecordingGenerator("shared")
	reg, err := registry.New(
		registry.Entry{Generator: gen, Specs: []project.Spec{testsupport.Spec(t, "one")}, Supplier: "first"},
		registry.Entry{Generator: gen, Specs: []project.Spec{testsupport.Spec(t, "two")}, Supplier: "second"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected a single merged entry, got %d", reg.Len())
	}
	if diff := cmp.Diff([]string{"one", "two"}, testsupport.SpecIDs(reg.AvailableTemplates())); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_FuncGeneratorsStayDistinct(t *testing.T) {
	newGen := func(tag string, hits map[string]int) project.Generator {
		return project.GeneratorFunc(func(context.Context, project.Config, string) error {
			hits[tag]++
			return nil
		})
	}
	hits := map[string]int{}

	reg, err := registry.New(
		registry.Entry{Generator: newGen("a", hits), Specs: []project.Spec{testsupport.Spec(t, "a")}},
		registry.Entry{Generator: newGen("b", hits), Specs: []project.Spec{testsupport.Spec(t, "b")}},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	spec, _ := reg.Lookup("b")
	gen, err := reg.ProjectGenerator(spec)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cfg, err := project.NewConfig(spec, nil)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if err := gen.Generate(context.Background(), cfg, "."); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"b": 1}, hits); diff != "" {
		t.Fatalf("wrong generator invoked (-want +got):\n%s", diff)
	}
}

type optionsGenerator struct {
	opts any
}

func (optionsGenerator) Generate(context.Context, project.Config, string) error { return nil }

func TestRegistry_GeneratorsHoldingSlicesStayDistinct(t *testing.T) {
	reg, err := registry.New(
		registry.Entry{Generator: optionsGenerator{opts: []string{"x"}}, Specs: []project.Spec{testsupport.Spec(t, "x")}, Supplier: "X"},
		registry.Entry{Generator: optionsGenerator{opts: []string{"y"}}, Specs: []project.Spec{testsupport.Spec(t, "y")}, Supplier: "Y"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected two entries, got %d", reg.Len())
	}
}

func TestRegistry_ComparableGeneratorValuesMerge(t *testing.T) {
	reg, err := registry.New(
		registry.Entry{Generator: optionsGenerator{opts: "shared"}, Specs: []project.Spec{testsupport.Spec(t, "a")}, Supplier: "A"},
		registry.Entry{Generator: optionsGenerator{opts: "shared"}, Specs: []project.Spec{testsupport.Spec(t, "b")}, Supplier: "B"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected merged entry, got %d", reg.Len())
	}

	got := map[string]string{}
	for _, id := range []string{"a", "b"} {
		name, ok := reg.SupplierOf(id)
		if !ok {
			t.Fatalf("no supplier recorded for %q", id)
		}
		got[id] = name
	}
	if diff := cmp.Diff(map[string]string{"a": "A", "b": "B"}, got); diff != "" {
		t.Fatalf("supplier provenance mismatch (-want +got):\n%s", diff)
	}
	if _, ok := reg.SupplierOf("missing"); ok {
		t.Fatalf("unexpected supplier for unknown template")
	}
}

func TestRegistry_EndToEndPermutation(t *testing.T) {
	ga := testsupport.NewRecordingGenerator("GA")
	gb := testsupport.NewRecordingGenerator("GB")
	s1, s2, s3 := testsupport.Spec(t, "S1"), testsupport.Spec(t, "S2"), testsupport.Spec(t, "S3")

	reg, err := registry.New(
		registry.Entry{Generator: ga, Specs: []project.Spec{s1, s2}, Supplier: "A"},
		registry.Entry{Generator: gb, Specs: []project.Spec{s3}, Supplier: "B"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	got := testsupport.SpecIDs(reg.AvailableTemplates())
	if diff := cmp.Diff([]string{"S1", "S2", "S3"}, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	gen, err := reg.ProjectGenerator(s3)
	if err != nil || gen != gb {
		t.Fatalf("expected GB, got %v (%v)", project.NameOf(gen), err)
	}
	if !reg.TemplatesAvailable() {
		t.Fatalf("expected templates to be available")
	}
}

func TestRegistry_NilGeneratorIsInternal(t *testing.T) {
	_, err := registry.New(registry.Entry{Specs: []project.Spec{testsupport.Spec(t, "a")}, Supplier: "broken"})
	if !project.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestRegistry_EntriesSnapshotIsIsolated(t *testing.T) {
	reg, err := registry.New(registry.Entry{
		Generator: testsupport.NewRecordingGenerator("ga"),
		Specs:     []project.Spec{testsupport.Spec(t, "a")},
		Supplier:  "supplier-a",
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	snapshot := reg.Entries()
	snapshot[0].Specs[0] = testsupport.Spec(t, "mutated")
	if _, ok := reg.Lookup("a"); !ok {
		t.Fatalf("registry mutated through Entries snapshot")
	}
	if snapshot[0].Supplier != "supplier-a" {
		t.Fatalf("supplier provenance lost: %#v", snapshot[0])
	}
}
