package initgen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	initgen "github.com/goliatone/go-initgen"
	"github.com/goliatone/go-initgen/pkg/builtin"
	"github.com/goliatone/go-initgen/pkg/orchestrator"
)

func TestGenerate_Basic(t *testing.T) {
	dir := t.TempDir()

	result, err := initgen.Generate(context.Background(), "basic", map[string]string{"name": "demo"}, dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Outcome != orchestrator.OutcomeGenerated || result.Spec.ID() != "basic" {
		t.Fatalf("unexpected result %+v", result)
	}
	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatalf("read readme: %v", err)
	}
	if string(data) != "# demo\n" {
		t.Fatalf("unexpected readme %q", data)
	}
}

func TestNewCatalog_IncludesPackDirs(t *testing.T) {
	root := t.TempDir()
	manifest := "id: org.example.extra\ntemplates:\n  - id: extra\n"
	if err := os.MkdirAll(filepath.Join(root, "extra", "templates", "extra"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "extra", "initgen.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "extra", "templates", "extra", "a.txt"), []byte("a"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	catalog, err := initgen.NewCatalog(root)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, id := range []string{builtin.PluginID, "org.example.extra"} {
		if !catalog.Has(id) {
			t.Fatalf("expected catalog to contain %s, got %v", id, catalog.List())
		}
	}
}
