// Package testsupport provides fixtures shared by package tests.
package testsupport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-initgen/pkg/project"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Spec builds a spec with string parameters, failing the test on error.
func Spec(t testing.TB, id string, params ...project.Parameter) project.Spec {
	t.Helper()

	spec, err := project.NewSpec(id, id, project.WithParameters(params...))
	if err != nil {
		t.Fatalf("new spec %q: %v", id, err)
	}
	return spec
}

// Call captures one Generate invocation.
type Call struct {
	SpecID    string
	Arguments map[string]any
	Location  string
}

// RecordingGenerator records every Generate call and returns Err.
type RecordingGenerator struct {
	GeneratorName string
	Err           error

	mu    sync.Mutex
	calls []Call
}

var _ project.Generator = (*RecordingGenerator)(nil)

// NewRecordingGenerator returns a generator identified by name.
func NewRecordingGenerator(name string) *RecordingGenerator {
	return &RecordingGenerator{GeneratorName: name}
}

func (g *RecordingGenerator) Name() string {
	return g.GeneratorName
}

func (g *RecordingGenerator) Generate(_ context.Context, config project.Config, location string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, Call{
		SpecID:    config.Spec().ID(),
		Arguments: config.Arguments(),
		Location:  location,
	})
	return g.Err
}

// Calls returns a copy of the recorded invocations.
func (g *RecordingGenerator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// Supplier is a scripted project.Supplier.
type Supplier struct {
	SupplierName string
	Specs        []project.Spec
	Generator    project.Generator
	Err          error

	mu      sync.Mutex
	invoked int
}

var _ project.Supplier = (*Supplier)(nil)

// NewSupplier returns a supplier routing specs to gen.
func NewSupplier(name string, gen project.Generator, specs ...project.Spec) *Supplier {
	return &Supplier{SupplierName: name, Specs: specs, Generator: gen}
}

// FailingSupplier returns a supplier whose discovery call fails with err.
func FailingSupplier(name string, err error) *Supplier {
	if err == nil {
		err = errors.New("supplier failure")
	}
	return &Supplier{SupplierName: name, Generator: NewRecordingGenerator(name), Err: err}
}

func (s *Supplier) Name() string {
	return s.SupplierName
}

func (s *Supplier) ProjectDefinitions(_ context.Context) ([]project.Spec, error) {
	s.mu.Lock()
	s.invoked++
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return append([]project.Spec(nil), s.Specs...), nil
}

func (s *Supplier) ProjectGenerator() project.Generator {
	return s.Generator
}

// Invocations reports how many times ProjectDefinitions ran.
func (s *Supplier) Invocations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoked
}

// SpecIDs maps specs to their ids.
func SpecIDs(specs []project.Spec) []string {
	ids := make([]string, 0, len(specs))
	for _, spec := range specs {
		ids = append(ids, spec.ID())
	}
	return ids
}

// ReadTree returns every regular file under root keyed by slash separated
// relative path.
func ReadTree(t testing.TB, root string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("read tree %s: %v", root, err)
	}
	return out
}
