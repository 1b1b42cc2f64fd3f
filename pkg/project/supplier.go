package project

import "context"

// Supplier is the extension contract for contributing templates. Every Spec
// returned by ProjectDefinitions is generated by ProjectGenerator.
type Supplier interface {
	Name() string
	ProjectDefinitions(ctx context.Context) ([]Spec, error)
	ProjectGenerator() Generator
}

// StaticSupplier is a Supplier backed by a fixed spec list.
type StaticSupplier struct {
	SupplierName string
	Specs        []Spec
	Generator    Generator
}

var _ Supplier = (*StaticSupplier)(nil)

func (s *StaticSupplier) Name() string {
	if s.SupplierName != "" {
		return s.SupplierName
	}
	return "static"
}

func (s *StaticSupplier) ProjectDefinitions(ctx context.Context) ([]Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Spec(nil), s.Specs...), nil
}

func (s *StaticSupplier) ProjectGenerator() Generator {
	return s.Generator
}
