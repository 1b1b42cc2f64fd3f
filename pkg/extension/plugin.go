package extension

import (
	"strings"

	"github.com/goliatone/go-initgen/pkg/project"
)

// Plugin is one template-contributing extension.
type Plugin interface {
	ID() string
	Version() string
	Suppliers() []project.Supplier
}

type staticPlugin struct {
	id        string
	version   string
	suppliers []project.Supplier
}

// NewPlugin returns a Plugin exposing a fixed set of suppliers.
func NewPlugin(id, version string, suppliers ...project.Supplier) Plugin {
	return &staticPlugin{
		id:        strings.TrimSpace(id),
		version:   strings.TrimSpace(version),
		suppliers: append([]project.Supplier(nil), suppliers...),
	}
}

func (p *staticPlugin) ID() string      { return p.id }
func (p *staticPlugin) Version() string { return p.version }

func (p *staticPlugin) Suppliers() []project.Supplier {
	return append([]project.Supplier(nil), p.suppliers...)
}
