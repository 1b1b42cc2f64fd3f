package pack

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-initgen/pkg/extension"
	"github.com/goliatone/go-initgen/pkg/project"
)

// Option configures a Pack at load time.
type Option func(*Pack)

// WithLogger attaches a logger used while generating files.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pack) {
		p.logger = logger
	}
}

// Pack is a template pack loaded from a manifest. It satisfies
// extension.Plugin with a single supplier.
type Pack struct {
	source    string
	fsys      fs.FS
	manifest  Manifest
	templates []packTemplate
	supplier  *Supplier
	logger    zerolog.Logger
}

type packTemplate struct {
	spec    project.Spec
	root    string
	exclude []string
	when    map[string]string
}

var _ extension.Plugin = (*Pack)(nil)

// Load reads the manifest at the root of fsys. Source labels the pack in
// errors and logs, typically the directory it was read from.
func Load(fsys fs.FS, source string, options ...Option) (*Pack, error) {
	if fsys == nil {
		return nil, errors.New("pack: filesystem is nil")
	}

	manifestName, data, err := readManifest(fsys)
	if err != nil {
		return nil, fmt.Errorf("pack: %s: %w", source, err)
	}
	manifest, err := ParseManifest(data, path.Join(source, manifestName))
	if err != nil {
		return nil, err
	}

	p := &Pack{
		source:   source,
		fsys:     fsys,
		manifest: manifest,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}

	for _, raw := range manifest.Templates {
		spec, err := raw.Spec()
		if err != nil {
			return nil, err
		}
		tpl, err := newPackTemplate(fsys, spec, raw)
		if err != nil {
			return nil, fmt.Errorf("pack: %s: %w", source, err)
		}
		p.templates = append(p.templates, tpl)
	}

	p.supplier = &Supplier{pack: p, generator: &Generator{pack: p}}
	return p, nil
}

// LoadDir loads the pack stored in dir.
func LoadDir(dir string, options ...Option) (*Pack, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pack: %s is not a directory", dir)
	}
	return Load(os.DirFS(dir), dir, options...)
}

// LoadDirs loads every directory in order. A directory without a manifest
// is treated as a collection and each of its immediate subdirectories that
// carries one is loaded instead.
func LoadDirs(dirs []string, options ...Option) ([]*Pack, error) {
	var packs []*Pack
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if hasManifest(os.DirFS(dir)) {
			p, err := LoadDir(dir, options...)
			if err != nil {
				return nil, err
			}
			packs = append(packs, p)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("pack: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			child := filepath.Join(dir, entry.Name())
			if !hasManifest(os.DirFS(child)) {
				continue
			}
			p, err := LoadDir(child, options...)
			if err != nil {
				return nil, err
			}
			packs = append(packs, p)
		}
	}
	return packs, nil
}

// ID returns the plugin id declared by the manifest.
func (p *Pack) ID() string { return strings.TrimSpace(p.manifest.ID) }

// Version returns the declared version, possibly empty.
func (p *Pack) Version() string { return strings.TrimSpace(p.manifest.Version) }

// Source returns the label the pack was loaded with.
func (p *Pack) Source() string { return p.source }

// Suppliers exposes the pack's single supplier.
func (p *Pack) Suppliers() []project.Supplier {
	return []project.Supplier{p.supplier}
}

// Specs returns the templates declared by the pack.
func (p *Pack) Specs() []project.Spec {
	specs := make([]project.Spec, 0, len(p.templates))
	for _, tpl := range p.templates {
		specs = append(specs, tpl.spec)
	}
	return specs
}

func (p *Pack) template(id string) (packTemplate, bool) {
	for _, tpl := range p.templates {
		if tpl.spec.ID() == id {
			return tpl, true
		}
	}
	return packTemplate{}, false
}

// Supplier lists a pack's templates and hands out its generator.
type Supplier struct {
	pack      *Pack
	generator *Generator
}

var _ project.Supplier = (*Supplier)(nil)

func (s *Supplier) Name() string {
	return "pack:" + s.pack.ID()
}

func (s *Supplier) ProjectDefinitions(ctx context.Context) ([]project.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.pack.Specs(), nil
}

func (s *Supplier) ProjectGenerator() project.Generator {
	return s.generator
}

func newPackTemplate(fsys fs.FS, spec project.Spec, raw TemplateManifest) (packTemplate, error) {
	root := path.Clean(strings.TrimSpace(raw.Root))
	if root == "" || root == "." {
		root = path.Join("templates", spec.ID())
	}
	if !fs.ValidPath(root) {
		return packTemplate{}, fmt.Errorf("template %q: invalid root %q", spec.ID(), raw.Root)
	}
	info, err := fs.Stat(fsys, root)
	if err != nil {
		return packTemplate{}, fmt.Errorf("template %q: %w", spec.ID(), err)
	}
	if !info.IsDir() {
		return packTemplate{}, fmt.Errorf("template %q: root %q is not a directory", spec.ID(), root)
	}

	for _, pattern := range raw.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return packTemplate{}, fmt.Errorf("template %q: invalid exclude pattern %q", spec.ID(), pattern)
		}
	}
	for pattern, param := range raw.When {
		if !doublestar.ValidatePattern(pattern) {
			return packTemplate{}, fmt.Errorf("template %q: invalid when pattern %q", spec.ID(), pattern)
		}
		if _, ok := spec.Parameter(param); !ok {
			return packTemplate{}, fmt.Errorf("template %q: when pattern %q references unknown parameter %q", spec.ID(), pattern, param)
		}
	}

	when := make(map[string]string, len(raw.When))
	for pattern, param := range raw.When {
		when[pattern] = param
	}
	return packTemplate{
		spec:    spec,
		root:    root,
		exclude: append([]string(nil), raw.Exclude...),
		when:    when,
	}, nil
}

func readManifest(fsys fs.FS) (string, []byte, error) {
	for _, name := range ManifestNames {
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return name, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, fmt.Errorf("no manifest found (looked for %s)", strings.Join(ManifestNames, ", "))
}

func hasManifest(fsys fs.FS) bool {
	for _, name := range ManifestNames {
		if _, err := fs.Stat(fsys, name); err == nil {
			return true
		}
	}
	return false
}
