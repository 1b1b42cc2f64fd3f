package pack

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-initgen/pkg/project"
	"github.com/goliatone/go-initgen/pkg/render/template"
	"github.com/goliatone/go-initgen/pkg/render/template/pongo"
)

// TemplateSuffix marks files rendered through the template engine. The
// suffix is dropped from the generated file name.
const TemplateSuffix = ".tpl"

// Generator renders a pack template into a target directory.
type Generator struct {
	pack *Pack
}

var _ project.Generator = (*Generator)(nil)

func (g *Generator) Name() string {
	return "pack:" + g.pack.ID()
}

type plannedFile struct {
	source string
	target string
	data   []byte
	mode   fs.FileMode
}

// Generate writes every file under the template root into location. Nothing
// is written when any target file already exists.
func (g *Generator) Generate(ctx context.Context, config project.Config, location string) error {
	spec := config.Spec()
	tpl, ok := g.pack.template(spec.ID())
	if !ok {
		return &project.InternalError{
			Op:  "pack generate",
			Msg: fmt.Sprintf("pack %q does not provide template %q", g.pack.ID(), spec.ID()),
		}
	}

	plan, err := g.plan(ctx, tpl, config, location)
	if err != nil {
		return err
	}

	for _, file := range plan {
		if _, err := os.Lstat(file.target); err == nil {
			return fmt.Errorf("pack: refusing to overwrite existing file %s", file.target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("pack: stat %s: %w", file.target, err)
		}
	}

	for _, file := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(file.target), 0o755); err != nil {
			return fmt.Errorf("pack: create directory for %s: %w", file.target, err)
		}
		if err := os.WriteFile(file.target, file.data, file.mode); err != nil {
			return fmt.Errorf("pack: write %s: %w", file.target, err)
		}
		g.pack.logger.Debug().
			Str("template", spec.ID()).
			Str("source", file.source).
			Str("path", file.target).
			Msg("Generated file")
	}

	g.pack.logger.Info().
		Str("template", spec.ID()).
		Str("plugin", g.pack.ID()).
		Str("location", location).
		Int("files", len(plan)).
		Msg("Generated project")
	return nil
}

func (g *Generator) plan(ctx context.Context, tpl packTemplate, config project.Config, location string) ([]plannedFile, error) {
	root, err := fs.Sub(g.pack.fsys, tpl.root)
	if err != nil {
		return nil, fmt.Errorf("pack: open template root %s: %w", tpl.root, err)
	}
	engine, err := pongo.New(pongo.WithFS(root), pongo.WithName(g.pack.ID()), pongo.WithExtension(TemplateSuffix))
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}

	data := config.Arguments()
	data["spec_id"] = tpl.spec.ID()
	data["spec_name"] = tpl.spec.DisplayName()
	if _, ok := data["year"]; !ok {
		data["year"] = time.Now().Year()
	}

	base, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("pack: resolve location %s: %w", location, err)
	}

	var plan []plannedFile
	seen := make(map[string]string)
	err = fs.WalkDir(root, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if name != "." && tpl.excluded(name) {
				return fs.SkipDir
			}
			return nil
		}
		if tpl.excluded(name) || !tpl.enabled(name, config) {
			return nil
		}

		rel, err := renderPath(engine, name, data)
		if err != nil {
			return err
		}
		if rel == "" {
			return nil
		}
		target := filepath.Join(base, filepath.FromSlash(rel))
		if !within(base, target) {
			return fmt.Errorf("pack: %s renders outside the target directory: %s", name, rel)
		}
		if previous, dup := seen[target]; dup {
			return fmt.Errorf("pack: %s and %s both render to %s", previous, name, rel)
		}
		seen[target] = name

		info, err := entry.Info()
		if err != nil {
			return err
		}
		content, err := renderContent(engine, root, name, data)
		if err != nil {
			return err
		}
		plan = append(plan, plannedFile{source: name, target: target, data: content, mode: fileMode(info.Mode())})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(plan, func(i, j int) bool { return plan[i].target < plan[j].target })
	return plan, nil
}

func (t packTemplate) excluded(name string) bool {
	for _, pattern := range t.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (t packTemplate) enabled(name string, config project.Config) bool {
	for pattern, param := range t.when {
		if ok, _ := doublestar.Match(pattern, name); ok && !config.Bool(param) {
			return false
		}
	}
	return true
}

// renderPath renders each path segment. An empty segment drops the file.
func renderPath(engine template.TemplateRenderer, name string, data map[string]any) (string, error) {
	segments := strings.Split(strings.TrimSuffix(name, TemplateSuffix), "/")
	for idx, segment := range segments {
		rendered, err := engine.RenderString(segment, data)
		if err != nil {
			return "", fmt.Errorf("pack: render path %s: %w", name, err)
		}
		rendered = strings.TrimSpace(rendered)
		if rendered == "" {
			return "", nil
		}
		segments[idx] = rendered
	}
	return path.Clean(strings.Join(segments, "/")), nil
}

func renderContent(engine template.TemplateRenderer, root fs.FS, name string, data map[string]any) ([]byte, error) {
	if !strings.HasSuffix(name, TemplateSuffix) {
		content, err := fs.ReadFile(root, name)
		if err != nil {
			return nil, fmt.Errorf("pack: read %s: %w", name, err)
		}
		return content, nil
	}
	rendered, err := engine.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("pack: render %s: %w", name, err)
	}
	return []byte(rendered), nil
}

func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm()&0o111 != 0 {
		return 0o755
	}
	return 0o644
}
