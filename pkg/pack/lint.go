package pack

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-initgen/pkg/project"
)

// Violation is a problem reported by Lint.
type Violation struct {
	Pack     string
	Template string
	Location string
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s > %s -> %s", v.Pack, v.Template, v.Location, v.Message)
}

// Lint renders every template with its default values without writing
// anything and reports patterns that match no file. Results are sorted.
func (p *Pack) Lint(ctx context.Context) []Violation {
	var result []Violation
	for _, tpl := range p.templates {
		result = append(result, p.lintTemplate(ctx, tpl)...)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Template == result[j].Template {
			if result[i].Location == result[j].Location {
				return result[i].Message < result[j].Message
			}
			return result[i].Location < result[j].Location
		}
		return result[i].Template < result[j].Template
	})
	return result
}

func (p *Pack) lintTemplate(ctx context.Context, tpl packTemplate) []Violation {
	violation := func(location, message string) Violation {
		return Violation{Pack: p.ID(), Template: tpl.spec.ID(), Location: location, Message: message}
	}

	var result []Violation
	config, err := project.NewConfig(tpl.spec, nil)
	if err != nil {
		return append(result, violation("parameters", err.Error()))
	}
	if _, err := p.supplier.generator.plan(ctx, tpl, config, "."); err != nil {
		result = append(result, violation("render", err.Error()))
	}

	files, err := templateFiles(p.fsys, tpl.root)
	if err != nil {
		return append(result, violation("root", err.Error()))
	}
	for _, pattern := range tpl.exclude {
		if !matchesAny(pattern, files) {
			result = append(result, violation("exclude", fmt.Sprintf("pattern %q matches no file", pattern)))
		}
	}
	for pattern := range tpl.when {
		if !matchesAny(pattern, files) {
			result = append(result, violation("when", fmt.Sprintf("pattern %q matches no file", pattern)))
		}
	}
	if len(files) == 0 {
		result = append(result, violation("root", fmt.Sprintf("%s holds no files", tpl.root)))
	}
	return result
}

func templateFiles(fsys fs.FS, root string) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, root, func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		files = append(files, strings.TrimPrefix(name, root+"/"))
		return nil
	})
	return files, err
}

func matchesAny(pattern string, files []string) bool {
	for _, name := range files {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
