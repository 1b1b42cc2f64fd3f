package pack

import (
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-initgen/pkg/project"
)

// ManifestNames lists the file names probed at a pack root, in order.
var ManifestNames = []string{"initgen.yaml", "initgen.yml", "initgen.json", "initgen.hcl"}

// Manifest describes a template pack.
type Manifest struct {
	ID        string             `json:"id" yaml:"id"`
	Version   string             `json:"version" yaml:"version"`
	Templates []TemplateManifest `json:"templates" yaml:"templates"`
}

// TemplateManifest declares one template offered by a pack.
type TemplateManifest struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description" yaml:"description"`
	Root        string              `json:"root" yaml:"root"`
	Exclude     []string            `json:"exclude" yaml:"exclude"`
	When        map[string]string   `json:"when" yaml:"when"`
	Parameters  []ParameterManifest `json:"parameters" yaml:"parameters"`
}

// ParameterManifest declares a template parameter. Kind defaults to string.
type ParameterManifest struct {
	Name        string   `json:"name" yaml:"name"`
	Kind        string   `json:"kind" yaml:"kind"`
	Description string   `json:"description" yaml:"description"`
	Default     any      `json:"default" yaml:"default"`
	Allowed     []string `json:"allowed" yaml:"allowed"`
}

type hclManifest struct {
	ID        string        `hcl:"id"`
	Version   string        `hcl:"version,optional"`
	Templates []hclTemplate `hcl:"template,block"`
}

type hclTemplate struct {
	ID          string            `hcl:"id,label"`
	Name        string            `hcl:"name,optional"`
	Description string            `hcl:"description,optional"`
	Root        string            `hcl:"root,optional"`
	Exclude     []string          `hcl:"exclude,optional"`
	When        map[string]string `hcl:"when,optional"`
	Parameters  []hclParameter    `hcl:"parameter,block"`
}

type hclParameter struct {
	Name        string   `hcl:"name,label"`
	Kind        string   `hcl:"kind,optional"`
	Description string   `hcl:"description,optional"`
	Default     *string  `hcl:"default,optional"`
	Allowed     []string `hcl:"allowed,optional"`
}

// ParseManifest decodes manifest data. The format is chosen from the
// extension of name.
func ParseManifest(data []byte, name string) (Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Manifest{}, fmt.Errorf("pack: manifest %s is empty", name)
	}

	var manifest Manifest
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &manifest); err != nil {
			return Manifest{}, fmt.Errorf("pack: parse %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return Manifest{}, fmt.Errorf("pack: parse %s: %w", name, err)
		}
	case ".hcl":
		decoded, err := parseHCLManifest(data, name)
		if err != nil {
			return Manifest{}, err
		}
		manifest = decoded
	default:
		return Manifest{}, fmt.Errorf("pack: unsupported manifest format %q", name)
	}

	if err := manifest.validate(name); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

func parseHCLManifest(data []byte, name string) (Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return Manifest{}, fmt.Errorf("pack: parse %s: %w", name, diags)
	}

	var raw hclManifest
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return Manifest{}, fmt.Errorf("pack: decode %s: %w", name, diags)
	}

	manifest := Manifest{ID: raw.ID, Version: raw.Version}
	for _, tpl := range raw.Templates {
		entry := TemplateManifest{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			Root:        tpl.Root,
			Exclude:     tpl.Exclude,
			When:        tpl.When,
		}
		for _, param := range tpl.Parameters {
			p := ParameterManifest{
				Name:        param.Name,
				Kind:        param.Kind,
				Description: param.Description,
				Allowed:     param.Allowed,
			}
			if param.Default != nil {
				p.Default = *param.Default
			}
			entry.Parameters = append(entry.Parameters, p)
		}
		manifest.Templates = append(manifest.Templates, entry)
	}
	return manifest, nil
}

func (m Manifest) validate(source string) error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("pack: manifest %s: id is required", source)
	}
	if len(m.Templates) == 0 {
		return fmt.Errorf("pack: manifest %s: at least one template is required", source)
	}
	seen := make(map[string]struct{}, len(m.Templates))
	for idx, tpl := range m.Templates {
		id := strings.TrimSpace(tpl.ID)
		if id == "" {
			return fmt.Errorf("pack: manifest %s: template at index %d has an empty id", source, idx)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("pack: manifest %s: duplicate template %q", source, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Spec converts the template declaration into a project.Spec.
func (t TemplateManifest) Spec() (project.Spec, error) {
	params := make([]project.Parameter, 0, len(t.Parameters))
	for _, raw := range t.Parameters {
		param, err := raw.parameter()
		if err != nil {
			return project.Spec{}, fmt.Errorf("pack: template %q: %w", t.ID, err)
		}
		params = append(params, param)
	}
	return project.NewSpec(t.ID, t.Name,
		project.WithDescription(strings.TrimSpace(t.Description)),
		project.WithParameters(params...),
	)
}

func (p ParameterManifest) parameter() (project.Parameter, error) {
	def := ""
	if p.Default != nil {
		def = strings.TrimSpace(fmt.Sprint(p.Default))
	}

	switch project.ParameterKind(strings.ToLower(strings.TrimSpace(p.Kind))) {
	case "", project.KindString:
		return project.StringParameter(p.Name, p.Description, def), nil
	case project.KindBoolean:
		value := false
		if def != "" {
			parsed, err := strconv.ParseBool(def)
			if err != nil {
				return project.Parameter{}, fmt.Errorf("parameter %q: default %q is not a boolean", p.Name, def)
			}
			value = parsed
		}
		return project.BooleanParameter(p.Name, p.Description, value), nil
	case project.KindInteger:
		value := 0
		if def != "" {
			parsed, err := strconv.Atoi(def)
			if err != nil {
				return project.Parameter{}, fmt.Errorf("parameter %q: default %q is not an integer", p.Name, def)
			}
			value = parsed
		}
		return project.IntegerParameter(p.Name, p.Description, value), nil
	case project.KindEnum:
		if def == "" && len(p.Allowed) > 0 {
			def = p.Allowed[0]
		}
		return project.EnumParameter(p.Name, p.Description, def, p.Allowed...), nil
	default:
		return project.Parameter{}, fmt.Errorf("parameter %q: unknown kind %q", p.Name, p.Kind)
	}
}
