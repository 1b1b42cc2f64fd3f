// Package config loads CLI settings from defaults, a TOML file, INITGEN_*
// environment variables and command line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-initgen/pkg/builtin"
	"github.com/goliatone/go-initgen/pkg/pluginrequest"
)

const (
	// DefaultFile is probed in the working directory when no path is given.
	DefaultFile = "initgen.toml"
	// EnvPrefix prefixes environment overrides, e.g. INITGEN_LOG_LEVEL.
	EnvPrefix = "INITGEN_"

	KeyTemplatePlugins = "template.plugins"
	KeyProjectPlugins  = "project.plugins"
	KeyPackPaths       = "packs.paths"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
)

// Config holds the resolved settings.
type Config struct {
	Template struct {
		Plugins string `koanf:"plugins"`
	} `koanf:"template"`

	Project struct {
		Plugins []string `koanf:"plugins"`
	} `koanf:"project"`

	Packs struct {
		Paths []string `koanf:"paths"`
	} `koanf:"packs"`

	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`

	// Source is the file the settings were read from, empty when none.
	Source string `koanf:"-"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		KeyTemplatePlugins: "",
		KeyProjectPlugins:  []string{builtin.PluginID},
		KeyPackPaths:       []string{},
		KeyLogLevel:        "info",
		KeyLogFormat:       "console",
	}
}

// Load resolves settings. An explicit path must exist; otherwise DefaultFile
// and $HOME/.initgen.toml are tried. Overrides are applied last and only
// non-empty values count.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	source, err := loadFile(k, path)
	if err != nil {
		return nil, err
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(nonEmpty(overrides), "."), nil); err != nil {
			return nil, fmt.Errorf("config: apply overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if strings.TrimSpace(cfg.Template.Plugins) == "" {
		cfg.Template.Plugins = k.String(pluginrequest.PropertyName)
	}
	cfg.Project.Plugins = compact(cfg.Project.Plugins)
	cfg.Packs.Paths = compact(cfg.Packs.Paths)
	cfg.Source = source
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) (string, error) {
	if path = strings.TrimSpace(path); path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return "", fmt.Errorf("config: load %s: %w", path, err)
		}
		return path, nil
	}

	candidates := []string{DefaultFile, os.ExpandEnv("$HOME/." + DefaultFile)}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := k.Load(file.Provider(candidate), toml.Parser()); err != nil {
			return "", fmt.Errorf("config: load %s: %w", candidate, err)
		}
		return candidate, nil
	}
	return "", nil
}

// envValue maps INITGEN_LOG_LEVEL to log.level. List keys take a comma
// separated value.
func envValue(key, value string) (string, any) {
	key = envKey(key)
	switch key {
	case KeyProjectPlugins, KeyPackPaths:
		return key, strings.Split(value, ",")
	}
	return key, value
}

// envKey maps INITGEN_LOG_LEVEL to log.level.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func nonEmpty(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		switch typed := value.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(typed) == "" {
				continue
			}
		case []string:
			if len(typed) == 0 {
				continue
			}
		}
		out[key] = value
	}
	return out
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

const sample = `# initgen configuration

[template]
# Plugins to activate before template discovery, as a comma separated
# list of id[:version] entries.
plugins = ""

[project]
# Plugins applied to every generated project.
plugins = ["org.initgen.basic"]

[packs]
# Directories holding template packs, or directories of packs.
paths = []

[log]
level = "info"    # debug, info, warn, error
format = "console" # console or json
`

// Init writes a sample configuration file to path. Existing files are kept.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: configuration file already exists at %s", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, []byte(sample), 0o644)
}
