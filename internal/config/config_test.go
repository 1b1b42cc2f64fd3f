package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-initgen/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "initgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Template.Plugins)
	assert.Equal(t, []string{"org.initgen.basic"}, cfg.Project.Plugins)
	assert.Empty(t, cfg.Packs.Paths)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Source)
}

func TestLoad_FileThenEnvThenOverrides(t *testing.T) {
	path := writeConfig(t, `
[template]
plugins = "org.example.a:1.0"

[project]
plugins = ["org.initgen.basic", "org.example.b"]

[packs]
paths = ["./packs"]

[log]
level = "debug"
format = "json"
`)

	t.Setenv("INITGEN_LOG_LEVEL", "warn")

	cfg, err := config.Load(path, map[string]any{
		config.KeyTemplatePlugins: "org.example.c",
		config.KeyLogFormat:       "",
	})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "org.example.c", cfg.Template.Plugins)
	assert.Equal(t, []string{"org.initgen.basic", "org.example.b"}, cfg.Project.Plugins)
	assert.Equal(t, []string{"./packs"}, cfg.Packs.Paths)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "empty overrides must not clear file values")
}

func TestLoad_EnvListValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INITGEN_PACKS_PATHS", "one,two")
	t.Setenv("INITGEN_PROJECT_PLUGINS", "org.initgen.basic, org.example.extra,")
	t.Setenv("INITGEN_TEMPLATE_PLUGINS", "org.example.env")

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, cfg.Packs.Paths)
	assert.Equal(t, []string{"org.initgen.basic", "org.example.extra"}, cfg.Project.Plugins)
	assert.Equal(t, "org.example.env", cfg.Template.Plugins)
}

func TestLoad_LegacyPropertyName(t *testing.T) {
	path := writeConfig(t, `
[org.gradle.internal.buildinit.template]
plugins = "org.example.legacy"
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "org.example.legacy", cfg.Template.Plugins)
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte("[log]\nlevel = \"error\"\n"), 0o644))

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, config.DefaultFile, cfg.Source)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "initgen.toml")
	require.NoError(t, config.Init(path))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.initgen.basic"}, cfg.Project.Plugins)
	assert.Equal(t, "info", cfg.Log.Level)

	err = config.Init(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
