// Package builtin ships the template pack that is always available.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-initgen/pkg/extension"
	"github.com/goliatone/go-initgen/pkg/pack"
)

// PluginID identifies the built-in plugin.
const PluginID = "org.initgen.basic"

//go:embed all:pack
var packFiles embed.FS

var (
	once    sync.Once
	loaded  *pack.Pack
	loadErr error
)

// FS exposes the embedded pack files.
func FS() fs.FS {
	sub, err := fs.Sub(packFiles, "pack")
	if err != nil {
		panic(fmt.Sprintf("builtin: embedded pack: %v", err))
	}
	return sub
}

// Plugin returns the built-in pack, loading it on first use.
func Plugin(options ...pack.Option) (*pack.Pack, error) {
	if len(options) > 0 {
		return pack.Load(FS(), "builtin", options...)
	}
	once.Do(func() {
		loaded, loadErr = pack.Load(FS(), "builtin")
	})
	return loaded, loadErr
}

// Register adds the built-in plugin to catalog.
func Register(catalog *extension.Catalog, options ...pack.Option) error {
	p, err := Plugin(options...)
	if err != nil {
		return err
	}
	return catalog.Register(p)
}
