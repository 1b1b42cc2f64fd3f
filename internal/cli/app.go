// Package cli wires configuration, logging, plugin discovery and the
// orchestrator into the initgen command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-initgen/internal/config"
	"github.com/goliatone/go-initgen/internal/logging"
	"github.com/goliatone/go-initgen/pkg/builtin"
	"github.com/goliatone/go-initgen/pkg/extension"
	"github.com/goliatone/go-initgen/pkg/orchestrator"
	"github.com/goliatone/go-initgen/pkg/pack"
	"github.com/goliatone/go-initgen/pkg/project"
	"github.com/goliatone/go-initgen/pkg/prompt"
)

// Version is reported by --version.
var Version = "0.1.0"

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitConfig   = 2
	ExitInternal = 70
)

// Option customises the application.
type Option func(*App)

// WithOutput redirects regular and diagnostic output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// WithPromptDriver replaces the terminal prompt driver used by --interactive.
func WithPromptDriver(driver prompt.PromptDriver) Option {
	return func(a *App) {
		a.driver = driver
	}
}

// WithPlugins registers extra plugins next to the built-in one and any
// configured packs.
func WithPlugins(plugins ...extension.Plugin) Option {
	return func(a *App) {
		a.plugins = append(a.plugins, plugins...)
	}
}

// App holds the dependencies shared by every command.
type App struct {
	stdout  io.Writer
	stderr  io.Writer
	driver  prompt.PromptDriver
	plugins []extension.Plugin
}

// New constructs an App writing to the process streams by default.
func New(options ...Option) *App {
	a := &App{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Run executes args and returns the process exit code. Errors are printed to
// the diagnostic stream.
func (a *App) Run(ctx context.Context, args []string) int {
	err := a.cliApp().RunContext(ctx, args)
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(a.stderr, "Error: %s\n", err)
	return ExitCode(err)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var coder cli.ExitCoder
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &coder):
		return coder.ExitCode()
	case project.IsConfig(err):
		return ExitConfig
	case project.IsInternal(err):
		return ExitInternal
	default:
		return ExitFailure
	}
}

func (a *App) cliApp() *cli.App {
	return &cli.App{
		Name:           "initgen",
		Usage:          "Generate new projects from plugin-contributed templates",
		Version:        Version,
		Writer:         a.stdout,
		ErrWriter:      a.stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
				EnvVars: []string{"INITGEN_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  "pack",
				Usage: "Load template packs from `DIR` (repeatable)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: console or json",
			},
		},
		Commands: []*cli.Command{
			a.initCommand(),
			a.templatesCommand(),
			a.configCommand(),
		},
	}
}

type environment struct {
	cfg          *config.Config
	logger       zerolog.Logger
	orchestrator *orchestrator.Orchestrator
}

func (a *App) setup(c *cli.Context) (*environment, error) {
	cfg, err := config.Load(c.String("config"), map[string]any{
		config.KeyTemplatePlugins: c.String("template-plugins"),
		config.KeyPackPaths:       c.StringSlice("pack"),
		config.KeyLogLevel:        c.String("log-level"),
		config.KeyLogFormat:       c.String("log-format"),
	})
	if err != nil {
		return nil, withCode(err, ExitConfig)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, a.stderr)
	if err != nil {
		return nil, withCode(err, ExitConfig)
	}
	if cfg.Source != "" {
		logger.Debug().Str("path", cfg.Source).Msg("Loaded configuration")
	}

	catalog, err := a.catalog(cfg, logger)
	if err != nil {
		return nil, err
	}

	orch := orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithAppliedPlugins(cfg.Project.Plugins...),
		orchestrator.WithLogger(logger),
	)
	return &environment{cfg: cfg, logger: logger, orchestrator: orch}, nil
}

func (a *App) catalog(cfg *config.Config, logger zerolog.Logger) (*extension.Catalog, error) {
	catalog := extension.NewCatalog()
	if err := builtin.Register(catalog, pack.WithLogger(logger)); err != nil {
		return nil, fmt.Errorf("cli: register built-in plugin: %w", err)
	}

	packs, err := pack.LoadDirs(cfg.Packs.Paths, pack.WithLogger(logger))
	if err != nil {
		return nil, withCode(err, ExitConfig)
	}
	for _, p := range packs {
		if err := catalog.Register(p); err != nil {
			return nil, withCode(err, ExitConfig)
		}
		logger.Debug().Str("plugin", p.ID()).Str("source", p.Source()).Msg("Registered template pack")
	}

	for _, plugin := range a.plugins {
		if err := catalog.Register(plugin); err != nil {
			return nil, fmt.Errorf("cli: register plugin: %w", err)
		}
	}
	return catalog, nil
}

// parseParams turns repeated key=value flags into a map.
func parseParams(raw []string) (map[string]string, error) {
	values := make(map[string]string, len(raw))
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &project.ConfigError{
				Subject: fmt.Sprintf("parameter %q", entry),
				Reason:  "expected key=value",
			}
		}
		values[key] = value
	}
	return values, nil
}

type exitError struct {
	err  error
	code int
}

func withCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitError{err: err, code: code}
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }
