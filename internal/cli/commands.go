package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-initgen/internal/config"
	"github.com/goliatone/go-initgen/pkg/orchestrator"
	"github.com/goliatone/go-initgen/pkg/prompt"
)

func templatePluginsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "template-plugins",
		Usage: "Activate plugins before discovery, as `ID[:VERSION],...`",
	}
}

func (a *App) initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Generate a new project from a template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Template `ID` to generate",
			},
			&cli.StringSliceFlag{
				Name:    "param",
				Aliases: []string{"p"},
				Usage:   "Template parameter as `KEY=VALUE` (repeatable)",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Target `DIR`",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Prompt for the template and its parameters",
			},
			templatePluginsFlag(),
		},
		Action: a.runInit,
	}
}

func (a *App) runInit(c *cli.Context) error {
	env, err := a.setup(c)
	if err != nil {
		return err
	}

	values, err := parseParams(c.StringSlice("param"))
	if err != nil {
		return err
	}

	req := orchestrator.Request{
		TemplatePlugins: env.cfg.Template.Plugins,
		SpecID:          c.String("type"),
		Values:          values,
		Location:        c.String("dir"),
	}
	if c.Bool("interactive") {
		opts := []prompt.Option{prompt.WithPreset(values), prompt.WithSpecID(req.SpecID)}
		if a.driver != nil {
			opts = append(opts, prompt.WithPromptDriver(a.driver))
		}
		req.Selector = prompt.New(opts...)
	}

	result, err := env.orchestrator.Generate(c.Context, req)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case orchestrator.OutcomeNoTemplates:
		fmt.Fprintln(a.stdout, "No project templates available; nothing was generated.")
	default:
		fmt.Fprintf(a.stdout, "Generated %s in %s\n", result.Spec, result.Location)
	}
	return nil
}

func (a *App) templatesCommand() *cli.Command {
	return &cli.Command{
		Name:   "templates",
		Usage:  "List the templates offered by applied plugins",
		Flags:  []cli.Flag{templatePluginsFlag()},
		Action: a.runTemplates,
	}
}

func (a *App) runTemplates(c *cli.Context) error {
	env, err := a.setup(c)
	if err != nil {
		return err
	}

	reg, err := env.orchestrator.Templates(c.Context, env.cfg.Template.Plugins)
	if err != nil {
		return err
	}
	if !reg.TemplatesAvailable() {
		fmt.Fprintln(a.stdout, "No project templates available.")
		return nil
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, spec := range reg.AvailableTemplates() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", spec.ID(), spec.DisplayName(), spec.Description())
	}
	return w.Flush()
}

func (a *App) configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a sample configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   config.DefaultFile,
					},
				},
				Action: a.runConfigInit,
			},
		},
	}
}

func (a *App) runConfigInit(c *cli.Context) error {
	path := c.String("output")
	if err := config.Init(path); err != nil {
		return withCode(err, ExitConfig)
	}
	fmt.Fprintf(a.stdout, "Created configuration file at %s\n", path)
	return nil
}
