// Package build implements the build command.
package build

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/pipeline"
)

// TargetAll runs every phase.
const TargetAll = "all"

var choices = []string{"Build All", "Build Icons", "Build Manifest", "Build Markdown", "Build NPM"}

// NewCommand creates the build command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "build [all|icons|manifest|markdown|package]",
		GroupID: "pipeline",
		Short:   "Build icons, manifest, markdown and the npm package",
		Long: `Build runs one phase or all of them in order:

  icons     optimize the source SVGs of the dev branch with svgo
  manifest  merge the published manifest with every fetched asset that has an icon
  markdown  render README.md and PREVIEW.md from the dev branch templates
  package   assemble the npm package

'all' stops at the first failing phase and keeps the output of the phases
that completed.`,
		Example: `  bit build            # choose interactively
  bit build all
  bit build manifest`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{TargetAll, "icons", "manifest", "markdown", "package", "npm"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return Run(cmd.Context(), app, cmd.OutOrStdout(), target)
		},
	}
}

// Run builds target. An empty target asks.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer, target string) error {
	if target == "" {
		choice, err := app.Prompter().Select("Select a build step", choices, choices[0])
		if err != nil {
			return err
		}
		target = strings.ToLower(strings.TrimPrefix(choice, "Build "))
	}

	var phases []pipeline.Phase
	if target == TargetAll {
		phases = pipeline.Phases()
	} else {
		p, err := pipeline.ParsePhase(target)
		if err != nil {
			return err
		}
		phases = []pipeline.Phase{p}
	}

	var opts []pipeline.Option
	for _, p := range phases {
		if p == pipeline.PhaseIcons {
			opt, err := app.Optimizer(ctx)
			if err != nil {
				return err
			}
			opts = append(opts, pipeline.WithOptimizer(opt))
			break
		}
	}
	b := app.Builder(opts...)

	report := func(r pipeline.PhaseResult) {
		fmt.Fprintf(out, "%s Build %s done (%d).\n", emoji.Success, r.Phase, r.Count)
	}

	if len(phases) > 1 {
		return b.BuildAll(ctx, report)
	}

	fmt.Fprintf(out, "Building %s...\n", phases[0])
	r, err := b.RunPhase(ctx, phases[0])
	if err != nil {
		fmt.Fprintf(out, "%s Build %s failed.\n", emoji.Error, phases[0])
		return err
	}
	report(r)
	return nil
}
