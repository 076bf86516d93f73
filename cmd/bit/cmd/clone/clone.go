// Package clone implements the clone command.
package clone

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/paths"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/repository"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Targets.
const (
	TargetAll  = "all"
	TargetMain = constants.MainBranch
	TargetDev  = constants.DevBranch
)

// Options controls Run.
type Options struct {
	// Target is all, main or dev. Empty asks.
	Target string
	Depth  int
	// Force removes existing checkouts without asking.
	Force bool
}

// Branches returns the branches of target.
func Branches(target string) ([]string, error) {
	switch strings.ToLower(target) {
	case TargetAll:
		return []string{constants.MainBranch, constants.DevBranch}, nil
	case TargetMain:
		return []string{constants.MainBranch}, nil
	case TargetDev:
		return []string{constants.DevBranch}, nil
	}
	return nil, errors.NewValidationError("target", target, "target must be one of all, main, dev")
}

// NewCommand creates the clone command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	opts := Options{}
	cmd := &cobra.Command{
		Use:     "clone [all|main|dev]",
		GroupID: "pipeline",
		Short:   "Clone the icons repository branches",
		Long: `Clone checks out the published (main) and sources (dev) branches of the
icons repository into the application directory.

The main branch provides the published manifest; the dev branch provides
the source icons and the README/PREVIEW templates.`,
		Example: `  bit clone            # choose interactively
  bit clone all --force
  bit clone dev`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{TargetAll, TargetMain, TargetDev},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Target = args[0]
			}
			return Run(cmd.Context(), app, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.Depth, "depth", constants.CloneDepth, "history depth, 0 for full history")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "replace existing checkouts without asking")
	return cmd
}

// Run clones the selected branches.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer, opts Options) error {
	target := opts.Target
	if target == "" {
		choice, err := app.Prompter().Select("Select a branch", []string{"All", "Main", "Dev"}, "All")
		if err != nil {
			return err
		}
		target = strings.ToLower(choice)
	}
	branches, err := Branches(target)
	if err != nil {
		return err
	}

	cloner := app.Cloner()
	layout := app.Layout()
	for _, branch := range branches {
		if err := cloneOne(ctx, app, cloner, layout, out, branch, opts); err != nil {
			return err
		}
	}
	return nil
}

func cloneOne(ctx context.Context, app appcontext.Interface, cloner appcontext.Cloner, layout paths.Layout, out io.Writer, branch string, opts Options) error {
	fmt.Fprintf(out, "%s Selected branch: %s\n", emoji.Success, branch)

	dir := layout.Branch(branch)
	overwrite := opts.Force
	if !overwrite && paths.Exists(dir) {
		ok, err := app.Prompter().Confirm(fmt.Sprintf("Remove the previously cloned %s repository directory?", branch), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "%s Skipped %s.\n", emoji.Info, branch)
			return nil
		}
		overwrite = true
	}

	fmt.Fprintf(out, "Cloning '%s'...\n", branch)
	var progress io.Writer
	if app.Logger().GetLevel() <= zerolog.DebugLevel {
		progress = out
	}
	res, err := cloner.Clone(ctx, dir, branch, repository.CloneOptions{
		Depth:     opts.Depth,
		Overwrite: overwrite,
		Progress:  progress,
	})
	if err != nil {
		return err
	}

	app.Logger().Info().Str("branch", res.Branch).Str("head", res.Head).Str("dir", res.Dir).Msg("Cloned branch")
	fmt.Fprintf(out, "%s The %s branch was successfully cloned.\n", emoji.Success, branch)
	return nil
}
