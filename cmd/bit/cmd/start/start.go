// Package start implements the interactive menu bit opens when it runs
// without a subcommand.
package start

import (
	"context"
	"fmt"
	"io"

	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/build"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/clone"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/fetch"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/guide"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/release"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/setup"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/todo"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/settings"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Menu entries.
const (
	ItemGuide   = "Guide"
	ItemClone   = "Clone"
	ItemFetch   = "Fetch"
	ItemTodo    = "Todo"
	ItemBuild   = "Build"
	ItemRelease = "Release"
	ItemSetup   = "Setup"
	ItemExit    = "Exit"
)

// Items is the menu in display order.
var Items = []string{ItemGuide, ItemClone, ItemFetch, ItemTodo, ItemBuild, ItemRelease, ItemSetup, ItemExit}

// Banner is printed above the menu.
const Banner = `
  ┌─┐ ┬ ┌┬┐
  ├┴┐ │  │   Binance icons toolkit
  └─┘ ┴  ┴
`

// Run opens the menu. Without saved credentials it runs setup and
// returns. Missing prerequisites are reported and the menu continues;
// any other error ends the session.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer) error {
	fmt.Fprint(out, Banner)

	store, err := app.Settings()
	if err != nil {
		var cfgErr *errors.ConfigError
		if !errors.As(err, &cfgErr) {
			return err
		}
		fmt.Fprintf(out, "%s Failed to read config file.\n\n", emoji.Error)
		app.Logger().Warn().Err(err).Msg("Discarding unreadable settings")
		if store, err = settings.Discard(app.Layout().Settings()); err != nil {
			return err
		}
	}

	if !store.IsSetup() {
		return setup.Run(ctx, app, out)
	}
	if store.GetBool(settings.KeyUnsafe) {
		fmt.Fprintf(out, "\n%s USE THE API KEY WITH READ-ONLY PERMISSIONS!\n\n", emoji.Warning)
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.ErrCanceled
		}
		choice, err := app.Prompter().Select("Select a Command", Items, Items[0])
		if err != nil {
			return err
		}
		if choice == ItemExit {
			return nil
		}

		err = dispatch(ctx, app, out, choice)
		switch {
		case err == nil:
		case errors.IsMissingDependency(err):
			fmt.Fprintf(out, "%s %v\n", emoji.Error, err)
		default:
			return err
		}
		fmt.Fprintln(out)
	}
}

func dispatch(ctx context.Context, app appcontext.Interface, out io.Writer, choice string) error {
	switch choice {
	case ItemGuide:
		return guide.Run(out, app)
	case ItemClone:
		// the menu always replaces earlier checkouts
		return clone.Run(ctx, app, out, clone.Options{Depth: constants.CloneDepth, Force: true})
	case ItemFetch:
		_, err := fetch.Run(ctx, app, out)
		return err
	case ItemTodo:
		return todo.Run(ctx, app, out)
	case ItemBuild:
		return build.Run(ctx, app, out, "")
	case ItemRelease:
		_, err := release.Run(ctx, app, out)
		return err
	case ItemSetup:
		return setup.Run(ctx, app, out)
	}
	return errors.NewValidationError("command", choice, "unknown menu entry")
}
