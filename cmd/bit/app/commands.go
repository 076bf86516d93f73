package app

import (
	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/build"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/clone"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/completion"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/deps"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/fetch"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/guide"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/release"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/setup"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/todo"
	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/version"
)

func (a *App) registerCommands(root *cobra.Command) {
	// Pipeline commands, in workflow order
	root.AddCommand(clone.NewCommand(a))
	root.AddCommand(fetch.NewCommand(a))
	root.AddCommand(todo.NewCommand(a))
	root.AddCommand(build.NewCommand(a))
	root.AddCommand(release.NewCommand(a))

	// Setup commands
	root.AddCommand(setup.NewCommand(a))
	root.AddCommand(guide.NewCommand(a))
	root.AddCommand(deps.NewCommand(a))

	// Ungrouped
	root.AddCommand(version.NewCommand(version.NewInfo(a.version, a.commit, a.date), a.OutputFormat))
	root.AddCommand(completion.NewCommand())
}
