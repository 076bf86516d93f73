package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/cmd/start"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/output"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/logging"
)

// Execute runs bit with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.createRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Binance icons toolkit",
		Version: a.version,
		Long: `bit keeps the Binance icons repository up to date.

It fetches every wallet asset of the exchange, lists the assets that
still need an icon, optimizes the icon sources, merges them into the
manifest, renders the README and PREVIEW tables and prepares a release.

Run without a command to open the interactive menu.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return start.Run(cmd.Context(), a, cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: "pipeline", Title: "Pipeline Commands:"},
		&cobra.Group{ID: "config", Title: "Setup Commands:"},
	)

	root.PersistentFlags().String("config", "", "config file (default is $HOME/.bit.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	root.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	root.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml")
	root.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	root.PersistentFlags().String("home", "", "application directory (default is $HOME/"+constants.AppDirName+")")

	root.SetVersionTemplate(constants.AppName + " {{.Version}}\n")

	a.registerCommands(root)
	return root
}

// setupCommand reloads the config file named by --config, applies flags,
// rebuilds the logger and tags the command context with a run id.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}
	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)
	if flags.Changed("home") {
		a.config.Home = mustGetString(cmd, "home")
	}
	if err := a.resolveLayout(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	ctx := logging.WithRunID(logging.WithLogger(cmd.Context(), a.logger))
	a.logger = logging.FromContext(ctx)
	cmd.SetContext(ctx)

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("home", a.layout.Root).
		Msg("Starting")
	return nil
}

// ExitOnError prints err with a hint for known failures and exits 1.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	PrintError(os.Stderr, err)
	os.Exit(1)
}

// PrintError writes a one line description of err.
func PrintError(w io.Writer, err error) {
	switch {
	case errors.IsCanceled(err) || errors.Is(err, context.Canceled):
		fmt.Fprintf(w, "%s Operation cancelled\n", emoji.Error)
	case errors.Is(err, errors.ErrAPIKeyRequired):
		fmt.Fprintf(w, "%s API key or secret is not set. Run 'bit setup' first.\n", emoji.Error)
	case errors.Is(err, errors.ErrRateLimited):
		fmt.Fprintf(w, "%s %v\n  The exchange rate limit was hit, try again later.\n", emoji.Error, err)
	default:
		fmt.Fprintf(w, "%s %v\n", emoji.Error, err)
	}
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
