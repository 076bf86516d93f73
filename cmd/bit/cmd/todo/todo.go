// Package todo implements the todo command.
package todo

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/output"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
)

// NewCommand creates the todo command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "todo",
		GroupID: "pipeline",
		Short:   "List assets without a published icon",
		Long: `Todo compares the fetched assets with the published manifest and lists,
per category, every asset that has no icon yet.

Requires 'bit clone' and 'bit fetch'. Use --format json or yaml for
machine readable output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// Run prints the todo report.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer) error {
	reports, err := app.Builder().Todo(ctx)
	if err != nil {
		return err
	}

	switch format := output.Format(app.OutputFormat()); format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(out, reports)
	}

	for _, r := range reports {
		Print(out, r)
	}
	return nil
}

// Print writes one category report.
func Print(out io.Writer, r assets.Report) {
	fmt.Fprintf(out, "\n%s %s\n\n", emoji.Info, r.Category.Plural())
	for _, m := range r.Missing {
		if m.Grapheme != "" {
			fmt.Fprintf(out, "%s %s  %s  %s\n", emoji.Pending, m.Coin, m.Name, m.Grapheme)
			continue
		}
		fmt.Fprintf(out, "%s %s  %s\n", emoji.Pending, m.Coin, m.Name)
	}
	if r.Done() {
		fmt.Fprintf(out, "%s Awesome!\n   Nothing to do here.\n", emoji.Done)
	}
	fmt.Fprintf(out, "\n%s Displayed %d of %d\n", emoji.Counter, len(r.Missing), r.Total)
}
