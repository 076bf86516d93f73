// Package release implements the release command.
package release

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/output"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/pipeline"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
)

// NewCommand creates the release command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "release",
		GroupID: "pipeline",
		Short:   "Copy the build output into a clean release directory",
		Long: `Release empties the release directory and copies the generated icons,
manifest.json, README.md and PREVIEW.md into it. ETF icons are released
into the crypto directory. RELEASE_NOTES.md lists the icons added since
the published manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := Run(cmd.Context(), app, cmd.OutOrStdout())
			return err
		},
	}
}

// Run creates the release.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer) (*pipeline.ReleaseResult, error) {
	res, err := app.Builder().Release(ctx)
	if err != nil {
		return nil, err
	}

	data := output.Data{
		Headers:         []string{"Category", "Added"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
	for _, c := range assets.Categories() {
		data.Rows = append(data.Rows, []string{c.Title(), strconv.Itoa(len(res.Added[c]))})
	}
	format := output.Format(app.OutputFormat())
	if format == output.FormatJSON || format == output.FormatYAML {
		return res, output.NewFormatter(format).Format(out, res)
	}
	if err := output.NewFormatter(output.FormatTable).Format(out, data); err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "%s Release done\n", emoji.Success)
	fmt.Fprintf(out, "  Can be found here: %s\n", res.Dir)
	return res, nil
}
