// Package fetch implements the fetch command.
package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/pipeline"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// NewCommand creates the fetch command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "fetch",
		GroupID: "pipeline",
		Short:   "Fetch every wallet asset from the exchange",
		Long: `Fetch downloads every wallet asset of the configured account, ETF tokens
included, classifies them into crypto, etf and currency and writes the
intermediate files of the generated directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := Run(cmd.Context(), app, cmd.OutOrStdout())
			return err
		},
	}
}

// Run fetches and classifies the asset feed.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer) (*pipeline.FetchResult, error) {
	store, err := app.Settings()
	if err != nil {
		return nil, err
	}
	key, secret, err := store.Credentials()
	if err != nil {
		return nil, fmt.Errorf("API key or secret is not set. Run 'bit setup' first: %w", err)
	}
	client, err := app.Exchange(key, secret)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Fetching assets...")
	res, err := app.Builder().Fetch(ctx, client)
	if err != nil {
		if errors.IsAPIKeyError(err) {
			return nil, fmt.Errorf("the exchange rejected the API key. Run 'bit setup' again: %w", err)
		}
		return nil, err
	}

	fmt.Fprintf(out, "%s Extracted Assets\n", emoji.Info)
	for _, c := range assets.Categories() {
		fmt.Fprintf(out, "%s %s: %d\n", emoji.Success, c.Title(), res.Counts[c])
	}
	if len(res.Issues) > 0 {
		fmt.Fprintf(out, "%s %d malformed records, see the log\n", emoji.Warning, len(res.Issues))
	}
	return res, nil
}
