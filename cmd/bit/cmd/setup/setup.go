// Package setup implements the setup command.
package setup

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/exchange"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/settings"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

var credentialPattern = regexp.MustCompile(`^[A-Za-z0-9]{64}$`)

// ValidateCredential accepts 64 alphanumeric characters.
func ValidateCredential(field string) func(string) error {
	return func(v string) error {
		if !credentialPattern.MatchString(v) {
			return errors.NewValidationError(field, "", "Please enter a valid "+field)
		}
		return nil
	}
}

// NewCommand creates the setup command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		GroupID: "config",
		Short:   "Save a read-only exchange API key",
		Long: `Setup asks for an exchange API key and secret, shows the permissions of
the key and saves both to the settings file.

The key is needed to list every wallet asset, delisted ones included.
Use a key with read-only permissions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// Run asks for credentials until the operator saves a pair.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer) error {
	store, err := app.Settings()
	if err != nil {
		return err
	}
	p := app.Prompter()

	fmt.Fprintln(out, "Please enter the API key & secret with read-only access permissions")
	fmt.Fprintln(out, "This is necessary to get all wallet assets, even delisted ones")
	fmt.Fprintln(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		key, err := p.Password("Enter the Binance API Key", ValidateCredential("API Key"))
		if err != nil {
			return err
		}
		secret, err := p.Password("Enter the Binance API Secret", ValidateCredential("API Secret"))
		if err != nil {
			return err
		}

		client, err := app.Exchange(key, secret)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Checking restrictions...")
		r, err := client.FetchRestrictions(ctx)
		if err != nil {
			return err
		}
		PrintRestrictions(out, r)

		save, err := p.Confirm("Save your credentials to the configuration file?", false)
		if err != nil {
			return err
		}
		if !save {
			fmt.Fprintln(out)
			continue
		}

		if err := store.Sets(map[string]any{
			settings.KeyAPIKey: key,
			settings.KeySecret: secret,
			settings.KeySetup:  true,
			settings.KeyUnsafe: r.Unsafe(),
		}); err != nil {
			return err
		}
		app.Logger().Debug().Str("path", store.Path()).Bool("unsafe", r.Unsafe()).Msg("Saved credentials")
		fmt.Fprintf(out, "\n%s The configuration file was successfully saved\n", emoji.Success)
		return nil
	}
}

// PrintRestrictions prints the permission checklist. Reading must be
// enabled; every other permission should be disabled.
func PrintRestrictions(out io.Writer, r *exchange.Restrictions) {
	mark := func(ok bool) string {
		if ok {
			return emoji.Success
		}
		return emoji.Error
	}
	rows := []struct {
		label string
		ok    bool
	}{
		{"Reading:", r.EnableReading},
		{"Spot and Margin Trading:", !r.EnableSpotAndMarginTrading},
		{"Margin:", !r.EnableMargin},
		{"Futures:", !r.EnableFutures},
		{"Vanilla Options:", !r.EnableVanillaOptions},
		{"Internal Transfer:", !r.EnableInternalTransfer},
		{"Permits Universal Transfer:", !r.PermitsUniversalTransfer},
		{"Withdrawals:", !r.EnableWithdrawals},
	}
	fmt.Fprintln(out, "? Restrictions Checklist")
	for _, row := range rows {
		fmt.Fprintf(out, "%-27s %s\n", row.label, mark(row.ok))
	}
}
