// Package guide implements the guide command.
package guide

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
)

//go:embed guide.md
var guide string

// Markdown returns the raw guide.
func Markdown() string { return guide }

// NewCommand creates the guide command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:     "guide",
		GroupID: "config",
		Short:   "Show the maintainer workflow",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if raw {
				_, err := io.WriteString(cmd.OutOrStdout(), guide)
				return err
			}
			return Run(cmd.OutOrStdout(), app)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown source")
	return cmd
}

// Run renders the guide for the terminal.
func Run(out io.Writer, app appcontext.Interface) error {
	width := 80
	style := glamour.WithStandardStyle("notty")
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 20 {
			width = min(w, 100)
		}
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return err
	}
	rendered, err := r.Render(guide)
	if err != nil {
		app.Logger().Debug().Err(err).Msg("Rendering guide failed, printing markdown")
		rendered = guide
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
