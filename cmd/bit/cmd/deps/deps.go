// Package deps implements the deps command.
package deps

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/emoji"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/output"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/deps"
)

// Result is the check outcome of one tool.
type Result struct {
	Name       string `json:"name" yaml:"name"`
	Ready      bool   `json:"ready" yaml:"ready"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	MinVersion string `json:"min_version,omitempty" yaml:"min_version,omitempty"`
	Problem    string `json:"problem,omitempty" yaml:"problem,omitempty"`
	Install    string `json:"install,omitempty" yaml:"install,omitempty"`
}

// NewCommand creates the deps command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "deps",
		GroupID: "config",
		Short:   "Check the external tools bit needs",
		Long: `Deps checks that the external tools bit shells out to are installed
and recent enough. 'bit build icons' needs svgo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := Run(cmd.Context(), app, cmd.OutOrStdout())
			return err
		},
	}
}

// Check runs every dependency check. A tool whose version cannot be
// detected counts as ready.
func Check(ctx context.Context, list []deps.Dependency) []Result {
	results := make([]Result, 0, len(list))
	for _, dep := range list {
		st := deps.Check(ctx, dep)
		r := Result{
			Name:       dep.DisplayName,
			Ready:      st.Available && (st.Version == "" || st.CheckError == nil),
			Path:       st.Path,
			Version:    st.Version,
			MinVersion: dep.MinVersion,
		}
		if st.CheckError != nil {
			r.Problem = st.CheckError.Error()
		}
		if !r.Ready {
			r.Install = dep.InstallHint
		}
		results = append(results, r)
	}
	return results
}

// Run prints the dependency status.
func Run(ctx context.Context, app appcontext.Interface, out io.Writer) ([]Result, error) {
	results := Check(ctx, app.Dependencies())

	format := output.Format(app.OutputFormat())
	if format == output.FormatJSON || format == output.FormatYAML {
		return results, output.NewFormatter(format).Format(out, results)
	}

	missing := 0
	data := output.Data{Headers: []string{"Dependency", "Status", "Version", "Path"}}
	for _, r := range results {
		status := emoji.Success + " Available"
		if !r.Ready {
			status = emoji.Error + " Missing"
			missing++
		}
		data.Rows = append(data.Rows, []string{r.Name, status, r.Version, r.Path})
	}

	if missing > 0 {
		fmt.Fprintf(out, "%s Required dependencies are missing. 'bit build icons' will fail.\n\n", emoji.Error)
	} else {
		fmt.Fprintf(out, "%s All required dependencies are available.\n\n", emoji.Success)
	}
	if err := output.NewFormatter(output.FormatTable).Format(out, data); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Ready {
			continue
		}
		fmt.Fprintf(out, "\nMissing Dependency: %s\n", r.Name)
		if r.Problem != "" {
			fmt.Fprintf(out, "  Problem: %s\n", r.Problem)
		}
		if r.Install != "" {
			fmt.Fprintf(out, "  Install: %s\n", r.Install)
		}
	}
	return results, nil
}
