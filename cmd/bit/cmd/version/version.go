// Package version implements the version command.
package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/output"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
)

// Info is the build information of the binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewInfo fills in the runtime fields.
func NewInfo(version, commit, date string) Info {
	return Info{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// NewCommand creates the version command. format returns the --format
// value at run time.
func NewCommand(info Info, format func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Print(cmd.OutOrStdout(), info, output.Format(format()))
		},
	}
}

// Print writes info as text, json or yaml.
func Print(out io.Writer, info Info, format output.Format) error {
	if format == output.FormatJSON || format == output.FormatYAML {
		return output.NewFormatter(format).Format(out, info)
	}
	fmt.Fprintf(out, "%s version %s\n", constants.AppName, info.Version)
	fmt.Fprintf(out, "commit: %s\n", info.Commit)
	fmt.Fprintf(out, "built: %s\n", info.Date)
	fmt.Fprintf(out, "go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "platform: %s\n", info.Platform)
	return nil
}
