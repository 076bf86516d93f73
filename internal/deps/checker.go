// Package deps checks that external tools bit shells out to are installed.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Dependency describes an external command.
type Dependency struct {
	Name          string
	DisplayName   string
	CheckCommands []string // tried in order
	MinVersion    string
	InstallHint   string
}

// Status is the result of a check.
type Status struct {
	Available  bool
	Path       string
	Version    string
	CheckError error
}

// SVGO is the SVG optimizer used to build icons.
var SVGO = Dependency{
	Name:          "svgo",
	DisplayName:   "SVGO",
	CheckCommands: []string{"svgo"},
	MinVersion:    "3.0.0",
	InstallHint:   "Install it with 'npm install -g svgo'.",
}

// Check verifies if a dependency is available on the system.
// The first command found in PATH wins.
func Check(ctx context.Context, dep Dependency) Status {
	var status Status
	for _, name := range dep.CheckCommands {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		status.Available = true
		status.Path = path

		if dep.MinVersion != "" {
			version, err := getVersion(ctx, path)
			switch {
			case err != nil:
				status.CheckError = fmt.Errorf("found %s but could not detect version: %w", name, err)
			case !meetsMinVersion(version, dep.MinVersion):
				status.Version = version
				status.CheckError = fmt.Errorf("found %s version %s but requires %s or later", name, version, dep.MinVersion)
			default:
				status.Version = version
			}
		}
		return status
	}

	if len(dep.CheckCommands) > 0 {
		status.CheckError = fmt.Errorf("%s not found in PATH (tried: %s)", dep.DisplayName, strings.Join(dep.CheckCommands, ", "))
	}
	return status
}

// Require returns the path of dep or a *errors.DependencyError.
// A version that cannot be detected is accepted.
func Require(ctx context.Context, dep Dependency) (string, error) {
	status := Check(ctx, dep)
	if !status.Available {
		return "", errors.NewDependencyError(dep.DisplayName, "", dep.InstallHint, status.CheckError)
	}
	if status.Version != "" && status.CheckError != nil {
		return "", errors.NewDependencyError(dep.DisplayName+" >= "+dep.MinVersion, status.Path, dep.InstallHint, status.CheckError)
	}
	return status.Path, nil
}

func getVersion(ctx context.Context, cmdName string) (string, error) {
	for _, flag := range []string{"--version", "-v", "version"} {
		//nolint:gosec // cmdName comes from a fixed Dependency definition
		out, err := exec.CommandContext(ctx, cmdName, flag).CombinedOutput()
		if err != nil {
			continue
		}
		if v := extractVersion(string(out)); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("could not determine version")
}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

func extractVersion(output string) string {
	if m := versionPattern.FindStringSubmatch(output); len(m) > 1 {
		return m[1]
	}
	return ""
}

// meetsMinVersion compares dotted numeric versions.
func meetsMinVersion(detected, required string) bool {
	d := strings.Split(strings.TrimPrefix(detected, "v"), ".")
	r := strings.Split(strings.TrimPrefix(required, "v"), ".")
	for i := 0; i < len(r); i++ {
		var dv int
		if i < len(d) {
			dv, _ = strconv.Atoi(d[i])
		}
		rv, _ := strconv.Atoi(r[i])
		if dv != rv {
			return dv > rv
		}
	}
	return true
}
