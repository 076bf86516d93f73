package deps

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/deps"
)

var (
	shell = deps.Dependency{Name: "sh", DisplayName: "Shell", CheckCommands: []string{"sh"}}
	ghost = deps.Dependency{
		Name:          "ghost",
		DisplayName:   "Ghost",
		CheckCommands: []string{"bit-test-no-such-tool"},
		InstallHint:   "Install it with 'npm install -g ghost'.",
	}
)

func TestCheck(t *testing.T) {
	results := Check(context.Background(), []deps.Dependency{shell, ghost})
	require.Len(t, results, 2)

	assert.True(t, results[0].Ready)
	assert.NotEmpty(t, results[0].Path)
	assert.Empty(t, results[0].Install)

	assert.False(t, results[1].Ready)
	assert.Contains(t, results[1].Problem, "Ghost not found in PATH")
	assert.Equal(t, ghost.InstallHint, results[1].Install)
}

func TestRunTable(t *testing.T) {
	app := &appcontext.Mock{LayoutRoot: t.TempDir(), Deps: []deps.Dependency{shell, ghost}}

	var out bytes.Buffer
	_, err := Run(context.Background(), app, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✗ Required dependencies are missing.")
	assert.Contains(t, out.String(), "Missing Dependency: Ghost")
	assert.Contains(t, out.String(), "Install: Install it with 'npm install -g ghost'.")
}

func TestRunAllAvailable(t *testing.T) {
	app := &appcontext.Mock{LayoutRoot: t.TempDir(), Deps: []deps.Dependency{shell}}

	var out bytes.Buffer
	_, err := Run(context.Background(), app, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ All required dependencies are available.")
	assert.NotContains(t, out.String(), "Missing Dependency")
}

func TestRunJSON(t *testing.T) {
	app := &appcontext.Mock{LayoutRoot: t.TempDir(), Format: "json", Deps: []deps.Dependency{ghost}}

	var out bytes.Buffer
	_, err := Run(context.Background(), app, &out)
	require.NoError(t, err)

	var got []Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Ghost", got[0].Name)
	assert.False(t, got[0].Ready)
}
