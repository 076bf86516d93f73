package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

func TestMeetsMinVersion(t *testing.T) {
	tests := []struct {
		detected, required string
		want               bool
	}{
		{"3.0.0", "3.0.0", true},
		{"3.2.1", "3.0.0", true},
		{"10.0.0", "3.0.0", true},
		{"2.8.0", "3.0.0", false},
		{"v3.1", "3.0.0", true},
		{"3.0", "3.0.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.detected+">="+tt.required, func(t *testing.T) {
			assert.Equal(t, tt.want, meetsMinVersion(tt.detected, tt.required))
		})
	}
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, "3.2.0", extractVersion("3.2.0\n"))
	assert.Equal(t, "1.2.3", extractVersion("tool version v1.2.3 (linux)"))
	assert.Equal(t, "", extractVersion("unknown"))
}

func fakeTool(t *testing.T, version string) string {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\necho " + version + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faketool"), []byte(script), 0o755))
	t.Setenv("PATH", dir)
	return dir
}

func TestRequire(t *testing.T) {
	dep := Dependency{Name: "faketool", DisplayName: "Fake", CheckCommands: []string{"faketool"}, MinVersion: "3.0.0", InstallHint: "Install it."}

	t.Run("available", func(t *testing.T) {
		dir := fakeTool(t, "3.1.0")
		path, err := Require(context.Background(), dep)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "faketool"), path)
	})

	t.Run("too old", func(t *testing.T) {
		fakeTool(t, "2.0.0")
		_, err := Require(context.Background(), dep)
		var depErr *errors.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, "Fake >= 3.0.0", depErr.Dependency)
		assert.Contains(t, depErr.Err.Error(), "requires 3.0.0")
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		_, err := Require(context.Background(), dep)
		assert.True(t, errors.IsMissingDependency(err))
		assert.Contains(t, err.Error(), "Install it.")
	})
}
