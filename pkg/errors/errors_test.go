package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("branch", "main")
	assert.Equal(t, "branch main not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))

	wrapped := fmt.Errorf("clone: %w", err)
	assert.True(t, pkgerrors.IsNotFound(wrapped))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("key", "", "must be 64 alphanumeric characters")
		assert.Equal(t, "validation failed for field key: must be 64 alphanumeric characters", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "manifest not sorted"}
		assert.Equal(t, "validation failed: manifest not sorted", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    *pkgerrors.APIError
		target error
		want   bool
	}{
		{"rate limited", &pkgerrors.APIError{Service: "binance", StatusCode: 429}, pkgerrors.ErrRateLimited, true},
		{"ip banned", &pkgerrors.APIError{Service: "binance", StatusCode: 418}, pkgerrors.ErrRateLimited, true},
		{"bad key code", &pkgerrors.APIError{Service: "binance", StatusCode: 400, Code: -2014}, pkgerrors.ErrAPIKeyInvalid, true},
		{"unavailable", &pkgerrors.APIError{Service: "binance", StatusCode: 503}, pkgerrors.ErrUnavailable, true},
		{"plain bad request", &pkgerrors.APIError{Service: "binance", StatusCode: 400}, pkgerrors.ErrRateLimited, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}

	t.Run("message", func(t *testing.T) {
		err := &pkgerrors.APIError{Service: "binance", StatusCode: 400, Code: -1022, Message: "Signature for this request is not valid."}
		assert.Equal(t, "API error from binance (status 400) [code -1022]: Signature for this request is not valid.", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.APIError{Service: "binance", Message: "request failed", Err: base}
		assert.ErrorIs(t, err, base)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestDependencyError(t *testing.T) {
	err := pkgerrors.NewDependencyError("published manifest", "/tmp/git/main/manifest.json", "Run 'bit clone' first.", fs.ErrNotExist)
	assert.Equal(t, "published manifest does not exist (/tmp/git/main/manifest.json). Run 'bit clone' first.", err.Error())
	assert.True(t, pkgerrors.IsMissingDependency(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIOError(t *testing.T) {
	err := pkgerrors.WrapIO("write", "manifest.json", fs.ErrPermission)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IO error during write of manifest.json")
	assert.ErrorIs(t, err, fs.ErrPermission)

	assert.NoError(t, pkgerrors.WrapIO("write", "x", nil))
}

func TestPhaseError(t *testing.T) {
	inner := pkgerrors.NewDependencyError("category file", "crypto.json", "", nil)
	err := pkgerrors.WrapPhase("manifest", inner)
	assert.Equal(t, "build manifest failed: category file does not exist (crypto.json)", err.Error())
	assert.True(t, pkgerrors.IsMissingDependency(err))

	var phase *pkgerrors.PhaseError
	require.True(t, errors.As(err, &phase))
	assert.Equal(t, "manifest", phase.Phase)
}

func TestProcessError(t *testing.T) {
	err := pkgerrors.NewProcessError("optimize svg", "svgo", "Error: bad svg", errors.New("exit status 1"))
	assert.Contains(t, err.Error(), "optimize svg")
	assert.Contains(t, err.Error(), "Output: Error: bad svg")
}
