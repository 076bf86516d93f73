package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, "info"},
		{"flag", Config{LogLevel: "error", Verbose: true}, "error"},
		{"verbose", Config{Verbose: true, EnvLogLevel: "error"}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"verbose and quiet", Config{Verbose: true, Quiet: true}, "warn"},
		{"environment", Config{EnvLogLevel: "trace"}, "trace"},
		{"invalid flag", Config{LogLevel: "loud"}, "info"},
		{"invalid environment", Config{EnvLogLevel: "chatty"}, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{Quiet: true, LogFormat: "json", LogOutput: "stderr"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
