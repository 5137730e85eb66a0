package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/kbdl/kbdl/config"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		caption  string
		name     string
		verbose  bool
		expected log.Level
		error    bool
	}{
		{
			caption:  "info by default",
			expected: log.InfoLevel,
		},
		{
			caption:  "the config picks the level",
			name:     "warn",
			expected: log.WarnLevel,
		},
		{
			caption:  "--verbose wins over the config",
			name:     "error",
			verbose:  true,
			expected: log.DebugLevel,
		},
		{
			caption: "an unknown level",
			name:    "loud",
			error:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := logLevel(tt.name, tt.verbose)
			if tt.error {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, l)
		})
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	require.Same(t, log.Default(), loggerFromContext(ctx))
	require.Equal(t, config.Default(), configFromContext(ctx))

	l := log.New(io.Discard)
	c := &config.Config{LogLevel: "debug"}
	ctx = withConfig(withLogger(ctx, l), c)
	require.Same(t, l, loggerFromContext(ctx))
	require.Same(t, c, configFromContext(ctx))
}
