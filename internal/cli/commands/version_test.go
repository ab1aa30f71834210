package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/cli/testutil"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
	}{
		{
			name:    "release build",
			info:    BuildInfo{Version: "0.1.0", Commit: "abc123", BuildDate: "2026-01-02"},
			wantOut: []string{"dreamtool v0.1.0", "Dream", "commit abc123, built 2026-01-02"},
		},
		{name: "dev version", info: BuildInfo{Version: "dev"}, wantOut: []string{"dreamtool vdev"}},
		{name: "go version filled in", info: BuildInfo{Version: "1.2.3"}, wantOut: []string{"go1."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, t.TempDir(), NewVersionCommand(tt.info))
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteConfig(t, dir, "output: json\n")

	out, err := execute(t, dir, NewVersionCommand(BuildInfo{Version: "0.1.0", Commit: "abc", BuildDate: "today", GoVersion: "go1.24.0"}))
	require.NoError(t, err)

	var got BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, BuildInfo{Version: "0.1.0", Commit: "abc", BuildDate: "today", GoVersion: "go1.24.0"}, got)
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "test"})

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
