package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/colors"
	"github.com/fisto/crm-sync/internal/version"
)

func captureColors(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	colors.SetOutput(&out, &errOut)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	return &out, &errOut
}

func TestRunExitCodes(t *testing.T) {
	_, errOut := captureColors(t)
	assert.Equal(t, 0, run(func() error { return nil }))
	assert.Empty(t, errOut.String())

	assert.Equal(t, 1, run(func() error { return fmt.Errorf("boom") }))
	assert.Contains(t, errOut.String(), "boom")
}

func TestRunDoesNotRepeatReportedErrors(t *testing.T) {
	_, errOut := captureColors(t)
	code := run(func() error { return cmd.Reported(fmt.Errorf("already shown")) })
	assert.Equal(t, 1, code)
	assert.Empty(t, errOut.String())
}

func TestReportedNil(t *testing.T) {
	assert.NoError(t, cmd.Reported(nil))
}

func TestPrintVersion(t *testing.T) {
	origWriter := versionOutputWriter
	origVersion := version.Version
	origCommit := version.Commit
	defer func() {
		versionOutputWriter = origWriter
		version.Version = origVersion
		version.Commit = origCommit
	}()

	tests := []struct {
		name     string
		ver      string
		commit   string
		expected string
	}{
		{"development version without commit", "development", "unknown", "crm-sync version development\n"},
		{"release version with commit", "1.0.0", "abc1234", "crm-sync version 1.0.0+abc1234\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			versionOutputWriter = &buf
			version.Version = tt.ver
			version.Commit = tt.commit
			PrintVersion()
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestRootHelpListsCommandsInOrder(t *testing.T) {
	var buf bytes.Buffer
	cmd.RootCmd.SetOut(&buf)
	cmd.RootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() {
		cmd.RootCmd.SetOut(nil)
		cmd.RootCmd.SetArgs(nil)
	})

	assert.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "USAGE:\n    crm-sync [COMMAND] [OPTIONS]")

	last := -1
	for _, name := range []string{"list", "show", "stats", "delete", "register", "ping", "clients", "tui", "version"} {
		idx := bytes.Index(buf.Bytes(), []byte("    "+name+" "))
		if assert.GreaterOrEqual(t, idx, 0, name) {
			assert.Greater(t, idx, last, name)
			last = idx
		}
	}
}
