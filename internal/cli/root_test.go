// Package cli tests root command and global flags for copr-release.
// Related: internal/cli/root.go
// Tags: cli, root, commands, global-flags

package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "copr-release", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists": {
			flagName:  "config",
			shorthand: "c",
		},
		"debug flag exists": {
			flagName:  "debug",
			shorthand: "d",
		},
		"verbose flag exists": {
			flagName:  "verbose",
			shorthand: "v",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			assert.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"resolve", "bump", "release",
		"tags", "history",
		"completions", "suggest",
		"init", "clean", "version",
	} {
		assert.True(t, names[want], "Root command should register %q", want)
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	groupIDs := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groupIDs[g.ID] = true
	}

	assert.True(t, groupIDs[GroupRelease], "Should have release group")
	assert.True(t, groupIDs[GroupInspection], "Should have inspection group")
	assert.True(t, groupIDs[GroupCompletion], "Should have completion group")
	assert.True(t, groupIDs[GroupUtility], "Should have utility group")
}

func TestRootCmd_CanShowHelp(t *testing.T) {
	t.Parallel()

	// Fresh command so the global rootCmd stays untouched
	cmd := &cobra.Command{
		Use:   "copr-release",
		Short: "Test command",
	}
	cmd.SetArgs([]string{"--help"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := cmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Test command")
}

func TestGroupConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		constant string
		want     string
	}{
		"release group": {
			constant: GroupRelease,
			want:     "release",
		},
		"inspection group": {
			constant: GroupInspection,
			want:     "inspection",
		},
		"completion group": {
			constant: GroupCompletion,
			want:     "completion",
		},
		"utility group": {
			constant: GroupUtility,
			want:     "utility",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.constant)
		})
	}
}
