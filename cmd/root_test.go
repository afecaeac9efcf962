package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/overtype/internal/config"
)

func TestHighlightText_PlainPassthrough(t *testing.T) {
	c := config.Config{}

	out, err := highlightText(c, "nothing to match here")
	require.NoError(t, err)
	require.Equal(t, "nothing to match here", out)
}

func TestHighlightText_DefaultsDecorate(t *testing.T) {
	out, err := highlightText(config.Defaults(), "ping @bob about #launch")
	require.NoError(t, err)

	// Styling depends on the terminal's color profile, so assert on content:
	// every input byte survives, in order, whatever sequences wrap it.
	require.Contains(t, out, "@bob")
	require.Contains(t, out, "#launch")
	require.Contains(t, strings.ReplaceAll(out, "\x1b", ""), "ping ")
}

func TestHighlightText_InvalidMatcher(t *testing.T) {
	c := config.Config{Matchers: []config.MatcherConfig{{Name: "bad", Pattern: `(`}}}

	_, err := highlightText(c, "text")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad")
}

func TestRunInit_WritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	initCmd.SetArgs(nil)
	err := runInit(initCmd, []string{path})
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), cfg)
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("matchers: []\n"), 0644))

	err := runInit(initCmd, []string{path})
	require.Error(t, err)
}
