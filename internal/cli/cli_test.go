package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PopulatesConfig(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-natom", "1654", "-hasbox", "-skip-bonds", "-log-level", "debug", "prod.mdcrd",
	}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "prod.mdcrd", cfg.Path)
	assert.Equal(t, 1654, cfg.NAtom)
	assert.True(t, cfg.HasBox)
	assert.True(t, cfg.SkipBonds)
	assert.False(t, cfg.Structure)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.True(t, strings.Contains(out.String(), "Usage:"))
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-log-format", "xml", "file.pdb"}, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-log-level", "loud", "file.pdb"}, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_HelpFlagExitsCleanly(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
}
