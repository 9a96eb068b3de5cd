package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	got, err := parseSteps("")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = parseSteps(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	for _, raw := range []string{"0", "-1", "abc"} {
		_, err := parseSteps(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseVersionArg(t *testing.T) {
	got, err := parseVersionArg("1760745600", "force")
	require.NoError(t, err)
	assert.Equal(t, uint(1760745600), got)

	_, err = parseVersionArg("", "goto")
	assert.ErrorContains(t, err, "goto requires")

	for _, raw := range []string{"-2", "x"} {
		_, err := parseVersionArg(raw, "force")
		assert.Error(t, err, raw)
	}
}

func TestReport(t *testing.T) {
	logger := logging.NewNop()
	assert.NoError(t, report(logger, "done", nil))
	assert.NoError(t, report(logger, "done", migrate.ErrNoChange))

	boom := errors.New("boom")
	assert.ErrorIs(t, report(logger, "done", boom), boom)
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(" " + dir + " ")
	require.NoError(t, err)
	want, _ := filepath.Abs(dir)
	assert.Equal(t, want, got)

	// an explicit dir that does not exist is not replaced by a default
	_, err = resolveMigrationsDir(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestNewApp_Commands(t *testing.T) {
	cmds := map[string]bool{}
	for _, c := range newApp(logging.NewNop()).Commands {
		cmds[c.Name] = true
	}
	for _, name := range []string{"up", "down", "goto", "force", "version"} {
		assert.True(t, cmds[name], name)
	}
}
