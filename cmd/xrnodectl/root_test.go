package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand_JSON(t *testing.T) {
	out, err := run(t, "match", "p003", "p001", "-o", "json")
	require.NoError(t, err)

	var got matchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "p003", got.Viewer)
	assert.Equal(t, "p001", got.Target)
	assert.GreaterOrEqual(t, got.Result.Score, 0)
	assert.LessOrEqual(t, got.Result.Score, 100)
	assert.True(t, got.Result.Level.Valid())
}

func TestMatchCommand_UnknownParticipant(t *testing.T) {
	_, err := run(t, "match", "p003", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDirectoryCommand_Text(t *testing.T) {
	out, err := run(t, "directory", "--viewer", "p003", "--sort", "name")
	require.NoError(t, err)
	assert.Contains(t, out, "7 participants")
	assert.NotContains(t, out, "\np003 ")
}

func TestProfilesFlag_ValidatesEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a1","name":""}]`), 0o600))

	_, err := run(t, "--profiles", path, "match", "a1", "a1")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "profile #0"))
}

func TestMigrate_RequiresDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	_, err := run(t, "migrate", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not configured")
}
