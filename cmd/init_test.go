package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func TestInit_CreatesWorkDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, workDir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, workDir+"/ created")
}

func TestInit_CreatesDefaultConfig(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, configPath))
	require.NoError(t, err)
	assert.Contains(t, string(data), "features_dir: features")
	assert.Contains(t, out, configPath+" created")
}

func TestInit_CreatesRegistryDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	_, err := os.Stat(filepath.Join(dir, dbPath))
	require.NoError(t, err)
	assert.Contains(t, out, dbPath+" created")
}

func TestInit_Idempotent(t *testing.T) {
	inTempDir(t)
	runInit(t)
	out := runInit(t)

	assert.Contains(t, out, workDir+"/ already exists")
	assert.Contains(t, out, configPath+" already exists")
	assert.Contains(t, out, dbPath+" already exists")
}

func TestInit_AddsGitignoreEntry(t *testing.T) {
	dir := inTempDir(t)
	runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), dbPath)
}

func TestInit_PreservesExistingGitignore(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(".gitignore", []byte("node_modules\n"), 0o644))
	runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "node_modules")
	assert.Contains(t, string(data), dbPath)
}
