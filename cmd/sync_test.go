package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/cukelive/internal/db"
)

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf))
	return buf.String()
}

func writeFeature(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll("features", 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const loginFeature = `Feature: Login
  Scenario: User logs in
    Given a user
    When  they log in
    Then  they see the dashboard
`

func TestSync_RequiresInit(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	err := RunSync(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cukelive init")
}

func TestSync_RegistersNewFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)

	out := runSync(t)

	sqlDB, err := db.Open(dbPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var filePath string
	require.NoError(t, sqlDB.QueryRow(`SELECT file_path FROM files WHERE file_path = ?`, "features/login.feature").Scan(&filePath))
	assert.Contains(t, out, "new  features/login.feature")
	assert.Contains(t, out, "synced 1 files")
}

func TestSync_RegistersScenariosAndSteps(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)
	runSync(t)

	sqlDB, err := db.Open(dbPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var name string
	var line int
	require.NoError(t, sqlDB.QueryRow(`SELECT name, line FROM scenarios`).Scan(&name, &line))
	assert.Equal(t, "User logs in", name)
	assert.Equal(t, 2, line)

	var steps int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM steps`).Scan(&steps))
	assert.Equal(t, 3, steps)
}

func TestSync_SecondRunTracksExistingFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)
	runSync(t)

	out := runSync(t)
	assert.Contains(t, out, "trk  features/login.feature")

	sqlDB, err := db.Open(dbPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSync_RemovesStaleScenarios(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature+`
  Scenario: Second
    Given something
`)
	runSync(t)

	writeFeature(t, "features/login.feature", loginFeature)
	runSync(t)

	sqlDB, err := db.Open(dbPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSync_ReportsParseErrors(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/bad.feature", `Feature: Bad
  Rule: unsupported
`)

	out := runSync(t)
	assert.Contains(t, out, "parse error features/bad.feature:2: Rule is not supported")
}
