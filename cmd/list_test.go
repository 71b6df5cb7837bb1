package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runList(t *testing.T, outlinesOnly bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, outlinesOnly))
	return buf.String()
}

func TestList_RequiresInit(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	err := RunList(&buf, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cukelive init")
}

func TestList_EmptyRegistryPrintsNothing(t *testing.T) {
	inTempDir(t)
	runInit(t)
	assert.Empty(t, runList(t, false))
}

func TestList_ShowsScenariosWithStepCounts(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)
	runSync(t)

	out := runList(t, false)
	assert.Contains(t, out, "login.feature")
	assert.Contains(t, out, "User logs in")
	assert.Contains(t, out, "3 steps")
}

func TestList_OutlinesFilter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/math.feature", `Feature: Math
  Scenario: Plain
    Given a number

  Scenario Outline: Adding <a>
    Given the number <a>

    Examples:
      | a |
      | 1 |
`)
	runSync(t)

	out := runList(t, true)
	assert.Contains(t, out, "Adding <a>")
	assert.NotContains(t, out, "Plain")
}
