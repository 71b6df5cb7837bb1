package gherkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleScenario(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario: User logs in
    Given a user
    When  they log in
    Then  they see the dashboard
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, "Login", doc.Feature.Header.Name)
	assert.Equal(t, 1, doc.Feature.Header.Line)
	require.Len(t, doc.Feature.Scenarios, 1)

	sd := doc.Feature.Scenarios[0]
	assert.Equal(t, "User logs in", sd.Name)
	assert.Equal(t, 2, sd.Line)
	require.Len(t, sd.Steps, 3)
	assert.Equal(t, Step{Keyword: "Given", Text: "a user", Line: 3}, sd.Steps[0])
	assert.Equal(t, Step{Keyword: "When", Text: "they log in", Line: 4}, sd.Steps[1])
	assert.Equal(t, Step{Keyword: "Then", Text: "they see the dashboard", Line: 5}, sd.Steps[2])
}

func TestParse_MultipleScenarios(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario: User logs in
    Given a user

  Scenario: User fails login
    Given a user
    But   the password is wrong
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 2)
	assert.Equal(t, "User logs in", doc.Feature.Scenarios[0].Name)
	assert.Equal(t, "User fails login", doc.Feature.Scenarios[1].Name)
	require.Len(t, doc.Feature.Scenarios[1].Steps, 2)
	assert.Equal(t, "But", doc.Feature.Scenarios[1].Steps[1].Keyword)
}

func TestParse_BackgroundSteps(t *testing.T) {
	content := []byte(`Feature: Login
  Background:
    Given a registered user

  Scenario: User logs in
    When  they log in
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.NotNil(t, doc.Feature.Background)
	require.Len(t, doc.Feature.Background.Steps, 1)
	assert.Equal(t, "a registered user", doc.Feature.Background.Steps[0].Text)
	require.Len(t, doc.Feature.Scenarios, 1)
	require.Len(t, doc.Feature.Scenarios[0].Steps, 1)
}

func TestParse_Tags(t *testing.T) {
	content := []byte(`@billing
Feature: Login
  @smoke @regression
  Scenario: User logs in
    Given a user
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Header.Tags, 1)
	assert.Equal(t, "@billing", doc.Feature.Header.Tags[0].Name)
	require.Len(t, doc.Feature.Scenarios, 1)
	tags := doc.Feature.Scenarios[0].Tags
	require.Len(t, tags, 2)
	assert.Equal(t, "@smoke", tags[0].Name)
	assert.Equal(t, "@regression", tags[1].Name)
}

func TestParse_ScenarioOutlineWithExamples(t *testing.T) {
	content := []byte(`Feature: Math
  Scenario Outline: Adding <a> and <b>
    Given the number <a>
    When  I add <b>
    Then  the total is <total>

    Examples:
      | a | b | total |
      | 1 | 2 | 3     |
      | 2 | 5 | 7     |
`)
	doc, errors := Parse("math.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 1)

	sd := doc.Feature.Scenarios[0]
	assert.True(t, sd.Outline)
	assert.Equal(t, "Adding <a> and <b>", sd.Name)
	require.Len(t, sd.Steps, 3)

	require.NotNil(t, sd.Examples)
	assert.Equal(t, []string{"a", "b", "total"}, sd.Examples.Header)
	require.Len(t, sd.Examples.Rows, 2)
	assert.Equal(t, []string{"1", "2", "3"}, sd.Examples.Rows[0].Values)
	assert.Equal(t, 9, sd.Examples.Rows[0].Line)
	assert.Equal(t, []string{"2", "5", "7"}, sd.Examples.Rows[1].Values)
}

func TestParse_ExamplesOutsideOutlineIsError(t *testing.T) {
	content := []byte(`Feature: Login
  Examples: Table
    | a |
`)
	_, errors := Parse("login.feature", content)
	require.Len(t, errors, 1)
	assert.Equal(t, "Examples outside a Scenario Outline", errors[0].Message)
	assert.Equal(t, 2, errors[0].Line)
}

func TestParse_RuleError(t *testing.T) {
	content := []byte(`Feature: Login
  Rule: Business rule
    Scenario: Test
`)
	doc, errors := Parse("login.feature", content)
	require.Len(t, errors, 1)
	assert.Equal(t, "Rule is not supported", errors[0].Message)
	// The scenario after the rule still parses.
	require.Len(t, doc.Feature.Scenarios, 1)
}

func TestParse_DataTableConsumedOpaquely(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario: Bulk create
    Given the following users:
      | name  | role  |
      | alice | admin |
    Then  2 users exist
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 1)
	steps := doc.Feature.Scenarios[0].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, "the following users:", steps[0].Text)
	assert.Equal(t, "2 users exist", steps[1].Text)
}

func TestParse_DocStringContentIsOpaque(t *testing.T) {
	content := []byte(`Feature: Parse
  Scenario: Doc string is not parsed
    Given the file contains:
      """
      Feature: Inner
        Scenario: Not real
          Given nothing
      """
    Then it works
`)
	doc, errors := Parse("parse.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 1)
	require.Len(t, doc.Feature.Scenarios[0].Steps, 2)
}

func TestParse_NoFeatureLine(t *testing.T) {
	content := []byte(`  Scenario: User logs in
    Given a user
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, "login", doc.Feature.Header.Name)
	require.Len(t, doc.Feature.Scenarios, 1)
}

func TestParse_EmptyFile(t *testing.T) {
	doc, errors := Parse("empty.feature", []byte(""))
	require.Empty(t, errors)
	assert.Equal(t, "empty", doc.Feature.Header.Name)
	assert.Empty(t, doc.Feature.Scenarios)
}

func TestParse_CommentsIgnored(t *testing.T) {
	content := []byte(`# top comment
Feature: Login
  # another
  Scenario: User logs in
    Given a user
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, 2, doc.Feature.Header.Line)
	require.Len(t, doc.Feature.Scenarios, 1)
}

func TestParse_ExampleKeywordIsScenarioSynonym(t *testing.T) {
	content := []byte(`Feature: Login
  Example: User logs in
    Given a user
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 1)
	assert.Equal(t, "User logs in", doc.Feature.Scenarios[0].Name)
	assert.False(t, doc.Feature.Scenarios[0].Outline)
}
