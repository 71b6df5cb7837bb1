package gherkin

import (
	"fmt"
	"strings"

	"github.com/chriserin/cukelive/internal/entity"
)

// Tree converts a parsed Document into the static entity tree for one
// feature file. Background steps are replayed per scenario, so they appear
// as children of every scenario with identifiers qualified by the scenario
// line to keep IDs unique within the run. Scenario Outline example rows
// expand into scenario-like leaves with <param> placeholders substituted.
func Tree(doc *Document, path string) *entity.Node {
	f := doc.Feature
	root := &entity.Node{
		ID:   entity.Loc(path, f.Header.Line),
		Kind: entity.KindFeature,
		Text: f.Header.Name,
	}

	var background []Step
	if f.Background != nil {
		background = f.Background.Steps
	}

	for _, sd := range f.Scenarios {
		if sd.Outline {
			root.Children = append(root.Children, expandOutline(path, sd, background)...)
			continue
		}
		scenario := &entity.Node{
			ID:   entity.Loc(path, sd.Line),
			Kind: entity.KindScenario,
			Text: sd.Name,
		}
		for _, st := range background {
			scenario.Children = append(scenario.Children, stepNode(path, st, sd.Line, st.Text))
		}
		for _, st := range sd.Steps {
			scenario.Children = append(scenario.Children, stepNode(path, st, sd.Line, st.Text))
		}
		root.Children = append(root.Children, scenario)
	}

	return root
}

func expandOutline(path string, sd ScenarioDefinition, background []Step) []*entity.Node {
	if sd.Examples == nil || len(sd.Examples.Rows) == 0 {
		return nil
	}

	var rows []*entity.Node
	for _, row := range sd.Examples.Rows {
		values := rowValues(sd.Examples.Header, row)
		node := &entity.Node{
			ID:   entity.Loc(path, row.Line),
			Kind: entity.KindScenario,
			Text: substitute(sd.Name, values),
		}
		for _, st := range background {
			node.Children = append(node.Children, stepNode(path, st, row.Line, st.Text))
		}
		for _, st := range sd.Steps {
			node.Children = append(node.Children, stepNode(path, st, row.Line, substitute(st.Text, values)))
		}
		rows = append(rows, node)
	}
	return rows
}

// stepNode qualifies the step's location with its owning scenario (or
// example row) line so repeated steps stay uniquely identified.
func stepNode(path string, st Step, ownerLine int, text string) *entity.Node {
	return &entity.Node{
		ID:      fmt.Sprintf("%s:%d.%d", path, st.Line, ownerLine),
		Kind:    entity.KindStep,
		Keyword: st.Keyword,
		Text:    text,
	}
}

func rowValues(header []string, row ExampleRow) map[string]string {
	values := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(row.Values) {
			values[col] = row.Values[i]
		}
	}
	return values
}

func substitute(text string, values map[string]string) string {
	for col, val := range values {
		text = strings.ReplaceAll(text, "<"+col+">", val)
	}
	return text
}
