package gherkin

import (
	"regexp"
	"strings"
)

var (
	tagPattern  = regexp.MustCompile(`@[^@\s]+`)
	stepPattern = regexp.MustCompile(`^(Given|When|Then|And|But)\s+(.+)$`)
)

// Parse parses a .feature file and returns a Document AST and any parse
// errors. Parsing is line-oriented and forgiving: unsupported constructs
// produce errors but never abort the parse.
func Parse(filename string, content []byte) (*Document, []ParseError) {
	lines := strings.Split(string(content), "\n")
	var errors []ParseError

	doc := &Document{}
	feature := &Feature{}
	doc.Feature = feature

	i := 0

	// Skip leading blanks and comments
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}
		break
	}

	// Collect feature-level tags
	var featureTags []Tag
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "@") {
			featureTags = append(featureTags, parseTags(trimmed)...)
			i++
			continue
		}
		break
	}

	// Look for Feature: line
	if i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "Feature:") {
		trimmed := strings.TrimSpace(lines[i])
		feature.Header.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Feature:"))
		feature.Header.Tags = featureTags
		feature.Header.Line = i + 1
		i++

		// Scan description lines until keyword or tag
		var descLines []string
		for i < len(lines) {
			trimmed := strings.TrimSpace(lines[i])
			if isKeyword(trimmed) || isTagLine(trimmed) || stepPattern.MatchString(trimmed) {
				break
			}
			descLines = append(descLines, lines[i])
			i++
		}
		if len(descLines) > 0 {
			feature.Header.Description = strings.TrimRight(strings.Join(descLines, "\n"), "\n")
		}
	} else {
		// No Feature: line, use filename without extension
		feature.Header.Name = filenameWithoutExt(filename)
		feature.Header.Tags = featureTags
		feature.Header.Line = 1
	}

	// Body loop. current points at the step list being filled; examples is
	// non-nil while rows of an Examples table are being consumed.
	var pendingTags []Tag
	var current *[]Step
	var scenario *ScenarioDefinition
	var examples *Examples

	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if isDocStringDelimiter(trimmed) {
			i = skipDocString(lines, i)
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}

		if isTagLine(trimmed) {
			pendingTags = append(pendingTags, parseTags(trimmed)...)
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "Background:") {
			pendingTags = nil
			bg := &Background{}
			feature.Background = bg
			current = &bg.Steps
			scenario, examples = nil, nil
			i++
			continue
		}

		if name, ok := cutKeyword(trimmed, "Scenario Outline:", "Scenario Template:"); ok {
			feature.Scenarios = append(feature.Scenarios, ScenarioDefinition{
				Tags:    pendingTags,
				Name:    name,
				Line:    i + 1,
				Outline: true,
			})
			scenario = &feature.Scenarios[len(feature.Scenarios)-1]
			current = &scenario.Steps
			pendingTags, examples = nil, nil
			i++
			continue
		}

		if name, ok := cutKeyword(trimmed, "Scenario:", "Example:"); ok {
			feature.Scenarios = append(feature.Scenarios, ScenarioDefinition{
				Tags: pendingTags,
				Name: name,
				Line: i + 1,
			})
			scenario = &feature.Scenarios[len(feature.Scenarios)-1]
			current = &scenario.Steps
			pendingTags, examples = nil, nil
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "Examples:") {
			if scenario == nil || !scenario.Outline {
				errors = append(errors, ParseError{Line: i + 1, Message: "Examples outside a Scenario Outline"})
				examples = nil
			} else {
				if scenario.Examples == nil {
					scenario.Examples = &Examples{}
				}
				examples = scenario.Examples
			}
			pendingTags = nil
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "Rule:") {
			errors = append(errors, ParseError{Line: i + 1, Message: "Rule is not supported"})
			scenario, current, examples = nil, nil, nil
			i++
			continue
		}

		// Table row: an Examples row when a table is open, otherwise a
		// step data table consumed opaquely.
		if strings.HasPrefix(trimmed, "|") {
			if examples != nil {
				cells := splitTableRow(trimmed)
				if examples.Header == nil {
					examples.Header = cells
				} else {
					examples.Rows = append(examples.Rows, ExampleRow{Values: cells, Line: i + 1})
				}
			}
			i++
			continue
		}
		examples = nil

		if m := stepPattern.FindStringSubmatch(trimmed); m != nil && current != nil {
			*current = append(*current, Step{Keyword: m[1], Text: strings.TrimSpace(m[2]), Line: i + 1})
			i++
			continue
		}

		// Content line for the current block, skip
		i++
	}

	return doc, errors
}

func parseTags(line string) []Tag {
	matches := tagPattern.FindAllString(line, -1)
	var tags []Tag
	for _, m := range matches {
		tags = append(tags, Tag{Name: m})
	}
	return tags
}

func isTagLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

func isKeyword(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Feature:") ||
		strings.HasPrefix(trimmed, "Background:") ||
		strings.HasPrefix(trimmed, "Scenario:") ||
		strings.HasPrefix(trimmed, "Scenario Outline:") ||
		strings.HasPrefix(trimmed, "Scenario Template:") ||
		strings.HasPrefix(trimmed, "Example:") ||
		strings.HasPrefix(trimmed, "Rule:") ||
		strings.HasPrefix(trimmed, "Examples:")
}

// cutKeyword returns the trimmed text after the first matching keyword.
func cutKeyword(trimmed string, keywords ...string) (string, bool) {
	for _, kw := range keywords {
		if strings.HasPrefix(trimmed, kw) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, kw)), true
		}
	}
	return "", false
}

func splitTableRow(trimmed string) []string {
	trimmed = strings.Trim(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isDocStringDelimiter(trimmed string) bool {
	return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "```")
}

// skipDocString advances past a doc string block. i points at the opening
// delimiter. Returns the index of the line after the closing delimiter.
func skipDocString(lines []string, i int) int {
	opener := strings.TrimSpace(lines[i])
	delimiter := `"""`
	if strings.HasPrefix(opener, "```") {
		delimiter = "```"
	}
	i++
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == delimiter {
			return i + 1
		}
		i++
	}
	return i // EOF without closing delimiter
}

func filenameWithoutExt(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}
