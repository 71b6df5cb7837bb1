package gherkin

// AST types produced by Parse. Line numbers are 1-based.

type Document struct {
	Feature *Feature
}

type Feature struct {
	Header     FeatureHeader
	Background *Background
	Scenarios  []ScenarioDefinition
}

type FeatureHeader struct {
	Tags        []Tag
	Name        string
	Description string
	Line        int
}

type Background struct {
	Steps []Step
}

type ScenarioDefinition struct {
	Tags     []Tag
	Name     string
	Line     int
	Outline  bool
	Steps    []Step
	Examples *Examples
}

type Step struct {
	Keyword string // Given, When, Then, And, But
	Text    string
	Line    int
}

type Examples struct {
	Header []string
	Rows   []ExampleRow
}

type ExampleRow struct {
	Values []string
	Line   int
}

type Tag struct {
	Name string // e.g. "@smoke"
}

type ParseError struct {
	Line    int
	Message string
}
