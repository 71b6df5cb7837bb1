package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/cukelive/internal/entity"
)

var (
	featureStyle = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cancelStyle  = lipgloss.NewStyle().Faint(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Console renders entity transitions as an indented tree, one line per
// transition, in the order they are delivered. It implements both the
// synchronizer's Listener and Diagnostics interfaces.
type Console struct {
	w         io.Writer
	collapsed bool
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) EntityPreparing(n *entity.Node) {}

func (c *Console) CollapseSteps(scenario *entity.Node) {
	c.collapsed = true
}

func (c *Console) EntityStarted(n *entity.Node) {
	switch n.Kind {
	case entity.KindFeature:
		fmt.Fprintln(c.w, featureStyle.Render("Feature: "+n.Text))
	case entity.KindScenario:
		fmt.Fprintln(c.w, "  Scenario: "+n.Text)
	}
}

func (c *Console) EntityFinished(n *entity.Node, state entity.State, message string) {
	switch n.Kind {
	case entity.KindStep:
		if c.collapsed {
			return
		}
		fmt.Fprintf(c.w, "    %s %s %s\n", glyph(state), n.Keyword, n.Text)
		for _, line := range messageLines(message) {
			fmt.Fprintln(c.w, "      "+faintStyle.Render(line))
		}
	case entity.KindScenario:
		if c.collapsed {
			fmt.Fprintf(c.w, "  %s Scenario: %s\n", glyph(state), n.Text)
		}
	}
}

// UnmatchedStep reports a step-result event that resolved to no known
// entity. The event is dropped; this line is the only trace.
func (c *Console) UnmatchedStep(keyword, text string) {
	fmt.Fprintln(c.w, faintStyle.Render(fmt.Sprintf("  ?? unmatched step: %s %s", keyword, text)))
}

func glyph(state entity.State) string {
	switch state {
	case entity.StatePassed:
		return passStyle.Render("✔")
	case entity.StateFailed:
		return failStyle.Render("✘")
	case entity.StateSkipped:
		return skipStyle.Render("↷")
	case entity.StateCancelled:
		return cancelStyle.Render("⊘")
	}
	return " "
}

func messageLines(message string) []string {
	if message == "" {
		return nil
	}
	return strings.Split(message, "\n")
}
