package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/chriserin/cukelive/internal/entity"
	"github.com/chriserin/cukelive/internal/runsync"
)

// Summary renders the end-of-run table: per-feature scenario counts broken
// down by terminal state, with totals.
func Summary(w io.Writer, features []*entity.Node, session *runsync.Session) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Feature", "Scenarios", "Passed", "Failed", "Skipped", "Cancelled"})

	var totals [4]int
	totalScenarios := 0
	for _, f := range features {
		var counts [4]int
		for _, scenario := range f.Children {
			switch session.State(scenario.ID) {
			case entity.StatePassed:
				counts[0]++
			case entity.StateFailed:
				counts[1]++
			case entity.StateSkipped:
				counts[2]++
			case entity.StateCancelled:
				counts[3]++
			}
		}
		for i, n := range counts {
			totals[i] += n
		}
		totalScenarios += len(f.Children)
		t.AppendRow(table.Row{f.Text, len(f.Children), counts[0], counts[1], counts[2], counts[3]})
	}

	t.AppendFooter(table.Row{"Total", totalScenarios, totals[0], totals[1], totals[2], totals[3]})
	t.Render()
}
