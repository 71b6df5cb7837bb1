package runsync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chriserin/cukelive/internal/entity"
	"github.com/chriserin/cukelive/internal/outparse"
)

func step(id, keyword, text string) *entity.Node {
	return &entity.Node{ID: id, Kind: entity.KindStep, Keyword: keyword, Text: text}
}

func TestResolve_ExactMatch(t *testing.T) {
	steps := []*entity.Node{
		step("f:3.2", "Given", "a user"),
		step("f:4.2", "When", "they log in"),
	}
	ev := outparse.StepResultEvent{Keyword: "When", Text: "they log in"}
	got := Resolve(ev, steps)
	assert.Same(t, steps[1], got)
}

func TestResolve_ExactMatchRequiresKeyword(t *testing.T) {
	steps := []*entity.Node{step("f:3.2", "Given", "a user")}
	ev := outparse.StepResultEvent{Keyword: "When", Text: "a user"}
	assert.Nil(t, Resolve(ev, steps))
}

func TestResolve_FuzzyStripsTagTokensFromEvent(t *testing.T) {
	steps := []*entity.Node{step("f:3.2", "Given", "a")}
	ev := outparse.StepResultEvent{Keyword: "Given", Text: "[TAG123] a"}
	assert.Same(t, steps[0], Resolve(ev, steps))
}

func TestResolve_FuzzyStripsTagTokensFromCandidate(t *testing.T) {
	steps := []*entity.Node{step("f:3.2", "Given", "[SMOKE1] a user")}
	ev := outparse.StepResultEvent{Keyword: "Given", Text: "a user"}
	assert.Same(t, steps[0], Resolve(ev, steps))
}

func TestResolve_FuzzyHandlesEmbeddedTags(t *testing.T) {
	steps := []*entity.Node{step("f:3.2", "Given", "a user logs in")}
	ev := outparse.StepResultEvent{Keyword: "Given", Text: "a user [X9] logs in"}
	assert.Same(t, steps[0], Resolve(ev, steps))
}

func TestResolve_ExactWinsOverFuzzy(t *testing.T) {
	steps := []*entity.Node{
		step("f:3.2", "Given", "a user"),
		step("f:9.7", "Given", "[T1] a user"),
	}
	ev := outparse.StepResultEvent{Keyword: "Given", Text: "[T1] a user"}
	assert.Same(t, steps[1], Resolve(ev, steps))
}

func TestResolve_NoMatchReturnsNil(t *testing.T) {
	steps := []*entity.Node{step("f:3.2", "Given", "a user")}
	ev := outparse.StepResultEvent{Keyword: "Given", Text: "something else entirely"}
	assert.Nil(t, Resolve(ev, steps))
}

func TestStripTags_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Given a b", stripTags("Given a [TAG123] b"))
	assert.Equal(t, "Given a", stripTags("[T1] Given a"))
	assert.Equal(t, "Given a", stripTags("Given a [T1]"))
	// Non-alphanumeric bracket contents are not tag tokens.
	assert.Equal(t, "Given a [x y]", stripTags("Given a [x y]"))
}
