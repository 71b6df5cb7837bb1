package entity

import "fmt"

// Kind discriminates the three levels of the test tree.
type Kind int

const (
	KindFeature Kind = iota
	KindScenario
	KindStep
)

func (k Kind) String() string {
	switch k {
	case KindFeature:
		return "feature"
	case KindScenario:
		return "scenario"
	case KindStep:
		return "step"
	}
	return "unknown"
}

// StepStatus is the closed set of statuses a step-result event can carry.
// StatusNone means no recognizable status was observed.
type StepStatus int

const (
	StatusNone StepStatus = iota
	StatusPassed
	StatusFailed
	StatusSkipped
	StatusPending
	StatusUndefined
)

func (s StepStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusPending:
		return "pending"
	case StatusUndefined:
		return "undefined"
	}
	return "none"
}

// State is the lifecycle state of an entity within one run.
type State int

const (
	StateIdle State = iota
	StatePreparing
	StateRunning
	StatePassed
	StateFailed
	StateSkipped
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateRunning:
		return "running"
	case StatePassed:
		return "passed"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether s is a state an entity cannot leave within a run.
func (s State) Terminal() bool {
	switch s {
	case StatePassed, StateFailed, StateSkipped, StateCancelled:
		return true
	}
	return false
}

// Node is one entity in the feature/scenario/step tree. Nodes are built
// once per run from discovered feature files and never mutated afterwards;
// lifecycle state lives in the run session, not here.
type Node struct {
	ID       string // derived from source location, unique within a run
	Kind     Kind
	Keyword  string // steps only: Given, When, Then, And, But
	Text     string
	Children []*Node
}

// Loc derives a stable entity identifier from a source location.
func Loc(path string, line int) string {
	return fmt.Sprintf("%s:%d", path, line)
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Steps returns every descendant step in document order.
func (n *Node) Steps() []*Node {
	var steps []*Node
	n.Walk(func(c *Node) {
		if c.Kind == KindStep {
			steps = append(steps, c)
		}
	})
	return steps
}
