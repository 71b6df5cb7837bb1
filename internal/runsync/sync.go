package runsync

import (
	"github.com/chriserin/cukelive/internal/entity"
	"github.com/chriserin/cukelive/internal/outparse"
)

// Listener receives entity state transitions in the exact order they occur.
// The synchronizer guarantees at most one terminal call per entity per run.
type Listener interface {
	EntityPreparing(n *entity.Node)
	EntityStarted(n *entity.Node)
	EntityFinished(n *entity.Node, state entity.State, message string)

	// CollapseSteps is a presentation hint: render the scenario's steps in
	// collapsed/on-demand form. Step tracking continues regardless.
	CollapseSteps(scenario *entity.Node)
}

// Diagnostics receives events that could not be applied.
type Diagnostics interface {
	UnmatchedStep(keyword, text string)
}

// Synchronizer owns the lifecycle state of every entity in the current run.
// It is the session's single writer and applies each transition before the
// next event is processed.
type Synchronizer struct {
	features  []*entity.Node
	session   *Session
	listener  Listener
	diag      Diagnostics
	threshold int
	parents   map[string]*entity.Node
	steps     []*entity.Node
}

// New builds a synchronizer for one run over the given feature trees.
// threshold is the step count above which the collapse hint is issued;
// zero or negative disables the overload policy.
func New(features []*entity.Node, listener Listener, diag Diagnostics, threshold int) *Synchronizer {
	s := &Synchronizer{
		features:  features,
		session:   NewSession(features),
		listener:  listener,
		diag:      diag,
		threshold: threshold,
		parents:   make(map[string]*entity.Node),
	}
	for _, f := range features {
		for _, scenario := range f.Children {
			s.parents[scenario.ID] = f
			for _, step := range scenario.Children {
				s.parents[step.ID] = scenario
				s.steps = append(s.steps, step)
			}
		}
	}
	return s
}

// Session exposes the run's state map for read-only consumers (summary
// rendering, exit-code derivation).
func (s *Synchronizer) Session() *Session {
	return s.session
}

// Start moves every entity to preparing and issues collapse hints when the
// run exceeds the step threshold.
func (s *Synchronizer) Start() {
	for _, f := range s.features {
		f.Walk(func(n *entity.Node) {
			s.session.states[n.ID] = entity.StatePreparing
			s.listener.EntityPreparing(n)
		})
	}
	if s.threshold > 0 && s.session.stepTotal > s.threshold {
		s.session.collapsed = true
		for _, f := range s.features {
			for _, scenario := range f.Children {
				s.listener.CollapseSteps(scenario)
			}
		}
	}
}

// Apply resolves one step-result event and drives the resulting
// transitions. Unmatched events are reported and dropped; they never halt
// processing.
func (s *Synchronizer) Apply(ev outparse.StepResultEvent) {
	step := Resolve(ev, s.openSteps())
	if step == nil {
		s.diag.UnmatchedStep(ev.Keyword, ev.Text)
		return
	}

	scenario := s.parents[step.ID]
	feature := s.parents[scenario.ID]
	s.markRunning(feature)
	s.markRunning(scenario)
	s.markRunning(step)

	state, message := terminalFor(ev)
	if !s.finish(step, state, message) {
		return
	}
	s.bubble(scenario)
}

// Cancel moves every entity still in preparing or running to cancelled,
// children before parents. Entities already terminal keep their state.
func (s *Synchronizer) Cancel() {
	s.session.cancelled = true
	for _, f := range s.features {
		for _, scenario := range f.Children {
			for _, step := range scenario.Children {
				s.finish(step, entity.StateCancelled, "")
			}
			s.finish(scenario, entity.StateCancelled, "")
		}
		s.finish(f, entity.StateCancelled, "")
	}
}

// Finish completes the run at stream end: steps the runner never reported
// finalize as skipped, then scenario and feature outcomes aggregate from
// their children. Outcomes never derive from the process exit code.
func (s *Synchronizer) Finish() {
	for _, f := range s.features {
		for _, scenario := range f.Children {
			for _, step := range scenario.Children {
				if !s.session.states[step.ID].Terminal() {
					s.finish(step, entity.StateSkipped, "not executed")
				}
			}
			s.finish(scenario, aggregate(s.session, scenario), "")
		}
		s.finish(f, aggregate(s.session, f), "")
	}
}

// openSteps returns steps not yet terminal, in document order, so repeated
// step text resolves to the next unfinished occurrence.
func (s *Synchronizer) openSteps() []*entity.Node {
	var open []*entity.Node
	for _, step := range s.steps {
		if !s.session.states[step.ID].Terminal() {
			open = append(open, step)
		}
	}
	return open
}

func (s *Synchronizer) markRunning(n *entity.Node) {
	switch s.session.states[n.ID] {
	case entity.StateIdle, entity.StatePreparing:
		s.session.states[n.ID] = entity.StateRunning
		s.listener.EntityStarted(n)
	}
}

// finish applies a terminal state. Requests for entities already terminal,
// or that never entered preparing/running, are rejected as no-ops.
func (s *Synchronizer) finish(n *entity.Node, state entity.State, message string) bool {
	current := s.session.states[n.ID]
	if current != entity.StatePreparing && current != entity.StateRunning {
		return false
	}
	s.session.states[n.ID] = state
	if message != "" {
		s.session.messages[n.ID] = message
	}
	s.listener.EntityFinished(n, state, message)
	return true
}

// bubble finalizes the scenario once all its steps are terminal, then the
// feature once all its scenarios are.
func (s *Synchronizer) bubble(scenario *entity.Node) {
	if !s.allTerminal(scenario) {
		return
	}
	s.finish(scenario, aggregate(s.session, scenario), "")

	feature := s.parents[scenario.ID]
	if !s.allTerminal(feature) {
		return
	}
	s.finish(feature, aggregate(s.session, feature), "")
}

func (s *Synchronizer) allTerminal(n *entity.Node) bool {
	for _, c := range n.Children {
		if !s.session.states[c.ID].Terminal() {
			return false
		}
	}
	return true
}

// aggregate derives a parent outcome from its children: any failed child
// fails the parent, else any cancelled child cancels it, else all-skipped
// skips it, else it passes.
func aggregate(session *Session, n *entity.Node) entity.State {
	anyCancelled := false
	allSkipped := len(n.Children) > 0
	for _, c := range n.Children {
		switch session.states[c.ID] {
		case entity.StateFailed:
			return entity.StateFailed
		case entity.StateCancelled:
			anyCancelled = true
			allSkipped = false
		case entity.StateSkipped:
		default:
			allSkipped = false
		}
	}
	if anyCancelled {
		return entity.StateCancelled
	}
	if allSkipped {
		return entity.StateSkipped
	}
	return entity.StatePassed
}

// terminalFor maps an event status to the entity terminal state. Pending
// and undefined steps did not run; they surface as skipped with a message
// that preserves the distinction.
func terminalFor(ev outparse.StepResultEvent) (entity.State, string) {
	switch ev.Status {
	case entity.StatusPassed:
		return entity.StatePassed, ""
	case entity.StatusFailed:
		return entity.StateFailed, ev.Error
	case entity.StatusSkipped:
		return entity.StateSkipped, ""
	case entity.StatusPending:
		return entity.StateSkipped, "step pending"
	case entity.StatusUndefined:
		return entity.StateSkipped, "step undefined"
	}
	return entity.StateSkipped, ""
}
