package runsync

import (
	"github.com/google/uuid"

	"github.com/chriserin/cukelive/internal/entity"
)

// Session holds all mutable state for one run. The synchronizer is its
// single writer; a new run gets a fresh session, never a reused one.
type Session struct {
	ID        string
	states    map[string]entity.State
	messages  map[string]string
	stepTotal int
	collapsed bool
	cancelled bool
}

func NewSession(features []*entity.Node) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		states:   make(map[string]entity.State),
		messages: make(map[string]string),
	}
	for _, f := range features {
		f.Walk(func(n *entity.Node) {
			s.states[n.ID] = entity.StateIdle
			if n.Kind == entity.KindStep {
				s.stepTotal++
			}
		})
	}
	return s
}

// State returns the current lifecycle state for an entity ID.
func (s *Session) State(id string) entity.State {
	return s.states[id]
}

// Message returns the message recorded with an entity's terminal state.
func (s *Session) Message(id string) string {
	return s.messages[id]
}

// StepTotal is the number of step entities in the run.
func (s *Session) StepTotal() int {
	return s.stepTotal
}

// Collapsed reports whether the overload policy kicked in for this run.
func (s *Session) Collapsed() bool {
	return s.collapsed
}

// Cancelled reports whether the run was cancelled.
func (s *Session) Cancelled() bool {
	return s.cancelled
}
