package astar

import (
	"github.com/sirupsen/logrus"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Coordinate
	Open      map[Coordinate]bool
	Closed    map[Coordinate]bool
	CameFrom  map[Coordinate]Coordinate
	Done      bool
	Found     bool
	Outcome   Outcome
	Path      []Coordinate
	StepIndex int
}

// Stepper advances a search one expansion at a time. It expands nodes in
// exactly the order Search does.
type Stepper struct {
	state     *search
	logger    logrus.FieldLogger
	stepCount int
	reported  bool
}

// NewStepper prepares a search without expanding anything.
func NewStepper(grid GridView, start, finish Coordinate, options ...Option) *Stepper {
	opts := applyOptions(options)
	return &Stepper{
		state:  newSearch(grid, start, finish),
		logger: opts.Logger,
	}
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool { return s.state.done }

// Result reports the search outcome so far; it is final once Done is true.
func (s *Stepper) Result() Result { return s.state.result() }

// Step advances the search by one node expansion and returns a snapshot.
// Calling Step after the search finished returns the final snapshot again.
func (s *Stepper) Step() StepSnapshot {
	if s.state.step() {
		s.stepCount++
	}
	if s.state.done && !s.reported {
		s.reported = true
		s.logger.WithFields(logrus.Fields{
			"outcome": s.state.outcome.String(),
			"steps":   s.stepCount,
		}).Debug("astar.stepper.done")
	}
	return s.snapshot()
}

func (s *Stepper) snapshot() StepSnapshot {
	st := s.state
	snap := StepSnapshot{
		Current:   st.current,
		Open:      s.openSetToBoolMap(),
		Closed:    copyBoolMap(st.closedSet),
		CameFrom:  copyCameFrom(st.cameFrom),
		Done:      st.done,
		Found:     st.outcome == OutcomeFound,
		Outcome:   st.outcome,
		StepIndex: s.stepCount,
	}
	if snap.Found {
		snap.Path = append([]Coordinate(nil), st.path...)
	}
	return snap
}

func (s *Stepper) openSetToBoolMap() map[Coordinate]bool {
	m := make(map[Coordinate]bool, len(s.state.openSetMap))
	for k := range s.state.openSetMap {
		m[k] = true
	}
	return m
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
