package astar

import (
	"container/heap"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar/internal/pathutil"
)

// Outcome classifies how a search ended.
type Outcome uint8

const (
	// OutcomePending: the search has not finished yet.
	OutcomePending Outcome = iota
	// OutcomeFound: Path holds a shortest path.
	OutcomeFound
	// OutcomeUnreachable: both endpoints are walkable but no 4-connected
	// path joins them.
	OutcomeUnreachable
	// OutcomeInvalidEndpoint: start or finish is out of bounds or a wall.
	OutcomeInvalidEndpoint
)

var outcomeNames = [...]string{"pending", "found", "unreachable", "invalid_endpoint"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// MarshalText renders the outcome name for JSON and YAML encoders.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for i, name := range outcomeNames {
		if name == string(text) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Result contains the outcome of a search
type Result struct {
	Path          []Coordinate
	Cost          int
	ExpandedNodes int
	Found         bool
	Outcome       Outcome
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	Logger          logrus.FieldLogger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goroutines SearchAll runs queries on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger routes search diagnostics to logger at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(options *Options) { options.Logger = logger }
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          discardLogger,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = discardLogger
	}
	return searchOptions
}

// FindPath returns a shortest 4-connected path from start to finish,
// inclusive of both, or an empty slice when no path exists. An endpoint
// that is out of bounds or a wall also yields an empty slice; use Search
// to tell the two apart.
func FindPath(grid GridView, start, finish Coordinate) []Coordinate {
	return Search(grid, start, finish).Path
}

// Search runs A* to completion and reports the full Result.
func Search(grid GridView, start, finish Coordinate, options ...Option) Result {
	searchOptions := applyOptions(options)

	state := newSearch(grid, start, finish)
	for state.step() {
	}
	result := state.result()

	searchOptions.Logger.WithFields(logrus.Fields{
		"start":    start.String(),
		"finish":   finish.String(),
		"outcome":  result.Outcome.String(),
		"expanded": result.ExpandedNodes,
		"cost":     result.Cost,
	}).Debug("astar.search")

	return result
}

// search is the per-call A* state. Search and Stepper both drive it, one
// expansion per step.
type search struct {
	grid  GridView
	start Coordinate
	goal  Coordinate

	openSet    PriorityQueue
	openSetMap map[Coordinate]*PriorityQueueItem
	closedSet  map[Coordinate]bool
	cameFrom   map[Coordinate]Coordinate

	sequence      uint64
	expandedNodes int
	current       Coordinate

	done    bool
	outcome Outcome
	path    []Coordinate
	cost    int
}

func newSearch(grid GridView, start, goal Coordinate) *search {
	s := &search{
		grid:       grid,
		start:      start,
		goal:       goal,
		openSet:    make(PriorityQueue, 0),
		openSetMap: make(map[Coordinate]*PriorityQueueItem),
		closedSet:  make(map[Coordinate]bool),
		cameFrom:   make(map[Coordinate]Coordinate),
		current:    start,
	}

	if !grid.IsWalkable(start.X, start.Y) || !grid.IsWalkable(goal.X, goal.Y) {
		s.done = true
		s.outcome = OutcomeInvalidEndpoint
		return s
	}

	heap.Init(&s.openSet)
	s.push(start, 0, Manhattan(start, goal))
	return s
}

func (s *search) push(node Coordinate, g, h int) {
	item := &PriorityQueueItem{
		Node:     node,
		GScore:   g,
		HScore:   h,
		FCost:    g + h,
		Sequence: s.sequence,
	}
	s.sequence++
	heap.Push(&s.openSet, item)
	s.openSetMap[node] = item
}

// step expands one node. It returns false once the search has finished.
func (s *search) step() bool {
	if s.done {
		return false
	}
	if s.openSet.Len() == 0 {
		s.done = true
		s.outcome = OutcomeUnreachable
		return false
	}

	currentItem := heap.Pop(&s.openSet).(*PriorityQueueItem)
	currentNode := currentItem.Node
	delete(s.openSetMap, currentNode)
	s.current = currentNode
	s.expandedNodes++

	// Goal check
	if currentNode == s.goal {
		s.done = true
		s.outcome = OutcomeFound
		s.cost = currentItem.GScore
		s.path = pathutil.ReconstructPath(s.cameFrom, currentNode, s.start)
		return true
	}

	s.closedSet[currentNode] = true

	for _, offset := range offsets {
		neighbor := currentNode.Add(offset)
		if !s.grid.IsWalkable(neighbor.X, neighbor.Y) || s.closedSet[neighbor] {
			continue
		}

		tentativeG := currentItem.GScore + 1
		h := Manhattan(neighbor, s.goal)
		f := tentativeG + h

		if item, inOpen := s.openSetMap[neighbor]; inOpen {
			if f < item.FCost {
				item.GScore = tentativeG
				item.FCost = f
				s.cameFrom[neighbor] = currentNode
				heap.Fix(&s.openSet, item.IndexInQueue)
			}
			continue
		}
		s.cameFrom[neighbor] = currentNode
		s.push(neighbor, tentativeG, h)
	}
	return true
}

func (s *search) result() Result {
	return Result{
		Path:          s.path,
		Cost:          s.cost,
		ExpandedNodes: s.expandedNodes,
		Found:         s.outcome == OutcomeFound,
		Outcome:       s.outcome,
	}
}
