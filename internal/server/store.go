package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	astar "github.com/pdrpinto/gridastar"
)

var (
	ErrGridNotFound = errors.New("grid not found")
	ErrGridTooLarge = errors.New("grid too large")
)

// gridEntry guards one grid: cell writes take the write lock, searches the
// read lock, so no writer runs while a search reads the grid.
type gridEntry struct {
	mu   sync.RWMutex
	grid *astar.Grid
}

// Store owns every grid the server hands out.
type Store struct {
	mu       sync.RWMutex
	grids    map[string]*gridEntry
	maxCells int
}

// NewStore returns an empty store. maxCells of 0 disables the size limit.
func NewStore(maxCells int) *Store {
	return &Store{
		grids:    make(map[string]*gridEntry),
		maxCells: maxCells,
	}
}

// Create allocates a rows×cols grid and returns its id.
func (s *Store) Create(rows, cols int) (string, error) {
	if s.maxCells > 0 && rows > 0 && cols > s.maxCells/rows {
		return "", fmt.Errorf("%w: %d×%d exceeds %d cells", ErrGridTooLarge, rows, cols, s.maxCells)
	}
	grid, err := astar.NewGrid(rows, cols)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.grids[id] = &gridEntry{grid: grid}
	s.mu.Unlock()
	return id, nil
}

func (s *Store) get(id string) (*gridEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.grids[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGridNotFound, id)
	}
	return entry, nil
}

// Read runs fn with shared access to the grid.
func (s *Store) Read(id string, fn func(*astar.Grid) error) error {
	entry, err := s.get(id)
	if err != nil {
		return err
	}
	entry.mu.RLock()
	defer entry.mu.RUnlock()
	return fn(entry.grid)
}

// Write runs fn with exclusive access to the grid.
func (s *Store) Write(id string, fn func(*astar.Grid) error) error {
	entry, err := s.get(id)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.grid)
}

// Delete drops the grid; it reports whether the id existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grids[id]; !ok {
		return false
	}
	delete(s.grids, id)
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.grids)
}
