package astar

import (
	"context"
	"sync"
)

// Query is one start/finish pair for SearchAll.
type Query struct {
	Start  Coordinate
	Finish Coordinate
}

// searchTask is handed from the dispatcher to a worker.
type searchTask struct {
	Index int
	Query Query
}

// SearchAll answers every query against one snapshot of grid taken on
// entry, so the caller may keep editing grid while the workers run.
// Results come back in query order. Each individual search still runs to
// completion; ctx only stops new queries from being dispatched, in which
// case the context error is returned with the results gathered so far.
func SearchAll(ctx context.Context, grid *Grid, queries []Query, options ...Option) ([]Result, error) {
	searchOptions := applyOptions(options)
	snapshot := grid.Clone()
	results := make([]Result, len(queries))

	numberOfWorkers := min(searchOptions.NumberOfWorkers, len(queries))
	taskChannel := make(chan searchTask)

	var wg sync.WaitGroup
	for i := 0; i < numberOfWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChannel {
				// each worker writes a distinct index
				results[task.Index] = Search(snapshot, task.Query.Start, task.Query.Finish, options...)
			}
		}()
	}

	var err error
dispatch:
	for i, query := range queries {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case taskChannel <- searchTask{Index: i, Query: query}:
		}
	}
	close(taskChannel)
	wg.Wait()

	searchOptions.Logger.WithField("queries", len(queries)).Debug("astar.search_all")
	return results, err
}
