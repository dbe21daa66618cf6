package astar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAll(t *testing.T) {
	g := newTestGrid(t, 6, 6, Coordinate{2, 0}, Coordinate{2, 1}, Coordinate{2, 2}, Coordinate{2, 3}, Coordinate{2, 4})
	queries := []Query{
		{Start: Coordinate{0, 0}, Finish: Coordinate{5, 0}},
		{Start: Coordinate{0, 0}, Finish: Coordinate{0, 0}},
		{Start: Coordinate{2, 0}, Finish: Coordinate{5, 5}},
		{Start: Coordinate{5, 5}, Finish: Coordinate{0, 5}},
		{Start: Coordinate{0, 0}, Finish: Coordinate{9, 9}},
	}

	results, err := SearchAll(context.Background(), g, queries, WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, q := range queries {
		assert.Equal(t, Search(g, q.Start, q.Finish), results[i], "query %d", i)
	}
	assert.Equal(t, OutcomeInvalidEndpoint, results[2].Outcome)
	assert.Equal(t, 15, results[0].Cost)
}

func TestSearchAll_Empty(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	results, err := SearchAll(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchAll_Cancelled(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	queries := []Query{{Start: Coordinate{0, 0}, Finish: Coordinate{1, 1}}}
	results, err := SearchAll(ctx, g, queries, WithWorkers(2))
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomePending, results[0].Outcome)
}
