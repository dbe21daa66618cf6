// Package astar finds shortest paths on 2-D occupancy grids.
//
// A Grid holds one CellState per cell (Free, Wall, or the caller's Start and
// Finish markers, which are walkable). Movement is 4-connected with unit step
// cost and the Manhattan distance is the heuristic, so every path returned is
// a shortest one.
//
// Entry points:
//
//   - FindPath: the path from start to finish, or an empty slice.
//   - Search: the same search, reporting cost, expansions, and whether an
//     empty result means "unreachable" or "invalid endpoint".
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - SearchAll: answer many queries on a grid snapshot using a worker pool.
//
// Frontier ties are broken by smaller f, then smaller h, then discovery
// order, so output is reproducible for a fixed grid and endpoints.
package astar
