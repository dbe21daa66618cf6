package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
)

type findOptions struct {
	rows   int
	cols   int
	walls  []string
	start  string
	finish string
	asJSON bool
}

type findOutput struct {
	Rows     int                `json:"rows"`
	Cols     int                `json:"cols"`
	Start    astar.Coordinate   `json:"start"`
	Finish   astar.Coordinate   `json:"finish"`
	Path     []astar.Coordinate `json:"path"`
	Length   int                `json:"length"`
	Expanded int                `json:"expanded"`
	Outcome  astar.Outcome      `json:"outcome"`
}

func findCmd(root *rootOptions) *cobra.Command {
	var opts findOptions

	c := &cobra.Command{
		Use:   "find",
		Short: "Find the shortest path between two cells",
		Long: "Builds a rows×cols grid, marks the given cells as walls and prints the\n" +
			"shortest 4-connected path. Start defaults to 0,0 and finish to the\n" +
			"opposite corner.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("rows") {
				opts.rows = cfg.Grid.Rows
			}
			if !cmd.Flags().Changed("cols") {
				opts.cols = cfg.Grid.Cols
			}

			grid, start, finish, err := opts.build()
			if err != nil {
				return err
			}

			res := astar.Search(grid, start, finish, astar.WithLogger(logger))
			logger.WithField("outcome", res.Outcome.String()).Info("find.done")

			out := findOutput{
				Rows:     grid.Rows(),
				Cols:     grid.Cols(),
				Start:    start,
				Finish:   finish,
				Path:     res.Path,
				Length:   len(res.Path),
				Expanded: res.ExpandedNodes,
				Outcome:  res.Outcome,
			}
			if opts.asJSON {
				if out.Path == nil {
					out.Path = []astar.Coordinate{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return writeText(cmd.OutOrStdout(), out)
		},
	}

	c.Flags().IntVarP(&opts.rows, "rows", "r", 10, "number of rows (default from config)")
	c.Flags().IntVarP(&opts.cols, "cols", "c", 10, "number of columns (default from config)")
	c.Flags().StringArrayVarP(&opts.walls, "wall", "w", nil, "wall cell as row,col (repeatable)")
	c.Flags().StringVar(&opts.start, "start", "", "start cell as row,col")
	c.Flags().StringVar(&opts.finish, "finish", "", "finish cell as row,col")
	c.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")
	return c
}

// build lays out the grid the way the original demo did: all free, start
// and finish markers at the endpoints, then the requested walls.
func (o findOptions) build() (*astar.Grid, astar.Coordinate, astar.Coordinate, error) {
	grid, err := astar.NewGrid(o.rows, o.cols)
	if err != nil {
		return nil, astar.Coordinate{}, astar.Coordinate{}, err
	}

	start := astar.Coordinate{X: 0, Y: 0}
	finish := astar.Coordinate{X: o.rows - 1, Y: o.cols - 1}
	if o.start != "" {
		if start, err = astar.ParseCoordinate(o.start); err != nil {
			return nil, start, finish, err
		}
	}
	if o.finish != "" {
		if finish, err = astar.ParseCoordinate(o.finish); err != nil {
			return nil, start, finish, err
		}
	}

	for _, w := range o.walls {
		c, err := astar.ParseCoordinate(w)
		if err != nil {
			return nil, start, finish, err
		}
		if c == start || c == finish {
			return nil, start, finish, fmt.Errorf("wall %v: cannot cover an endpoint", c)
		}
		if err := grid.SetCell(c.X, c.Y, astar.Wall); err != nil {
			return nil, start, finish, fmt.Errorf("wall %v: %w", c, err)
		}
	}

	// markers are best effort: an out-of-bounds endpoint is reported by the search
	_ = grid.SetCell(start.X, start.Y, astar.Start)
	_ = grid.SetCell(finish.X, finish.Y, astar.Finish)
	return grid, start, finish, nil
}

func writeText(w io.Writer, out findOutput) error {
	switch out.Outcome {
	case astar.OutcomeFound:
		parts := make([]string, 0, len(out.Path))
		for _, c := range out.Path {
			parts = append(parts, c.String())
		}
		if _, err := fmt.Fprintf(w, "Path: %s\n", strings.Join(parts, " ")); err != nil {
			return err
		}
	case astar.OutcomeInvalidEndpoint:
		if _, err := fmt.Fprintf(w, "No path: start %v or finish %v is not walkable\n", out.Start, out.Finish); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprintf(w, "No path: %v is unreachable from %v\n", out.Finish, out.Start); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Way length: %d\n", out.Length)
	return err
}
