package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection.
// Items are inserted by position and index, then nearby items can be queried
// via a 3x3 cell neighborhood.
//
// The grid covers [minX, minX+width) x [minY, minY+height). Positions outside
// are clamped to the border cells, so entities drifting past the screen edge
// (before they wrap) still land in a cell next to their true neighbors.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding items so that all candidates are found in the neighborhood.
type SpatialGrid struct {
	minX, minY  float64
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int // item indices per cell, reused between frames
	seen        []int   // cell indices visited by the current query
}

// NewSpatialGrid creates a grid whose origin is (minX, minY).
func NewSpatialGrid(minX, minY, width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		minX:        minX,
		minY:        minY,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
		seen:        make([]int, 0, 9),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(p Vector, index int) {
	col, row := g.posToCell(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around p. Neighborhoods wrap at the grid edges, matching the toroidal
// playfield. Each cell is visited once even on grids narrower than three
// cells. If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(p Vector, fn func(index int) bool) {
	col, row := g.posToCell(p)
	g.seen = g.seen[:0]

	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			cell := r*g.cols + c
			if g.visited(cell) {
				continue
			}
			g.seen = append(g.seen, cell)

			for _, item := range g.cells[cell] {
				if fn(item) {
					return
				}
			}
		}
	}
}

func (g *SpatialGrid) visited(cell int) bool {
	for _, c := range g.seen {
		if c == cell {
			return true
		}
	}
	return false
}

// posToCell converts a position to grid cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(p Vector) (col, row int) {
	col = int(math.Floor((p.X - g.minX) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((p.Y - g.minY) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
