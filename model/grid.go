package model

import (
	"math"

	"github.com/pkg/errors"

	"github.com/hatem32/Conway-s-Game-of-Life/rules"
)

// Grid is the game board: a fixed rows x cols rectangle of alive/dead cells.
// Cells outside the rectangle are permanently dead; nothing wraps around.
type Grid struct {
	rows  int
	cols  int
	cells [][]bool
	next  [][]bool // scratch buffer for Step, swapped with cells
}

// Bounds is the smallest rectangle holding every live cell, inclusive on both ends
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// NewGrid creates a new grid with the specified dimensions and every cell dead
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewGrid] grid size must be positive, got %dx%d", rows, cols)
	}
	if tooLarge(rows, cols) {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewGrid] %dx%d grid is too large", rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: newCells(rows, cols),
		next:  newCells(rows, cols),
	}, nil
}

// tooLarge reports whether rows*cols overflows int. Every grid passes this
// check, so rows*cols is safe to compute on an existing Grid.
func tooLarge(rows, cols int) bool {
	return rows > math.MaxInt/cols
}

func newCells(rows, cols int) [][]bool {
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return cells
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Alive returns the state of a cell. Positions outside the grid are dead.
func (g *Grid) Alive(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.cells[row][col]
}

// Clear kills every cell
func (g *Grid) Clear() {
	for row := range g.rows {
		for col := range g.cols {
			g.cells[row][col] = false
		}
	}
}

// SetAlive marks a single cell alive
func (g *Grid) SetAlive(row, col int) error {
	if !g.inBounds(row, col) {
		return errors.Wrapf(ErrOutOfRange, "[SetAlive] cell (%d, %d) is outside a %dx%d grid", row, col, g.rows, g.cols)
	}
	g.cells[row][col] = true
	return nil
}

// SetAliveByNumber marks alive the cell with the given 1-based row-major number
// and returns its position.
func (g *Grid) SetAliveByNumber(number int) (row, col int, err error) {
	if number < 1 || number > g.rows*g.cols {
		return 0, 0, errors.Wrapf(ErrOutOfRange, "[SetAliveByNumber] cell number %d is not in 1..%d", number, g.rows*g.cols)
	}
	row, col = (number-1)/g.cols, (number-1)%g.cols
	g.cells[row][col] = true
	return row, col, nil
}

// Load replaces the dimensions and every cell of the grid. cells holds one
// marker per cell in row-major order; '1' is alive and anything else is dead.
// On error the grid is left untouched.
func (g *Grid) Load(rows, cols int, cells []byte) error {
	if rows <= 0 || cols <= 0 {
		return errors.Wrapf(ErrMalformedInput, "[Load] grid size must be positive, got %dx%d", rows, cols)
	}
	if tooLarge(rows, cols) {
		return errors.Wrapf(ErrMalformedInput, "[Load] %dx%d grid is too large", rows, cols)
	}
	if len(cells) != rows*cols {
		return errors.Wrapf(ErrMalformedInput, "[Load] %dx%d grid needs %d cells, got %d", rows, cols, rows*cols, len(cells))
	}

	loaded := newCells(rows, cols)
	for i, marker := range cells {
		loaded[i/cols][i%cols] = marker == '1'
	}

	g.rows, g.cols = rows, cols
	g.cells = loaded
	g.next = newCells(rows, cols)
	return nil
}

// CountNeighbors counts the live cells among the up to 8 cells around
// (row, col) that lie inside the grid.
func (g *Grid) CountNeighbors(row, col int) (int, error) {
	if !g.inBounds(row, col) {
		return 0, errors.Wrapf(ErrOutOfRange, "[CountNeighbors] cell (%d, %d) is outside a %dx%d grid", row, col, g.rows, g.cols)
	}
	return g.countNeighbors(row, col), nil
}

// countNeighbors clamps the 3x3 window to the grid edges
func (g *Grid) countNeighbors(row, col int) (count int) {
	var (
		minRow = max(0, row-1)
		maxRow = min(g.rows-1, row+1)
		minCol = max(0, col-1)
		maxCol = min(g.cols-1, col+1)
	)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue
			}
			if g.cells[r][c] {
				count++
			}
		}
	}
	return
}

// Step advances the grid by exactly one generation. Every cell is computed
// from the previous generation; the result is written to the scratch buffer
// and the buffers are swapped afterwards.
func (g *Grid) Step() {
	for row := range g.rows {
		for col := range g.cols {
			g.next[row][col] = rules.ApplyConwayRules(g.countNeighbors(row, col), g.cells[row][col])
		}
	}
	g.cells, g.next = g.next, g.cells
}

// RunFor advances the grid n generations. After each generation yield, if
// not nil, receives the generation number (starting at 1) and a snapshot of
// the grid; a non-nil error from yield stops the run and is returned as is.
func (g *Grid) RunFor(n int, yield func(generation int, s Snapshot) error) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "[RunFor] generation count must not be negative, got %d", n)
	}
	for generation := 1; generation <= n; generation++ {
		g.Step()
		if yield == nil {
			continue
		}
		if err := yield(generation, g.Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] {
				count++
			}
		}
	}
	return
}

// LiveBounds returns the bounding box of living cells; ok is false when the
// grid is empty.
func (g *Grid) LiveBounds() (b Bounds, ok bool) {
	for row := range g.rows {
		for col := range g.cols {
			if !g.cells[row][col] {
				continue
			}
			if !ok {
				b = Bounds{MinRow: row, MaxRow: row, MinCol: col, MaxCol: col}
				ok = true
				continue
			}
			b.MinRow = min(b.MinRow, row)
			b.MaxRow = max(b.MaxRow, row)
			b.MinCol = min(b.MinCol, col)
			b.MaxCol = max(b.MaxCol, col)
		}
	}
	return
}

// Snapshot returns a read-only copy of the current generation
func (g *Grid) Snapshot() Snapshot {
	cells := newCells(g.rows, g.cols)
	for row := range g.rows {
		copy(cells[row], g.cells[row])
	}
	return Snapshot{rows: g.rows, cols: g.cols, cells: cells}
}
