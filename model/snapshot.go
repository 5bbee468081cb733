package model

import (
	"crypto/md5"
	"fmt"
)

// Snapshot is an immutable copy of one generation, handed to renderers and
// RunFor callbacks.
type Snapshot struct {
	rows  int
	cols  int
	cells [][]bool
}

// Rows returns the number of rows
func (s Snapshot) Rows() int { return s.rows }

// Cols returns the number of columns
func (s Snapshot) Cols() int { return s.cols }

// Alive returns the state of a cell. Positions outside the grid are dead.
func (s Snapshot) Alive(row, col int) bool {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return false
	}
	return s.cells[row][col]
}

// Number returns the 1-based row-major number of a cell, as shown to users
// picking cells.
func (s Snapshot) Number(row, col int) int {
	return row*s.cols + col + 1
}

// Live returns the number of living cells
func (s Snapshot) Live() (count int) {
	for _, row := range s.cells {
		for _, alive := range row {
			if alive {
				count++
			}
		}
	}
	return
}

// Equal reports whether both snapshots have the same size and cells
func (s Snapshot) Equal(other Snapshot) bool {
	if s.rows != other.rows || s.cols != other.cols {
		return false
	}
	for row := range s.rows {
		for col := range s.cols {
			if s.cells[row][col] != other.cells[row][col] {
				return false
			}
		}
	}
	return true
}

// Hash returns an MD5 hash of the snapshot size and cells
func (s Snapshot) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", s.rows, s.cols)
	for row := range s.rows {
		for col := range s.cols {
			if s.cells[row][col] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
