// Package pattern reads and writes Game of Life pattern files.
//
// A pattern file starts with the number of rows and columns, separated by
// whitespace, followed by one character per cell in row-major order. A '1'
// marks a live cell; any other non-whitespace character is a dead cell.
// Whitespace between cells is ignored, so
//
//	3 3
//	010
//	101
//	010
//
// and the same cells written as "0 1 0" per row describe the same pattern.
package pattern

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"unicode"

	"github.com/juju/loggo"
	"github.com/pkg/errors"

	"github.com/hatem32/Conway-s-Game-of-Life/model"
)

var logger = loggo.GetLogger("gol.pattern")

var (
	// ErrNotFound is returned when the pattern file does not exist
	ErrNotFound = errors.New("pattern file not found")
	// ErrSyntax is returned when the pattern file content is malformed
	ErrSyntax = errors.New("pattern syntax error")
)

const (
	aliveMarker = '1'
	deadMarker  = '0'
)

// Pattern is a parsed pattern file, ready for model.Grid.Load
type Pattern struct {
	Rows  int
	Cols  int
	Cells []byte
}

// Apply loads the pattern into g
func (p Pattern) Apply(g *model.Grid) error {
	return g.Load(p.Rows, p.Cols, p.Cells)
}

// Parse reads a pattern from r
func Parse(r io.Reader) (Pattern, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Pattern{}, errors.Wrap(err, "[Parse] failed to read pattern")
	}

	rest := data
	rows, rest, err := parseDimension(rest, "rows")
	if err != nil {
		return Pattern{}, err
	}
	cols, rest, err := parseDimension(rest, "cols")
	if err != nil {
		return Pattern{}, err
	}

	if rows > math.MaxInt/cols {
		return Pattern{}, errors.Wrapf(ErrSyntax, "[Parse] %dx%d pattern is too large", rows, cols)
	}
	want := rows * cols

	// Sized by the input, not the header: the header may promise far more
	// cells than the file holds.
	cells := make([]byte, 0, min(want, len(rest)))
	found := 0
	for _, c := range bytes.Runes(rest) {
		if unicode.IsSpace(c) {
			continue
		}
		found++
		if found > want {
			continue
		}
		if c == aliveMarker {
			cells = append(cells, aliveMarker)
		} else {
			cells = append(cells, deadMarker)
		}
	}
	if found != want {
		return Pattern{}, errors.Wrapf(ErrSyntax, "[Parse] %dx%d pattern needs %d cells, found %d", rows, cols, want, found)
	}

	return Pattern{Rows: rows, Cols: cols, Cells: cells}, nil
}

// parseDimension reads one positive integer token and returns the remaining input
func parseDimension(data []byte, name string) (int, []byte, error) {
	data = bytes.TrimLeftFunc(data, unicode.IsSpace)
	end := bytes.IndexFunc(data, unicode.IsSpace)
	if end < 0 {
		end = len(data)
	}
	token := string(data[:end])
	if token == "" {
		return 0, nil, errors.Wrapf(ErrSyntax, "[Parse] missing %s", name)
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, nil, errors.Wrapf(ErrSyntax, "[Parse] %s %q is not a number", name, token)
	}
	if n <= 0 {
		return 0, nil, errors.Wrapf(ErrSyntax, "[Parse] %s must be positive, got %d", name, n)
	}
	return n, data[end:], nil
}

// ReadFile parses the pattern file at path
func ReadFile(path string) (Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Pattern{}, errors.Wrapf(ErrNotFound, "[ReadFile] %s", path)
		}
		return Pattern{}, errors.Wrapf(err, "[ReadFile] failed to open file: %+v", path)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return Pattern{}, errors.Wrapf(err, "[ReadFile] %s", path)
	}
	logger.Debugf("read %dx%d pattern from %s", p.Rows, p.Cols, path)
	return p, nil
}

// Write writes s in pattern file format: the size line, then one line per
// row with space separated cells.
func Write(w io.Writer, s model.Snapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", s.Rows(), s.Cols())
	for row := range s.Rows() {
		for col := range s.Cols() {
			if col > 0 {
				bw.WriteByte(' ')
			}
			if s.Alive(row, col) {
				bw.WriteByte(aliveMarker)
			} else {
				bw.WriteByte(deadMarker)
			}
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "[Write] failed to write pattern")
}

// WriteFile saves s to path, replacing any existing file
func WriteFile(path string, s model.Snapshot) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[WriteFile] failed to create file: %+v", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "[WriteFile] failed to close file: %+v", path)
		}
	}()

	if err := Write(f, s); err != nil {
		return err
	}
	logger.Debugf("wrote %dx%d pattern to %s", s.Rows(), s.Cols(), path)
	return nil
}
