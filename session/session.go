// Package session implements the interactive Game of Life menu. It reads
// commands from an io.Reader, drives a model.Grid and renders it to an
// io.Writer.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/juju/loggo"
	"github.com/pkg/errors"

	"github.com/hatem32/Conway-s-Game-of-Life/model"
	"github.com/hatem32/Conway-s-Game-of-Life/pattern"
	"github.com/hatem32/Conway-s-Game-of-Life/utils"
)

var logger = loggo.GetLogger("gol.session")

const menu = `Game of Life Menu:
1. Set Custom Live Cells by Cell Number
2. Initialize Random Grid
3. Run Simulation for N generations
4. Reset Grid (All cells dead)
5. Load Pattern from File
6. Save Pattern to File
7. Exit
`

const (
	choiceSetCells = iota + 1
	choiceRandom
	choiceRun
	choiceReset
	choiceLoad
	choiceSave
	choiceExit
)

// Session is one interactive game over a single grid
type Session struct {
	config   utils.Config
	in       io.Reader
	out      io.Writer
	lines    <-chan string
	renderer *model.TerminalRenderer
	random   model.RandomSource
	grid     *model.Grid
}

// New returns a session with a dead grid of the configured default size
func New(config utils.Config, in io.Reader, out io.Writer, random model.RandomSource) (*Session, error) {
	size := config.DefaultSize()
	grid, err := model.NewGrid(size.Rows, size.Cols)
	if err != nil {
		return nil, errors.Wrapf(err, "[New] cannot create initial %s grid", size)
	}
	return &Session{
		config:   config,
		in:       in,
		out:      out,
		renderer: model.NewTerminalRenderer(out, config.ClearScreen),
		random:   random,
		grid:     grid,
	}, nil
}

// Grid returns the grid the session currently works on. Choosing a new size
// from the menu replaces it.
func (s *Session) Grid() *model.Grid {
	return s.grid
}

// LoadPattern replaces the grid contents with the pattern file at path
func (s *Session) LoadPattern(path string) error {
	p, err := pattern.ReadFile(path)
	if err != nil {
		return err
	}
	if err := p.Apply(s.grid); err != nil {
		return errors.Wrapf(err, "[LoadPattern] %s", path)
	}
	logger.Infof("loaded %dx%d pattern from %s", p.Rows, p.Cols, path)
	return nil
}

// Run shows the menu and executes commands until the user exits or the input
// ends, in which case it returns nil. It returns the context error if ctx is
// done first.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines = pumpLines(ctx, s.in)

	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.readInt(ctx, "Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}
		logger.Debugf("menu choice %d", choice)

		switch choice {
		case choiceSetCells:
			err = s.setCustomPattern(ctx)
		case choiceRandom:
			err = s.randomize(ctx)
		case choiceRun:
			err = s.runGenerations(ctx)
		case choiceReset:
			s.grid.Clear()
			s.display(false)
		case choiceLoad:
			err = s.loadFromFile(ctx)
		case choiceSave:
			err = s.saveToFile(ctx)
		case choiceExit:
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice! Please try again.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

// endOfInput turns running out of input into a normal exit
func endOfInput(err error) error {
	if errors.Cause(err) == io.EOF {
		return nil
	}
	return err
}

// pumpLines reads lines from r in the background so prompts can be abandoned
// when ctx is done.
func pumpLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warningf("reading input: %v", err)
		}
	}()
	return lines
}

func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// readInt prompts until the user enters an integer
func (s *Session) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(s.out, "Invalid input! Please enter a number.")
	}
}

func (s *Session) display(showNumbers bool) {
	s.renderer.Clear()
	s.renderer.Display(s.grid.Snapshot(), showNumbers)
}

// chooseSize asks for one of the preset sizes and replaces the grid with a
// dead grid of that size. An invalid choice keeps the current grid.
func (s *Session) chooseSize(ctx context.Context) error {
	fmt.Fprintln(s.out, "Choose a grid size:")
	for i, size := range s.config.Presets {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, size)
	}
	choice, err := s.readInt(ctx, "Enter your choice: ")
	if err != nil {
		return err
	}

	if choice < 1 || choice > len(s.config.Presets) {
		fmt.Fprintf(s.out, "Invalid choice! Keeping the current %dx%d grid.\n", s.grid.Rows(), s.grid.Cols())
		return nil
	}

	size := s.config.Presets[choice-1]
	grid, err := model.NewGrid(size.Rows, size.Cols)
	if err != nil {
		return err
	}
	s.grid = grid
	logger.Debugf("new %s grid", size)
	return nil
}

func (s *Session) setCustomPattern(ctx context.Context) error {
	if err := s.chooseSize(ctx); err != nil {
		return err
	}
	total := s.grid.Rows() * s.grid.Cols()
	for {
		s.display(s.config.ShowNumbers)
		number, err := s.readInt(ctx, fmt.Sprintf("Enter cell number to make alive (1 to %d): ", total))
		if err != nil {
			return err
		}
		row, col, err := s.grid.SetAliveByNumber(number)
		switch {
		case errors.Is(err, model.ErrOutOfRange):
			fmt.Fprintln(s.out, "Invalid cell number! Please try again.")
		case err != nil:
			return err
		default:
			fmt.Fprintf(s.out, "Cell (%d, %d) set to alive.\n", row, col)
		}

		answer, err := s.readLine(ctx, "Do you want to set another cell? (y/n): ")
		if err != nil {
			return err
		}
		if answer != "y" && answer != "Y" {
			s.display(false)
			return nil
		}
	}
}

func (s *Session) randomize(ctx context.Context) error {
	if err := s.chooseSize(ctx); err != nil {
		return err
	}
	s.grid.Randomize(s.random)
	s.display(false)
	return nil
}

func (s *Session) runGenerations(ctx context.Context) error {
	n, err := s.readInt(ctx, "Enter number of generations: ")
	if err != nil {
		return err
	}

	var (
		history = model.NewHistory(s.config.HistorySize)
		stats   = utils.NewStats()
		last    = time.Now()
	)
	history.Record(s.grid.Snapshot())

	err = s.grid.RunFor(n, func(generation int, snap model.Snapshot) error {
		s.renderer.Clear()
		s.renderer.Display(snap, false)

		now := time.Now()
		stats.Update(generation, snap.Live(), snap.Rows()*snap.Cols(), now.Sub(last))
		last = now
		stats.BoundingBoxSize = 0
		if b, ok := s.grid.LiveBounds(); ok {
			stats.BoundingBoxSize = (b.MaxRow - b.MinRow + 1) * (b.MaxCol - b.MinCol + 1)
		}

		status := "Active"
		switch {
		case stats.ActiveCells == 0:
			status = "Extinct"
		case history.IsStagnant(snap):
			status = "Stable"
		}
		history.Record(snap)

		fmt.Fprintf(s.out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells\n",
			generation, stats.ActiveCells, stats.Density, status, stats.BoundingBoxSize)
		return sleep(ctx, s.config.FrameDelay)
	})
	if errors.Is(err, model.ErrInvalidArgument) {
		fmt.Fprintf(s.out, "Invalid number of generations: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Infof("run finished: %s", stats.Summary())
	}
	return nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Session) loadFromFile(ctx context.Context) error {
	filename, err := s.readLine(ctx, "Enter filename to load pattern: ")
	if err != nil {
		return err
	}
	err = s.LoadPattern(filename)
	switch {
	case errors.Is(err, pattern.ErrNotFound):
		fmt.Fprintf(s.out, "Error opening file: %s\n", filename)
	case err != nil:
		logger.Warningf("cannot load pattern: %v", err)
		fmt.Fprintf(s.out, "Error reading pattern: %v\n", err)
	default:
		fmt.Fprintln(s.out, "Pattern loaded successfully from file.")
		s.display(false)
	}
	return nil
}

func (s *Session) saveToFile(ctx context.Context) error {
	filename, err := s.readLine(ctx, "Enter filename to save pattern: ")
	if err != nil {
		return err
	}
	if err := pattern.WriteFile(filename, s.grid.Snapshot()); err != nil {
		logger.Warningf("cannot save pattern: %v", err)
		fmt.Fprintf(s.out, "Error saving pattern: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "Pattern saved to %s.\n", filename)
	return nil
}
