package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/hatem32/Conway-s-Game-of-Life/model"
	"github.com/hatem32/Conway-s-Game-of-Life/pattern"
	"github.com/hatem32/Conway-s-Game-of-Life/utils"
)

func testConfig() utils.Config {
	config := utils.DefaultConfig()
	config.ClearScreen = false
	config.FrameDelay = 0
	return config
}

// runSession feeds input to a fresh session and returns it with its output
func runSession(c *qt.C, input string) (*Session, string) {
	var out bytes.Buffer
	s, err := New(testConfig(), strings.NewReader(input), &out, model.NewRandomSource(1))
	c.Assert(err, qt.IsNil)
	c.Assert(s.Run(context.Background()), qt.IsNil)
	return s, out.String()
}

func TestExit(t *testing.T) {
	c := qt.New(t)
	s, out := runSession(c, "7\n")
	c.Assert(out, qt.Contains, "Game of Life Menu:")
	c.Assert(out, qt.Contains, "Exiting...")
	c.Assert(s.Grid().Rows(), qt.Equals, 20)
	c.Assert(s.Grid().Cols(), qt.Equals, 50)
}

func TestEndOfInputExits(t *testing.T) {
	c := qt.New(t)
	_, out := runSession(c, "")
	c.Assert(out, qt.Contains, "Enter your choice: ")
}

func TestInvalidChoices(t *testing.T) {
	c := qt.New(t)
	_, out := runSession(c, "abc\n9\n7\n")
	c.Assert(out, qt.Contains, "Invalid input! Please enter a number.")
	c.Assert(out, qt.Contains, "Invalid choice! Please try again.")
}

func TestSetCustomCells(t *testing.T) {
	c := qt.New(t)
	s, out := runSession(c, strings.Join([]string{
		"1",   // set cells
		"1",   // 10x10
		"1",   // cell 1
		"y",   //
		"101", // out of range
		"y",   //
		"100", // last cell
		"n",   //
		"7",
	}, "\n"))
	c.Assert(out, qt.Contains, "Choose a grid size:\n1. 10x10\n2. 20x20\n3. 20x50\n")
	c.Assert(out, qt.Contains, "Enter cell number to make alive (1 to 100): ")
	c.Assert(out, qt.Contains, "Cell (0, 0) set to alive.")
	c.Assert(out, qt.Contains, "Invalid cell number! Please try again.")
	c.Assert(out, qt.Contains, "Cell (9, 9) set to alive.")

	g := s.Grid()
	c.Assert(g.Rows(), qt.Equals, 10)
	c.Assert(g.Cols(), qt.Equals, 10)
	c.Assert(g.CountLivingCells(), qt.Equals, 2)
	c.Assert(g.Alive(0, 0), qt.IsTrue)
	c.Assert(g.Alive(9, 9), qt.IsTrue)
}

func TestInvalidSizeKeepsCurrentGrid(t *testing.T) {
	c := qt.New(t)
	s, out := runSession(c, strings.Join([]string{
		"1",  // set cells
		"1",  // 10x10
		"12", // (1, 1)
		"n",  //
		"1",  // set cells again
		"9",  // no such size
		"23", // (2, 2)
		"n",  //
		"7",
	}, "\n"))
	c.Assert(out, qt.Contains, "Invalid choice! Keeping the current 10x10 grid.")

	g := s.Grid()
	c.Assert(g.Rows(), qt.Equals, 10)
	c.Assert(g.Cols(), qt.Equals, 10)
	c.Assert(g.Alive(1, 1), qt.IsTrue)
	c.Assert(g.Alive(2, 2), qt.IsTrue)
	c.Assert(g.CountLivingCells(), qt.Equals, 2)
}

func TestInvalidSizeBeforeRandomizeKeepsSize(t *testing.T) {
	c := qt.New(t)
	s, out := runSession(c, "2\n0\n7\n")
	c.Assert(out, qt.Contains, "Invalid choice! Keeping the current 20x50 grid.")
	c.Assert(s.Grid().Rows(), qt.Equals, 20)
	c.Assert(s.Grid().Cols(), qt.Equals, 50)
	c.Assert(s.Grid().CountLivingCells() > 0, qt.IsTrue)
}

func TestRandomize(t *testing.T) {
	c := qt.New(t)
	s, out := runSession(c, "2\n2\n7\n")
	c.Assert(out, qt.Contains, "Game of Life - Current State")
	g := s.Grid()
	c.Assert(g.Rows(), qt.Equals, 20)
	c.Assert(g.Cols(), qt.Equals, 20)

	want, err := model.NewGrid(20, 20)
	c.Assert(err, qt.IsNil)
	want.Randomize(model.NewRandomSource(1))
	c.Assert(g.Snapshot().Equal(want.Snapshot()), qt.IsTrue)
}

func TestRunGenerations(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "blinker.txt")
	c.Assert(os.WriteFile(path, []byte("5 5\n00000\n00100\n00100\n00100\n00000\n"), 0o644), qt.IsNil)

	s, out := runSession(c, "5\n"+path+"\n3\n2\n7\n")
	c.Assert(out, qt.Contains, "Pattern loaded successfully from file.")
	c.Assert(out, qt.Contains, "Gen: 1 | Living: 3 | Density: 12.0% | Status: Active | Bounding box: 3 cells")
	c.Assert(out, qt.Contains, "Gen: 2 | Living: 3 | Density: 12.0% | Status: Stable | Bounding box: 3 cells")
	c.Assert(strings.Contains(out, "Gen: 3"), qt.IsFalse)

	// Two generations bring the blinker back to its vertical phase.
	g := s.Grid()
	c.Assert(g.Alive(1, 2), qt.IsTrue)
	c.Assert(g.Alive(2, 2), qt.IsTrue)
	c.Assert(g.Alive(3, 2), qt.IsTrue)
	c.Assert(g.CountLivingCells(), qt.Equals, 3)
}

func TestRunExtinct(t *testing.T) {
	c := qt.New(t)
	_, out := runSession(c, "1\n1\n45\nn\n3\n1\n7\n")
	c.Assert(out, qt.Contains, "Gen: 1 | Living: 0 | Density: 0.0% | Status: Extinct | Bounding box: 0 cells")
}

func TestRunNegativeGenerations(t *testing.T) {
	c := qt.New(t)
	s, out := runSession(c, "3\n-1\n7\n")
	c.Assert(out, qt.Contains, "Invalid number of generations: [RunFor] generation count must not be negative, got -1: invalid argument\n")
	c.Assert(out, qt.Contains, "Exiting...")
	c.Assert(s.Grid().CountLivingCells(), qt.Equals, 0)
}

func TestReset(t *testing.T) {
	c := qt.New(t)
	s, _ := runSession(c, "2\n1\n4\n7\n")
	c.Assert(s.Grid().Rows(), qt.Equals, 10)
	c.Assert(s.Grid().CountLivingCells(), qt.Equals, 0)
}

func TestLoadMissingFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "missing.txt")
	s, out := runSession(c, "5\n"+path+"\n7\n")
	c.Assert(out, qt.Contains, "Error opening file: "+path)
	c.Assert(s.Grid().Rows(), qt.Equals, 20)
}

func TestLoadMalformedFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "bad.txt")
	c.Assert(os.WriteFile(path, []byte("2 2\n101\n"), 0o644), qt.IsNil)
	s, out := runSession(c, "5\n"+path+"\n7\n")
	c.Assert(out, qt.Contains, "Error reading pattern: ")
	c.Assert(out, qt.Contains, "2x2 pattern needs 4 cells, found 3")
	c.Assert(s.Grid().Rows(), qt.Equals, 20)
}

func TestSavePattern(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "saved.txt")
	s, out := runSession(c, "1\n1\n12\nn\n6\n"+path+"\n7\n")
	c.Assert(out, qt.Contains, "Pattern saved to "+path+".")

	p, err := pattern.ReadFile(path)
	c.Assert(err, qt.IsNil)
	loaded, err := model.NewGrid(1, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Apply(loaded), qt.IsNil)
	c.Assert(loaded.Snapshot().Equal(s.Grid().Snapshot()), qt.IsTrue)
	c.Assert(loaded.Alive(1, 1), qt.IsTrue)
}

func TestLoadPattern(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "plus.txt")
	c.Assert(os.WriteFile(path, []byte("3 3 0 1 0 1 0 1 0 1 0"), 0o644), qt.IsNil)

	var out bytes.Buffer
	s, err := New(testConfig(), strings.NewReader(""), &out, model.NewRandomSource(1))
	c.Assert(err, qt.IsNil)
	c.Assert(s.LoadPattern(path), qt.IsNil)
	c.Assert(s.Grid().Rows(), qt.Equals, 3)
	c.Assert(s.Grid().CountLivingCells(), qt.Equals, 4)

	c.Assert(s.LoadPattern(filepath.Join(c.TempDir(), "nope")), qt.ErrorIs, pattern.ErrNotFound)
}

func TestNewRejectsBadSize(t *testing.T) {
	c := qt.New(t)
	config := testConfig()
	config.Rows = 0
	_, err := New(config, strings.NewReader(""), &bytes.Buffer{}, model.NewRandomSource(1))
	c.Assert(err, qt.ErrorIs, model.ErrInvalidArgument)
}

func TestRunCancelled(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// An input that never ends: the session must give up on its own.
	r, w, err := os.Pipe()
	c.Assert(err, qt.IsNil)
	defer r.Close()
	defer w.Close()

	s, err := New(testConfig(), r, &bytes.Buffer{}, model.NewRandomSource(1))
	c.Assert(err, qt.IsNil)
	c.Assert(s.Run(ctx), qt.ErrorIs, context.Canceled)
}

func TestSleepCancelled(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	c.Assert(sleep(ctx, time.Hour), qt.ErrorIs, context.Canceled)
	c.Assert(time.Since(start) < time.Minute, qt.IsTrue)
	c.Assert(sleep(context.Background(), 0), qt.IsNil)
}
