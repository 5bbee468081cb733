package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

const (
	gridTitle    = "Game of Life - Current State"
	gridPosAlive = "O"
	gridPosDead  = "."

	unixClearCmd = "clear"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out         io.Writer
	ClearScreen bool
}

// NewTerminalRenderer returns a renderer writing to out. A nil out means os.Stdout.
func NewTerminalRenderer(out io.Writer, clearScreen bool) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{Out: out, ClearScreen: clearScreen}
}

// Display renders the grid. Dead cells show their cell number when
// showNumbers is set.
func (r *TerminalRenderer) Display(s Snapshot, showNumbers bool) {
	width := 1
	if showNumbers {
		width = len(strconv.Itoa(s.Rows() * s.Cols()))
	}

	fmt.Fprintf(r.Out, "%s\n\n", gridTitle)
	for row := range s.Rows() {
		for col := range s.Cols() {
			pos := gridPosDead
			switch {
			case s.Alive(row, col):
				pos = gridPosAlive
			case showNumbers:
				pos = strconv.Itoa(s.Number(row, col))
			}
			fmt.Fprintf(r.Out, "%-*s ", width, pos)
		}
		fmt.Fprintln(r.Out)
	}
	fmt.Fprintln(r.Out)
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	if !r.ClearScreen {
		return
	}
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command(unixClearCmd)
	}
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
