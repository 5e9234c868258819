// Package draw renders the playfield to a terminal with half-block characters
// and ANSI cursor positioning.
package draw

import (
	"io"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Terminal control sequences.
const (
	seqClear       = "\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
	seqAltScreen   = "\033[?1049h"
	seqMainScreen  = "\033[?1049l"
	seqMouseOn     = "\033[?1000h\033[?1006h" // Button presses, SGR encoding
	seqMouseOff    = "\033[?1006l\033[?1000l"
	seqResetColors = "\033[0m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}

// EnterGame switches to the alternate screen, hides the cursor and turns on
// mouse reporting. Undo with LeaveGame.
func EnterGame(w io.Writer) {
	io.WriteString(w, seqAltScreen+seqHideCursor+seqMouseOn+seqClear)
}

// LeaveGame restores the terminal to how EnterGame found it.
func LeaveGame(w io.Writer) {
	io.WriteString(w, seqMouseOff+seqResetColors+seqClear+seqShowCursor+seqMainScreen)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
