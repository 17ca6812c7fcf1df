package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var statusText = map[mines.State]string{
	mines.Ready:   "Reveal a cell to start!",
	mines.Playing: "Game in progress... Good luck!",
	mines.Won:     "You won! Congratulations!",
	mines.Lost:    "Game over! You hit a mine.",
}

func renderBoard(w io.Writer, s *mines.Session) {
	snap := s.Snapshot()

	fmt.Fprintf(w, "%s  flags: %02d  time: %03d  [%s]\n",
		statusText[s.State()], s.RemainingFlags(), s.ElapsedSeconds(), s.Difficulty())

	var header strings.Builder
	header.WriteString("    ")
	for col := range snap.Cols {
		fmt.Fprintf(&header, "%d ", col%10)
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	lines := strings.Split(strings.TrimSuffix(snap.Grid().ToString(snap.Cols), "\n"), "\n")
	for row, line := range lines {
		fmt.Fprintf(w, "%2d  %s\n", row, strings.TrimRight(line, " "))
	}
}

func renderSummary(w io.Writer, s *mines.Session) {
	switch s.State() {
	case mines.Won:
		fmt.Fprintln(w, "Congratulations! You successfully cleared all the mines!")
	case mines.Lost:
		fmt.Fprintln(w, "Game Over! You hit a mine! Better luck next time.")
	default:
		return
	}
	fmt.Fprintf(w, "time: %ds  difficulty: %s\n",
		s.ElapsedSeconds(), capitalize(s.Difficulty().String()))
	fmt.Fprintln(w, "r to play again, n LEVEL to switch difficulty, q to quit")
}
