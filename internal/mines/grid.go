package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown      CellStatus = -2
	Flag         CellStatus = -1
	Mine         CellStatus = 64 // post-game-over
	ExplodedMine CellStatus = 65
	WrongFlag    CellStatus = 66
	// 0-8 for an open cell with given number of mined neighbors
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "."
	case Flag:
		return "F"
	case Mine:
		return "*"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case 0:
		return " "
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the player-facing view of a board, row-major.
type Grid []CellStatus

func (g Grid) ToString(cols int) string {
	var b strings.Builder
	for row := range len(g) / cols {
		for col := range cols {
			fmt.Fprint(&b, g[row*cols+col].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// Snapshot is a detached copy of a board's cells and counters.
type Snapshot struct {
	Rows, Cols, MineCount int
	RevealedCount         int
	FlaggedCount          int
	MinesPlaced           bool
	Cells                 []Cell

	exploded      int
	minesRevealed bool
}

func (s Snapshot) At(row, col int) Cell {
	return s.Cells[row*s.Cols+col]
}

func (s Snapshot) Grid() Grid {
	grid := make(Grid, len(s.Cells))
	for i, c := range s.Cells {
		switch {
		case c.Revealed && c.Mine && i == s.exploded:
			grid[i] = ExplodedMine
		case c.Revealed && c.Mine:
			grid[i] = Mine
		case c.Revealed:
			grid[i] = CellStatus(c.NeighborMines)
		case c.Flagged && s.minesRevealed && !c.Mine:
			grid[i] = WrongFlag
		case c.Flagged:
			grid[i] = Flag
		default:
			grid[i] = Unknown
		}
	}
	return grid
}
