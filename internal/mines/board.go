package mines

import (
	"iter"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type Cell struct {
	Mine          bool
	Revealed      bool
	Flagged       bool
	NeighborMines int
	Row, Col      int
}

// Board owns the cells of one game. Mines are placed lazily by
// [Board.PlaceMines], so a fresh board is empty.
//
// A Board is not safe for concurrent use.
type Board struct {
	params        GameParams
	cells         []Cell // row-major
	revealed      int
	flagged       int
	minesPlaced   bool
	minesRevealed bool
	exploded      int
}

func NewBoard(rows, cols, mineCount int) (*Board, error) {
	params := GameParams{Rows: rows, Cols: cols, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i].Row = i / cols
		cells[i].Col = i % cols
	}
	return &Board{
		params:   params,
		cells:    cells,
		exploded: -1,
	}, nil
}

func (b *Board) Rows() int { return b.params.Rows }

func (b *Board) Cols() int { return b.params.Cols }

func (b *Board) MineCount() int { return b.params.MineCount }

func (b *Board) Params() GameParams { return b.params }

func (b *Board) RevealedCount() int { return b.revealed }

func (b *Board) FlaggedCount() int { return b.flagged }

func (b *Board) MinesPlaced() bool { return b.minesPlaced }

func (b *Board) InBounds(row, col int) bool {
	return b.params.PointInBounds(row, col)
}

// Cell returns a copy of the cell at row, col. The position must be in bounds.
func (b *Board) Cell(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

func (b *Board) index(row, col int) int {
	return row*b.params.Cols + col
}

// neighbors yields the indices of the up to 8 cells around row, col.
func (b *Board) neighbors(row, col int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := row+dr, col+dc
				if (dr == 0 && dc == 0) || !b.InBounds(r, c) {
					continue
				}
				if !yield(b.index(r, c)) {
					return
				}
			}
		}
	}
}

// PlaceMines lays out MineCount mines uniformly at random over every cell
// except excludeRow, excludeCol, then fills in neighbor counts.
func (b *Board) PlaceMines(excludeRow, excludeCol int, r *rand.Rand) error {
	if b.minesPlaced {
		return ErrAlreadyPlaced
	}
	if !b.InBounds(excludeRow, excludeCol) {
		return ErrOutOfBounds
	}

	exclude := b.index(excludeRow, excludeCol)
	candidates := make([]int, 0, len(b.cells)-1)
	for i := range b.cells {
		if i != exclude {
			candidates = append(candidates, i)
		}
	}

	/*
	 * Pick n off the list at random, moving the last candidate into
	 * each hole so every draw stays uniform over what is left.
	 */
	k := len(candidates)
	for range b.params.MineCount {
		i := r.IntN(k)
		b.cells[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}

	b.countNeighbors()
	b.minesPlaced = true

	Log.WithFields(logrus.Fields{
		"board":   b.params.String(),
		"exclude": [2]int{excludeRow, excludeCol},
	}).Debug("mines placed")

	return nil
}

func (b *Board) countNeighbors() {
	for i := range b.cells {
		c := &b.cells[i]
		if c.Mine {
			continue
		}
		c.NeighborMines = 0
		for j := range b.neighbors(c.Row, c.Col) {
			if b.cells[j].Mine {
				c.NeighborMines++
			}
		}
	}
}

type RevealOutcome int

const (
	Revealed RevealOutcome = iota
	AlreadyRevealed
	Flagged
	HitMine
	OutOfBounds
)

func (o RevealOutcome) String() string {
	switch o {
	case Revealed:
		return "revealed"
	case AlreadyRevealed:
		return "already revealed"
	case Flagged:
		return "flagged"
	case HitMine:
		return "hit mine"
	case OutOfBounds:
		return "out of bounds"
	default:
		return "unknown"
	}
}

type RevealResult struct {
	Outcome RevealOutcome
	Count   int // cells newly revealed, cascade included
}

// Reveal opens the cell at row, col. Opening a cell with no mined neighbors
// opens its neighbors too, transitively; flagged cells stop the cascade and
// stay covered.
func (b *Board) Reveal(row, col int) RevealResult {
	if !b.InBounds(row, col) {
		return RevealResult{Outcome: OutOfBounds}
	}

	i := b.index(row, col)
	c := &b.cells[i]
	switch {
	case c.Revealed:
		return RevealResult{Outcome: AlreadyRevealed}
	case c.Flagged:
		return RevealResult{Outcome: Flagged}
	}

	c.Revealed = true
	b.revealed++

	if c.Mine {
		b.exploded = i
		return RevealResult{Outcome: HitMine, Count: 1}
	}

	count := 1
	todo := newCellTodo(len(b.cells))
	todo.add(i)

	for j := todo.head; j >= 0; j = todo.next[j] {
		if b.cells[j].NeighborMines != 0 {
			continue
		}
		for k := range b.neighbors(b.cells[j].Row, b.cells[j].Col) {
			n := &b.cells[k]
			if n.Revealed || n.Flagged {
				continue
			}
			if n.Mine {
				panic(AssertionError{"cascade reached a mine"})
			}
			n.Revealed = true
			b.revealed++
			count++
			todo.add(k)
		}
	}

	return RevealResult{Outcome: Revealed, Count: count}
}

// ToggleFlag flips the flag on a covered cell and reports whether anything
// changed.
func (b *Board) ToggleFlag(row, col int) bool {
	if !b.InBounds(row, col) {
		return false
	}
	c := &b.cells[b.index(row, col)]
	if c.Revealed {
		return false
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		b.flagged++
	} else {
		b.flagged--
	}
	return true
}

func (b *Board) IsWon() bool {
	rows, cols, mineCount := b.params.Unpack()
	return b.revealed == rows*cols-mineCount
}

// RevealAllMines uncovers every mine for display at game end. It leaves
// RevealedCount alone.
func (b *Board) RevealAllMines() {
	for i := range b.cells {
		if b.cells[i].Mine {
			b.cells[i].Revealed = true
		}
	}
	b.minesRevealed = true
}

func (b *Board) Snapshot() Snapshot {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Snapshot{
		Rows:          b.params.Rows,
		Cols:          b.params.Cols,
		MineCount:     b.params.MineCount,
		RevealedCount: b.revealed,
		FlaggedCount:  b.flagged,
		MinesPlaced:   b.minesPlaced,
		Cells:         cells,
		exploded:      b.exploded,
		minesRevealed: b.minesRevealed,
	}
}
