package mines

import (
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	Log.SetOutput(io.Discard)
	m.Run()
}

// layoutBoard builds a board with mines at every '*' of layout; any other
// character is a safe cell.
func layoutBoard(t *testing.T, layout ...string) *Board {
	t.Helper()
	mineCount := strings.Count(strings.Join(layout, ""), "*")
	b, err := NewBoard(len(layout), len(layout[0]), mineCount)
	require.NoError(t, err)
	for row, line := range layout {
		require.Len(t, line, b.Cols())
		for col, ch := range line {
			b.cells[b.index(row, col)].Mine = ch == '*'
		}
	}
	b.countNeighbors()
	b.minesPlaced = true
	return b
}

func mineTotal(b *Board) (count int) {
	for _, c := range b.cells {
		if c.Mine {
			count++
		}
	}
	return
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name                  string
		rows, cols, mineCount int
		valid                 bool
	}{
		{"1x1(0)", 1, 1, 0, true},
		{"9x9(10)", 9, 9, 10, true},
		{"16x30(99)", 16, 30, 99, true},
		{"2x2(3)", 2, 2, 3, true},
		{"zero rows", 0, 9, 1, false},
		{"negative cols", 9, -1, 1, false},
		{"negative mines", 9, 9, -1, false},
		{"full of mines", 3, 3, 9, false},
		{"overfull", 3, 3, 10, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewBoard(test.rows, test.cols, test.mineCount)
			if !test.valid {
				require.ErrorIs(t, err, ErrInvalidConfig)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.rows, b.Rows())
			assert.Equal(t, test.cols, b.Cols())
			assert.Equal(t, test.mineCount, b.MineCount())

			p := b.Params()
			p.Rows, p.Cols = 1, 1
			assert.Equal(t, test.rows*test.cols, len(b.Snapshot().Cells))
			assert.Equal(t, test.rows, b.Rows(), "params are returned by value")

			assert.False(t, b.MinesPlaced())
			assert.Zero(t, b.RevealedCount())
			assert.Zero(t, b.FlaggedCount())
			for row := range test.rows {
				for col := range test.cols {
					assert.Equal(t, Cell{Row: row, Col: col}, b.Cell(row, col))
				}
			}
		})
	}
}

func TestPlaceMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{"9x9(10)", GameParams{Rows: 9, Cols: 9, MineCount: 10}},
		{"9x9(80)", GameParams{Rows: 9, Cols: 9, MineCount: 80}},
		{"16x16(40)", GameParams{Rows: 16, Cols: 16, MineCount: 40}},
		{"16x30(99)", GameParams{Rows: 16, Cols: 30, MineCount: 99}},
		{"1x2(1)", GameParams{Rows: 1, Cols: 2, MineCount: 1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			rows, cols, mineCount := test.params.Unpack()
			for sr := range rows {
				for sc := range cols {
					b, err := NewBoard(rows, cols, mineCount)
					require.NoError(t, err)
					require.NoError(t, b.PlaceMines(sr, sc, r))

					assert.True(t, b.MinesPlaced())
					assert.Equal(t, mineCount, mineTotal(b), "%s @ %d:%d", test.name, sr, sc)
					assert.False(t, b.Cell(sr, sc).Mine, "mine in starting cell %d:%d", sr, sc)
				}
			}
		})
	}
}

func TestPlaceMinesNeighborCounts(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		b, err := NewBoard(16, 30, 99)
		require.NoError(t, err)
		require.NoError(t, b.PlaceMines(r.IntN(16), r.IntN(30), r))

		for row := range b.Rows() {
			for col := range b.Cols() {
				c := b.Cell(row, col)
				if c.Mine {
					continue
				}
				want := 0
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						rr, cc := row+dr, col+dc
						if (dr != 0 || dc != 0) && rr >= 0 && rr < b.Rows() &&
							cc >= 0 && cc < b.Cols() && b.Cell(rr, cc).Mine {
							want++
						}
					}
				}
				require.Equal(t, want, c.NeighborMines, "cell %d:%d", row, col)
			}
		}
	}
}

func TestPlaceMinesTwice(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := NewBoard(9, 9, 10)
	require.NoError(t, err)
	require.NoError(t, b.PlaceMines(4, 4, r))
	before := b.Snapshot()

	err = b.PlaceMines(0, 0, r)
	require.ErrorIs(t, err, ErrAlreadyPlaced)
	var ae AssertionError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, before, b.Snapshot())
}

func TestPlaceMinesOutOfBounds(t *testing.T) {
	b, err := NewBoard(9, 9, 10)
	require.NoError(t, err)
	require.ErrorIs(t, b.PlaceMines(9, 0, rand.New(rand.NewPCG(1, 2))), ErrOutOfBounds)
	assert.False(t, b.MinesPlaced())
}

func TestRevealCascade(t *testing.T) {
	b := layoutBoard(t,
		".....",
		".....",
		".....",
		"....*",
	)
	require.Equal(t, 1, b.Cell(2, 3).NeighborMines)
	require.Equal(t, 0, b.Cell(2, 2).NeighborMines)

	res := b.Reveal(0, 0)
	assert.Equal(t, RevealResult{Outcome: Revealed, Count: 19}, res)
	assert.Equal(t, 19, b.RevealedCount())
	assert.False(t, b.Cell(3, 4).Revealed)
	assert.True(t, b.IsWon())
}

func TestRevealNumberDoesNotCascade(t *testing.T) {
	b := layoutBoard(t,
		"*..",
		"...",
		"...",
	)

	res := b.Reveal(1, 1)
	assert.Equal(t, RevealResult{Outcome: Revealed, Count: 1}, res)
	assert.Equal(t, 1, b.RevealedCount())
	assert.False(t, b.Cell(2, 2).Revealed)
}

func TestRevealFlagBlocksCascade(t *testing.T) {
	b := layoutBoard(t,
		"..F..",
		"..F..",
		"..F..",
	)
	require.Zero(t, b.MineCount())
	for row := range 3 {
		require.True(t, b.ToggleFlag(row, 2))
	}

	res := b.Reveal(0, 0)
	assert.Equal(t, RevealResult{Outcome: Revealed, Count: 6}, res)
	for row := range 3 {
		assert.True(t, b.Cell(row, 2).Flagged)
		assert.False(t, b.Cell(row, 2).Revealed)
		assert.False(t, b.Cell(row, 3).Revealed)
		assert.False(t, b.Cell(row, 4).Revealed)
	}
	assert.Equal(t, 3, b.FlaggedCount())
	assert.False(t, b.IsWon())
}

func TestRevealVisitsEachCellOnce(t *testing.T) {
	b := layoutBoard(t,
		"..........",
		"..........",
		"..........",
		"..........",
		".........*",
	)

	res := b.Reveal(0, 0)
	assert.Equal(t, Revealed, res.Outcome)
	assert.Equal(t, 49, res.Count)
	assert.Equal(t, 49, b.RevealedCount())

	revealed := 0
	for _, c := range b.cells {
		if c.Revealed {
			revealed++
		}
	}
	assert.Equal(t, revealed, b.RevealedCount())
}

func TestRevealEarlyReturns(t *testing.T) {
	b := layoutBoard(t,
		"*.",
		"..",
	)
	require.True(t, b.ToggleFlag(1, 1))

	assert.Equal(t, RevealResult{Outcome: Flagged}, b.Reveal(1, 1))
	assert.Equal(t, RevealResult{Outcome: OutOfBounds}, b.Reveal(2, 0))
	assert.Equal(t, RevealResult{Outcome: OutOfBounds}, b.Reveal(0, -1))

	assert.Equal(t, RevealResult{Outcome: Revealed, Count: 1}, b.Reveal(0, 1))
	assert.Equal(t, RevealResult{Outcome: AlreadyRevealed}, b.Reveal(0, 1))
	assert.Equal(t, 1, b.RevealedCount())

	assert.Equal(t, RevealResult{Outcome: HitMine, Count: 1}, b.Reveal(0, 0))
	assert.True(t, b.Cell(0, 0).Revealed)
}

func TestSingleCellBoard(t *testing.T) {
	b, err := NewBoard(1, 1, 0)
	require.NoError(t, err)
	require.NoError(t, b.PlaceMines(0, 0, rand.New(rand.NewPCG(1, 2))))
	assert.False(t, b.IsWon())

	res := b.Reveal(0, 0)
	assert.Equal(t, Revealed, res.Outcome)
	assert.Equal(t, 1, b.RevealedCount())
	assert.True(t, b.IsWon())
}

func TestIsWonIgnoresFlags(t *testing.T) {
	b := layoutBoard(t,
		"*.",
		"*.",
	)
	require.True(t, b.ToggleFlag(1, 1))
	b.Reveal(0, 1)
	assert.False(t, b.IsWon())

	require.True(t, b.ToggleFlag(1, 1))
	b.Reveal(1, 1)
	assert.True(t, b.IsWon(), "mines need not be flagged")
}

func TestToggleFlag(t *testing.T) {
	b := layoutBoard(t,
		"*..",
		"...",
	)

	assert.True(t, b.ToggleFlag(0, 0))
	assert.True(t, b.Cell(0, 0).Flagged)
	assert.Equal(t, 1, b.FlaggedCount())

	assert.True(t, b.ToggleFlag(0, 0))
	assert.False(t, b.Cell(0, 0).Flagged)
	assert.Equal(t, 0, b.FlaggedCount())

	b.Reveal(1, 2)
	assert.False(t, b.ToggleFlag(1, 2), "revealed cells cannot be flagged")
	assert.False(t, b.Cell(1, 2).Flagged)
	assert.False(t, b.ToggleFlag(5, 5))
	assert.Equal(t, 0, b.FlaggedCount())
}

func TestRevealAllMines(t *testing.T) {
	b := layoutBoard(t,
		"*..",
		"..*",
		"*..",
	)
	require.True(t, b.ToggleFlag(0, 0))
	b.Reveal(1, 0)
	revealed := b.RevealedCount()

	b.RevealAllMines()
	once := b.Snapshot()
	b.RevealAllMines()
	assert.Equal(t, once, b.Snapshot())

	for _, c := range once.Cells {
		if c.Mine {
			assert.True(t, c.Revealed)
		}
	}
	assert.Equal(t, revealed, b.RevealedCount())
}

func TestSnapshotIsDetached(t *testing.T) {
	b := layoutBoard(t,
		"*.",
		"..",
	)
	snap := b.Snapshot()
	snap.Cells[1].Revealed = true
	snap.Cells[1].Flagged = true

	assert.False(t, b.Cell(0, 1).Revealed)
	assert.False(t, b.Cell(0, 1).Flagged)
	assert.Equal(t, Cell{Mine: true}, snap.At(0, 0))
	assert.Equal(t, 2, snap.Rows)
	assert.Equal(t, 1, snap.MineCount)
}
