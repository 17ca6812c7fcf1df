package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Rows, Cols, MineCount int
}

func (p GameParams) Unpack() (rows int, cols int, mc int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) Validate() error {
	rows, cols, mineCount := p.Unpack()
	switch {
	case rows <= 0 || cols <= 0:
		return fmt.Errorf("%w: dimensions must be positive (rows = %d, cols = %d)",
			ErrInvalidConfig, rows, cols)
	case mineCount < 0:
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidConfig, mineCount)
	case mineCount >= rows*cols:
		return fmt.Errorf("%w: %d mines do not fit on a %dx%d board",
			ErrInvalidConfig, mineCount, rows, cols)
	}
	return nil
}

func (p GameParams) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

// String formats p as ROWSxCOLS(MINES), e.g. "16x30(99)".
func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.MineCount)
}

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var presets = map[Difficulty]GameParams{
	Easy:   {Rows: 9, Cols: 9, MineCount: 10},
	Medium: {Rows: 16, Cols: 16, MineCount: 40},
	Hard:   {Rows: 16, Cols: 30, MineCount: 99},
}

func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) Params() GameParams {
	return presets[d]
}

func (d Difficulty) Valid() bool {
	_, ok := presets[d]
	return ok
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}
