package mines

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

type State int

const (
	Ready State = iota
	Playing
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) Terminal() bool {
	return s == Won || s == Lost
}

// Session drives one board through a game: it defers mine placement to the
// first reveal, tracks the play clock and decides win or loss.
//
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	state             State
	difficulty        Difficulty
	board             *Board
	firstClickPending bool
	startedAt         time.Time
	endedAt           time.Time

	rnd *rand.Rand
	now func() time.Time
}

// NewSession returns a session in the Ready state. A nil now defaults to
// [time.Now].
func NewSession(d Difficulty, r *rand.Rand, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{rnd: r, now: now}
	s.StartNewGame(d)
	return s
}

// StartNewGame discards the current board and resets to Ready with a fresh
// mineless board for d. Unknown difficulties fall back to [Easy].
func (s *Session) StartNewGame(d Difficulty) {
	if !d.Valid() {
		Log.WithField("difficulty", d).Warn("unknown difficulty, using easy")
		d = Easy
	}
	rows, cols, mineCount := d.Params().Unpack()
	board, err := NewBoard(rows, cols, mineCount)
	if err != nil {
		// presets are valid by construction
		panic(AssertionError{err.Error()})
	}

	s.board = board
	s.difficulty = d
	s.state = Ready
	s.firstClickPending = true
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}

	Log.WithField("difficulty", d).Debug("new game")
}

func (s *Session) Restart() {
	s.StartNewGame(s.difficulty)
}

// ChangeDifficulty starts a new game at d unless d is already selected.
func (s *Session) ChangeDifficulty(d Difficulty) {
	if d == s.difficulty {
		return
	}
	s.StartNewGame(d)
}

func (s *Session) HandleReveal(row, col int) error {
	if s.state.Terminal() {
		return nil
	}
	if !s.board.InBounds(row, col) {
		return ErrOutOfBounds
	}
	if c := s.board.Cell(row, col); c.Revealed || c.Flagged {
		return nil
	}

	if s.firstClickPending {
		if err := s.board.PlaceMines(row, col, s.rnd); err != nil {
			return err
		}
		s.startedAt = s.now()
		s.firstClickPending = false
		s.setState(Playing)
	}

	res := s.board.Reveal(row, col)
	Log.WithFields(logrus.Fields{
		"row":     row,
		"col":     col,
		"outcome": res.Outcome,
		"count":   res.Count,
	}).Debug("reveal")

	switch {
	case res.Outcome == HitMine:
		s.board.RevealAllMines()
		s.end(Lost)
	case s.board.IsWon():
		s.board.RevealAllMines()
		s.end(Won)
	}
	return nil
}

func (s *Session) HandleFlagToggle(row, col int) error {
	if s.state.Terminal() {
		return nil
	}
	if !s.board.InBounds(row, col) {
		return ErrOutOfBounds
	}
	s.board.ToggleFlag(row, col)
	return nil
}

func (s *Session) end(state State) {
	s.endedAt = s.now()
	s.setState(state)
}

func (s *Session) setState(state State) {
	Log.WithFields(logrus.Fields{
		"from": s.state,
		"to":   state,
	}).Debug("state change")
	s.state = state
}

// ElapsedSeconds is the whole number of seconds since the first reveal,
// stopped when the game ended.
func (s *Session) ElapsedSeconds() int64 {
	if s.startedAt.IsZero() {
		return 0
	}
	until := s.endedAt
	if until.IsZero() {
		until = s.now()
	}
	return int64(until.Sub(s.startedAt) / time.Second)
}

func (s *Session) State() State { return s.state }

func (s *Session) Difficulty() Difficulty { return s.difficulty }

func (s *Session) FirstClickPending() bool { return s.firstClickPending }

func (s *Session) Snapshot() Snapshot { return s.board.Snapshot() }

// RemainingFlags is the mine count minus placed flags. It goes negative
// when the player over-flags.
func (s *Session) RemainingFlags() int {
	return s.board.MineCount() - s.board.FlaggedCount()
}
