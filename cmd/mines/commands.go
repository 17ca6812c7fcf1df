package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	dec = schema.NewDecoder()

	errQuit = errors.New("quit")
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"o": 2, // reveal
	"f": 2, // toggle flag
	"n": 1, // new game at difficulty
	"r": 0, // restart
	"p": 0, // print board
	"t": 0, // elapsed time
	"h": 0, // help
	"q": 0, // quit
}

const helpText = `commands:
  o ROW COL    reveal a cell
  f ROW COL    flag or unflag a cell
  n LEVEL      switch difficulty (easy, medium, hard)
  r            restart
  p            print the board
  t            print elapsed time
  h            this help
  q            quit
several commands may be separated by ';'
`

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func parsePos(args []string) (pos PosParams, err error) {
	err = dec.Decode(&pos, map[string][]string{
		"row": {args[0]},
		"col": {args[1]},
	})
	if err != nil {
		err = errors.New("row and column must be integers")
	}
	return
}

// executeCommand applies c to s and returns the command verb.
func executeCommand(s *mines.Session, c string) (verb string, err error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return "", nil
	}
	verb = parts[0]
	nargs, ok := commandNargs[verb]
	if !ok {
		return verb, fmt.Errorf("unknown command %q", verb)
	}
	if nargs != len(parts)-1 {
		return verb, fmt.Errorf("%s expects %d argument(s), got %d", verb, nargs, len(parts)-1)
	}
	switch verb {
	case "o", "f":
		pos, err := parsePos(parts[1:])
		if err != nil {
			return verb, err
		}
		if verb == "o" {
			err = s.HandleReveal(pos.Row, pos.Col)
		} else {
			err = s.HandleFlagToggle(pos.Row, pos.Col)
		}
		if errors.Is(err, mines.ErrOutOfBounds) {
			return verb, errors.New("invalid cell coordinates")
		}
		return verb, err
	case "n":
		d, err := mines.ParseDifficulty(parts[1])
		if err != nil {
			return verb, err
		}
		s.ChangeDifficulty(d)
	case "r":
		s.Restart()
	case "q":
		return verb, errQuit
	}
	return verb, nil
}
