package mines

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid board configuration")
	ErrOutOfBounds   = errors.New("cell position out of bounds")

	// Returned by [Board.PlaceMines] on a board that already has mines.
	ErrAlreadyPlaced = AssertionError{"mines already placed"}
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
