package engine

import "errors"

var (
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrWrongPlayer     = errors.New("piece does not belong to the active player")
	ErrInvalidMove     = errors.New("invalid move")
	ErrNoSelection     = errors.New("no piece selected")
	ErrInvalidOccupant = errors.New("invalid occupant")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
