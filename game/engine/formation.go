package engine

import "fmt"

// Formation describes each side's starting block. Pieces fill the Depth
// columns nearest a side's edge, row by row, until Size pieces are placed.
type Formation struct {
	Depth int `json:"depth"`
	Size  int `json:"size"`
}

// DefaultFormation is two columns of ten pieces per side
func DefaultFormation() Formation {
	return Formation{Depth: DefaultDepth, Size: DefaultPieces}
}

// Validate checks the formation fits a rows x cols board without the two
// sides overlapping
func (f Formation) Validate(rows, cols int) error {
	if f.Depth < 1 {
		return fmt.Errorf("formation depth must be at least 1, got %d", f.Depth)
	}
	if f.Depth*2 > cols {
		return fmt.Errorf("formation depth %d does not fit twice in %d columns", f.Depth, cols)
	}
	if f.Size < 1 || f.Size > rows*f.Depth {
		return fmt.Errorf("formation size must be between 1 and %d, got %d", rows*f.Depth, f.Size)
	}
	return nil
}

// InitializeBoard builds a rows x cols board with the standard formation
func InitializeBoard(rows, cols int) (*Board, error) {
	return InitializeBoardWithFormation(rows, cols, DefaultFormation())
}

// InitializeBoardWithFormation builds a rows x cols board with player 1 on the
// left edge and player 2 mirrored on the right edge
func InitializeBoardWithFormation(rows, cols int, f Formation) (*Board, error) {
	if err := f.Validate(rows, cols); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c < f.Depth && r*f.Depth+c < f.Size {
				board.Cells[r][c] = Player1
			}
			mirrored := cols - c - 1
			if mirrored < f.Depth && r*f.Depth+mirrored < f.Size {
				board.Cells[r][c] = Player2
			}
		}
	}

	return board, nil
}
