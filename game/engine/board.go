package engine

import (
	"fmt"
	"strings"
)

// Board holds the occupant of every cell. Cells[row][col].
type Board struct {
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	Cells [][]Occupant `json:"cells"`
}

// NewBoard creates an empty rows x cols board
func NewBoard(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, rows, cols)
	}

	cells := make([][]Occupant, rows)
	for r := range cells {
		cells[r] = make([]Occupant, cols)
		for c := range cells[r] {
			cells[r][c] = Empty
		}
	}

	return &Board{Rows: rows, Cols: cols, Cells: cells}, nil
}

// validate checks that Cells matches Rows x Cols and holds only known occupants
func (b *Board) validate() error {
	if b.Rows < 1 || b.Cols < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, b.Rows, b.Cols)
	}
	if len(b.Cells) != b.Rows {
		return fmt.Errorf("%w: board has %d rows of cells, want %d", ErrInvalidConfig, len(b.Cells), b.Rows)
	}
	for r, row := range b.Cells {
		if len(row) != b.Cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, r, len(row), b.Cols)
		}
		for c, o := range row {
			if o != Empty && !o.IsPlayer() {
				return fmt.Errorf("%w: %q at row %d, col %d", ErrInvalidOccupant, string(o), r, c)
			}
		}
	}
	return nil
}

// IsInside reports whether p lies on the grid
func (b *Board) IsInside(p Position) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// OccupantAt returns what sits on p
func (b *Board) OccupantAt(p Position) (Occupant, error) {
	if !b.IsInside(p) {
		return Empty, fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, p, b.Rows, b.Cols)
	}
	return b.Cells[p.Row][p.Col], nil
}

// SetOccupant places o on p, replacing whatever was there
func (b *Board) SetOccupant(p Position, o Occupant) error {
	if !b.IsInside(p) {
		return fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, p, b.Rows, b.Cols)
	}
	if o != Empty && !o.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidOccupant, string(o))
	}
	b.Cells[p.Row][p.Col] = o
	return nil
}

// at is the unchecked lookup used once the caller has guarded with IsInside
func (b *Board) at(p Position) Occupant {
	return b.Cells[p.Row][p.Col]
}

// Count returns the number of cells holding o
func (b *Board) Count(o Occupant) int {
	count := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell == o {
				count++
			}
		}
	}
	return count
}

// Pieces lists the cells holding o in row-major order
func (b *Board) Pieces(o Occupant) []Position {
	var pieces []Position
	for r, row := range b.Cells {
		for c, cell := range row {
			if cell == o {
				pieces = append(pieces, Position{Row: r, Col: c})
			}
		}
	}
	return pieces
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]Occupant, b.Rows)
	for r := range b.Cells {
		cells[r] = append([]Occupant(nil), b.Cells[r]...)
	}
	return &Board{Rows: b.Rows, Cols: b.Cols, Cells: cells}
}

// String renders the board one row per line: '.' empty, 'X' player 1, 'O' player 2
func (b *Board) String() string {
	var sb strings.Builder
	for r, row := range b.Cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			sb.WriteByte(OccupantChar(cell))
		}
	}
	return sb.String()
}

// OccupantChar maps an occupant to its single-character board symbol
func OccupantChar(o Occupant) byte {
	switch o {
	case Player1:
		return 'X'
	case Player2:
		return 'O'
	}
	return '.'
}

// ParseBoard builds a board from rows of '.', 'X' and 'O' as produced by String
func ParseBoard(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidConfig)
	}
	b, err := NewBoard(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		if len(line) != b.Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, r, len(line), b.Cols)
		}
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case '.':
			case 'X':
				b.Cells[r][c] = Player1
			case 'O':
				b.Cells[r][c] = Player2
			default:
				return nil, fmt.Errorf("%w: invalid character '%c' at row %d, col %d", ErrInvalidConfig, line[c], r, c)
			}
		}
	}
	return b, nil
}
