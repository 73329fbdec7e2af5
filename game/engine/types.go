package engine

import (
	"fmt"
	"time"
)

// Occupant identifies what sits on a cell
type Occupant string

const (
	Empty   Occupant = "empty"
	Player1 Occupant = "player1"
	Player2 Occupant = "player2"

	// Validation constants
	MinRows        = 3
	MaxRows        = 50
	MinCols        = 3
	MaxCols        = 50
	DefaultRows    = 5
	DefaultCols    = 20
	DefaultDepth   = 2
	DefaultPieces  = 10
	MaxHistoryPage = 100
)

// IsPlayer reports whether o is one of the two players
func (o Occupant) IsPlayer() bool {
	return o == Player1 || o == Player2
}

// Opponent returns the other player. Empty has no opponent.
func (o Occupant) Opponent() Occupant {
	switch o {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// Label returns a human readable player name ("Player 1")
func (o Occupant) Label() string {
	switch o {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	}
	return "Nobody"
}

// Position represents row,col coordinates
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add offsets p by n steps in the given direction
func (p Position) Add(d Direction, n int) Position {
	return Position{Row: p.Row + d.DRow*n, Col: p.Col + d.DCol*n}
}

// Direction is a unit step on the grid
type Direction struct {
	DRow int
	DCol int
}

// Directions lists the eight orthogonal and diagonal steps, row-major
var Directions = []Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// GameConfig represents a board variant loaded from JSON
type GameConfig struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	Formation   Formation `json:"formation"`
	// Setup is an optional custom starting position in Board.String form.
	// When set it replaces the formation.
	Setup       []string  `json:"setup,omitempty"`
	Messages    struct {
		Welcome     string `json:"welcome"`
		Turn        string `json:"turn"`
		Moved       string `json:"moved"`
		InvalidMove string `json:"invalid_move"`
		WrongPlayer string `json:"wrong_player"`
	} `json:"messages"`
}

// Selection is the piece currently picked up by the active player together
// with the destinations computed for it
type Selection struct {
	Origin    Position     `json:"origin"`
	Player    Occupant     `json:"player"`
	Reachable Reachability `json:"reachable"`
}

// GameState represents the complete game state
type GameState struct {
	Board       *Board     `json:"board"`
	Turn        Occupant   `json:"turn"`
	Selection   *Selection `json:"selection,omitempty"`
	Message     string     `json:"message"`
	ConfigName  string     `json:"config_name"`
	MoveHistory MoveLog    `json:"move_history"`
	TotalMoves  int        `json:"total_moves"`
}

// MoveRecord is a single applied move. Records are never modified once logged.
type MoveRecord struct {
	MoveNumber int       `json:"move_number"`
	Player     Occupant  `json:"player"`
	From       Position  `json:"from"`
	To         Position  `json:"to"`
	Jumps      int       `json:"jumps"`
	Timestamp  time.Time `json:"timestamp"`
}
