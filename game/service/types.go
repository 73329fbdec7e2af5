package service

import (
	"time"

	"github.com/wricardo/leapfrog/game/engine"
)

// Event types reported in MoveResult.Events and pushed to WebSocket clients
const (
	EventSelect    = "select"
	EventMove      = "move"
	EventJumpChain = "jump_chain"
	EventTurn      = "turn"
	EventReset     = "reset"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// SelectResult is the outcome of picking up a piece
type SelectResult struct {
	Origin       engine.Position      `json:"origin"`
	Player       engine.Occupant      `json:"player"`
	Destinations []engine.Destination `json:"destinations"`
	GameState    *engine.GameState    `json:"game_state"`
	Message      string               `json:"message"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool               `json:"success"`
	Move      *engine.MoveRecord `json:"move"`
	GameState *engine.GameState  `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "select", "move", "jump_chain", "turn", "reset"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Player    engine.Occupant  `json:"player,omitempty"`
	Position  *engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a board layout
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Pieces      int    `json:"pieces"` // per side
}
