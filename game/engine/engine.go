package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	CurrentTurn() Occupant

	// Selection and movement
	SelectOrigin(origin Position) (Reachability, error)
	ClearSelection()
	ApplyMove(origin, destination Position) (*MoveRecord, error)
	MovablePieces() map[Position]Reachability

	// Configuration
	GetConfig() *GameConfig

	// History
	MoveLog() []MoveRecord
	GetLastMove() *MoveRecord
}

// GameEngine implements the Engine interface. It owns the board, the turn,
// the current selection and the move log of a single game.
type GameEngine struct {
	state  *GameState
	config *GameConfig
	now    func() time.Time
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	cfg := *config
	applyDefaultMessages(&cfg)

	state, err := InitGameStateFromConfig(&cfg)
	if err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: &cfg,
		now:    time.Now,
	}
	if err := engine.SetState(state); err != nil {
		return nil, err
	}
	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the standard 5x20 board
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid
		panic(err)
	}
	return engine
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state after checking the board shape and the
// turn. The selection is dropped.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Board == nil {
		return fmt.Errorf("state board cannot be nil")
	}
	if err := state.Board.validate(); err != nil {
		return err
	}
	if !state.Turn.IsPlayer() {
		return fmt.Errorf("%w: turn must be %s or %s, got %q", ErrInvalidOccupant, Player1, Player2, string(state.Turn))
	}
	if state.MoveHistory == nil {
		state.MoveHistory = MoveLog{}
	}
	state.Selection = nil
	e.state = state
	return nil
}

// Reset puts both formations back and gives the move to player 1. The move
// log is cumulative and survives the reset.
func (e *GameEngine) Reset() *GameState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	state, err := InitGameStateFromConfig(e.config)
	if err != nil {
		// The config was validated when the engine was built
		panic(err)
	}

	state.MoveHistory = prevHistory
	state.TotalMoves = prevTotal
	if err := e.SetState(state); err != nil {
		panic(err)
	}

	return e.state
}

// CurrentTurn returns the player allowed to select a piece
func (e *GameEngine) CurrentTurn() Occupant {
	return e.state.Turn
}

// SelectOrigin picks up the piece on origin for the active player and
// returns every legal destination for it. The result is remembered and is
// what ApplyMove validates against. A rejected selection changes nothing.
func (e *GameEngine) SelectOrigin(origin Position) (Reachability, error) {
	occupant, err := e.state.Board.OccupantAt(origin)
	if err != nil {
		return nil, err
	}
	if occupant != e.state.Turn {
		return nil, fmt.Errorf("%w: %s holds %s, %s is to move", ErrWrongPlayer, origin, occupant, e.state.Turn)
	}

	reach := FindReachable(e.state.Board, origin)
	e.state.Selection = &Selection{
		Origin:    origin,
		Player:    occupant,
		Reachable: reach,
	}

	return reach, nil
}

// ClearSelection drops the piece currently picked up, if any
func (e *GameEngine) ClearSelection() {
	e.state.Selection = nil
}

// ApplyMove moves the selected piece from origin to destination, logs the
// move and passes the turn. Destination must be part of the result of the
// last SelectOrigin call for origin. On error nothing is changed.
func (e *GameEngine) ApplyMove(origin, destination Position) (*MoveRecord, error) {
	board := e.state.Board
	if !board.IsInside(origin) {
		return nil, fmt.Errorf("%w: origin %s", ErrOutOfBounds, origin)
	}
	if !board.IsInside(destination) {
		return nil, fmt.Errorf("%w: destination %s", ErrOutOfBounds, destination)
	}

	mover := board.at(origin)
	if mover != e.state.Turn {
		return nil, fmt.Errorf("%w: %s holds %s, %s is to move", ErrWrongPlayer, origin, mover, e.state.Turn)
	}

	sel := e.state.Selection
	if sel == nil || sel.Origin != origin {
		return nil, fmt.Errorf("%w: %w for %s", ErrInvalidMove, ErrNoSelection, origin)
	}

	jumps, ok := sel.Reachable.Jumps(destination)
	if !ok || board.at(destination) != Empty {
		return nil, fmt.Errorf("%w: %s can not reach %s", ErrInvalidMove, origin, destination)
	}

	board.Cells[origin.Row][origin.Col] = Empty
	board.Cells[destination.Row][destination.Col] = mover

	record := MoveRecord{
		MoveNumber: e.state.TotalMoves + 1,
		Player:     mover,
		From:       origin,
		To:         destination,
		Jumps:      jumps,
		Timestamp:  e.now(),
	}
	e.state.MoveHistory.Append(record)
	e.state.TotalMoves++

	e.state.Selection = nil
	e.state.Turn = mover.Opponent()
	e.state.Message = fmt.Sprintf(e.config.Messages.Moved, mover.Label(), origin, destination) +
		". " + e.TurnMessage()

	return &record, nil
}

// TurnMessage renders the turn banner for the active player
func (e *GameEngine) TurnMessage() string {
	return fmt.Sprintf(e.config.Messages.Turn, e.state.Turn.Label())
}

// MovablePieces returns the destinations of every piece the active player
// could move right now. It does not touch the current selection.
func (e *GameEngine) MovablePieces() map[Position]Reachability {
	movable := make(map[Position]Reachability)
	for _, p := range e.state.Board.Pieces(e.state.Turn) {
		reach := FindReachable(e.state.Board, p)
		if len(reach) > 0 {
			movable[p] = reach
		}
	}
	return movable
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// MoveLog returns a read-only copy of the move log
func (e *GameEngine) MoveLog() []MoveRecord {
	return e.state.MoveHistory.Entries()
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveRecord {
	return e.state.MoveHistory.Last()
}
