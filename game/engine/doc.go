// Package engine provides the core rules for the Leapfrog board game.
//
// The engine package implements the game mechanics including:
//   - The board model: piece occupancy on a parametric rows x cols grid
//   - Starting formations for both sides
//   - Reachability search: simple steps and multi-jump chains with
//     minimum jump counts
//   - Move validation and application against the last search result
//   - Turn alternation and the append-only move log
//
// Core Types:
//
// GameEngine is the session object. It owns a GameState (board, active
// player, selection and move log) and is the only thing that mutates it.
// Reachability is the value returned by a search; it maps each reachable
// destination to the minimum number of jumps needed to get there.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Player 1 picks up the piece at row 0, column 1
//	reach, err := gameEngine.SelectOrigin(engine.Position{Row: 0, Col: 1})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// ...and drops it on one of the offered destinations
//	record, err := gameEngine.ApplyMove(engine.Position{Row: 0, Col: 1}, engine.Position{Row: 0, Col: 2})
//
// Game Rules:
//
// Players alternate. A piece either steps onto one of its eight neighbours
// or vaults over the first occupied cell in a straight line, landing the same
// distance beyond it. Vaults chain from every landing cell. The engine never
// declares a winner; that is left to whoever drives it.
//
// The engine is not safe for concurrent use. Callers that share a GameEngine
// between goroutines must serialize access (the service package does).
package engine
