// Package service provides the business logic layer for Leapfrog.
//
// The service package implements:
//   - Multi-session game management
//   - Piece selection and move application
//   - Move history pagination
//   - Layout listing and loading
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads board layouts.
//
// Architecture:
//
// The service layer sits between the transports (HTTP/WebSocket/MCP) and the
// game engine. Every session owns its own engine. The engine is not safe for
// concurrent use, so every call that touches a session runs under the
// service lock, and returned game states are copies that stay valid after
// the lock is released.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, "standard")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sel, err := gameService.Select(ctx, info.ID, engine.Position{Row: 0, Col: 1})
//	result, err := gameService.Move(ctx, info.ID, sel.Origin, sel.Destinations[0].Position)
//
// Move selects the origin itself when the session has no selection for it,
// so a client that already knows the destination can move in one call. A
// rejected destination clears the selection, as a board UI does when the
// player clicks elsewhere.
package service
