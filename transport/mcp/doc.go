// Package mcp exposes Leapfrog to AI agents over the Model Context Protocol.
//
// Client is a thin proxy: every tool call becomes a REST request against a
// running api.Server, and the JSON answer is rendered as plain text with the
// board drawn as a grid of '.', 'X' and 'O'.
//
// MCP Tools:
//   - create_session, get_session, list_sessions: session management
//   - game_state: board, turn, selection and last move
//   - select_piece: pick up a piece and list its destinations with jump counts
//   - move_piece: move a piece; selects it first when needed
//   - clear_selection, reset_game, move_history
//   - list_configs: available board layouts
//   - game_instructions: rules and board legend
//
// Transport Modes:
//
// The same server is reachable over stdio (the "mcp" command) and as a JSON-RPC
// endpoint at /mcp on the HTTP server.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// Errors reported by the API (wrong player, unreachable destination, unknown
// session) come back as tool results with IsError set, never as protocol
// errors.
package mcp
