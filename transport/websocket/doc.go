// Package websocket pushes Leapfrog game updates to browsers.
//
// A central Hub tracks the clients watching each session. Clients never act
// over the socket: they select and move through the REST API, and the API
// server broadcasts the outcome to every client of that session.
//
// Message Protocol:
//
// Every frame is one JSON Message:
//   - state_update: full GameState after any change, and once on connect
//   - selection: the origin and its labeled destinations
//   - move: the applied MoveRecord
//   - reset: the session went back to the starting formation
//
// Clients pick their session with a query parameter (/ws?session=abc1).
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastToSession(sessionID, state)
//
// Broadcasts are queued and never block the caller. When the queue is full
// or a client stops reading, messages are dropped and the slow client is
// disconnected. Cancelling the Run context closes every connection.
package websocket
