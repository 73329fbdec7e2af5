// Package api provides the HTTP REST API for Leapfrog.
//
// Endpoints:
//
// Session Management:
//   - POST   /api/sessions              create a session ({"config_id": "standard"})
//   - GET    /api/sessions              list sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}         session info with game state
//   - DELETE /api/sessions/{id}         delete a session
//
// Game Operations:
//   - GET    /api/sessions/{id}/state   current game state
//   - POST   /api/sessions/{id}/select  pick up a piece ({"row": 0, "col": 1})
//   - DELETE /api/sessions/{id}/select  put the piece back down
//   - POST   /api/sessions/{id}/move    move ({"from": {"row": 0, "col": 1}, "to": {"row": 0, "col": 2}})
//   - POST   /api/sessions/{id}/reset   restore the starting formation
//   - GET    /api/sessions/{id}/history paginated move log (?page=1&limit=20&order=desc)
//
// Layouts:
//   - GET    /api/configs               list layouts
//   - POST   /api/configs               save a layout
//   - GET    /api/configs/{name}        one layout
//
// Other:
//   - GET    /api/health                liveness probe
//   - GET    /ws?session={id}           WebSocket updates for a session
//
// A move does not need a prior select: the service picks up the origin
// itself. Selections, moves, resets and rejected moves are pushed to the
// session's WebSocket clients.
//
// Error Handling:
//
// Errors are returned as {"error": "message"} with a status derived from the
// underlying error:
//
//	404  unknown session or layout
//	422  wrong player, out of bounds, or destination not reachable
//	400  malformed body or invalid layout
//	500  anything else
package api
