// Package api provides HTTP REST API handlers for board resolution.
//
// Endpoints:
//
// Health:
//   - GET /api/health - Liveness check
//
// Boards:
//   - GET /api/boards - List available boards
//   - POST /api/boards - Save a board configuration
//   - GET /api/boards/{name} - Board configuration, portals and winning squares
//
// Resolution:
//   - GET /api/boards/{name}/portals/{square} - Portal anchored at a square
//   - POST /api/boards/{name}/resolve - Resolve one landed-on square
//   - POST /api/boards/{name}/resolve-batch - Resolve up to 50 squares independently
//
// WebSocket:
//   - GET /ws?board={name} - Subscribe to resolutions made on a board
//
// The name "default" selects the server's default board.
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A resolution request looks like:
//
//	{"square": 80}
//
// and returns:
//
//	{
//	  "board": "classic",
//	  "landed": 80,
//	  "portal": {"kind": "ladder", "destination": 100},
//	  "action": {"kind": "win", "target": 100},
//	  "message": "Climbed a ladder from 80 to 100. Reached square 100. Victory!"
//	}
//
// An overshoot is not an error: it resolves to {"kind": "no_move"} with the
// attempted square as target.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message",
//	  "code": 404
//	}
package api
