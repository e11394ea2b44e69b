// Package mcp exposes board resolution to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, so the MCP process holds no board state of its own.
//
// MCP Tools:
//   - list_boards: List available board configurations
//   - describe_board: Board size, portals and squares that win directly
//   - lookup_portal: The ladder or snake anchored at a square
//   - resolve_square: Resolve a landed-on square into move, win or no_move
//   - resolve_squares: Resolve several squares independently
//   - board_rules: Plain-language resolution rules
//
// Every board-scoped tool takes an optional board argument. Without it the
// server's default board is used.
//
// Transport Modes:
//
//	// Stdio mode
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode: POST JSON-RPC bodies to /mcp
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
