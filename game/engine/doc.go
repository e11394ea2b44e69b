// Package engine provides the square-resolution rules of a snakes and ladders board.
//
// The engine package implements:
//   - Portal tables mapping a source square to a snake or ladder
//   - Resolution of a landed-on square into a Move, Win or NoMove action
//   - Board configuration loading and validation
//
// Core Types:
//
// Board resolves squares against a fixed board size and an immutable
// PortalTable. Action is the result of a resolution: a Kind tag and a Target
// square, comparable with ==. BoardConfig describes a board as JSON.
//
// Usage:
//
//	board := engine.NewClassicBoard()
//
//	switch action := board.Resolve(80); action.Kind {
//	case engine.ActionWin:
//		// announce the winner
//	case engine.ActionNoMove:
//		// keep the token where it started
//	case engine.ActionMove:
//		// place the token on action.Target
//	}
//
// Resolution Rules:
//
// A portal anchored at the landed square replaces it with the portal's
// destination. Portals are never chained. If the resulting square equals the
// board size the player wins; if it is past the board the move is rejected
// and the overshot square is reported unchanged; otherwise the token moves
// there. Whether a portal is a ladder or a snake does not change the rules.
package engine
