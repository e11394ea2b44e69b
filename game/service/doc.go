// Package service provides the business logic layer between transports and the engine.
//
// The service package implements:
//   - Board discovery and configuration storage
//   - Portal lookup on a named board
//   - Single and batch square resolution with human readable messages
//
// Core Interfaces:
//
// BoardService is the main service interface used by the REST API and, through
// it, the MCP tools. ConfigManager abstracts board configuration loading and
// is implemented by config.Manager.
//
// Usage:
//
//	configMgr, _ := config.NewManager("configs")
//	boardService := service.NewBoardService(configMgr)
//
//	result, err := boardService.Resolve(ctx, "classic", 80)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// result.Action == engine.Win(100)
//
// Resolvers are built once per loaded configuration and shared by all
// callers. An empty board name selects the default board.
package service
