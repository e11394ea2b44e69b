// Package config provides board configuration management.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Caching and default configuration selection
//   - Saving new configurations
//   - Process settings from environment variables
//
// Configuration Format:
//
// Boards are stored as JSON files in the configs directory:
//
//	{
//	  "name": "classic",
//	  "description": "Classic 100-square board",
//	  "board_size": 100,
//	  "portals": [
//	    {"from": 2, "to": 38, "kind": "ladder"},
//	    {"from": 47, "to": 26, "kind": "snake"}
//	  ],
//	  "messages": {"win": "Reached square %d. Victory!"}
//	}
//
// The portal kind may be omitted and is then inferred from direction.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board, err := manager.LoadConfig("classic")
//	boards, err := manager.ListConfigs()
//
// Validation:
//
// Every loaded or saved configuration goes through
// engine.ValidateBoardConfig: sources and destinations must lie on the
// board, the final square cannot carry a portal, and no portal may land on
// another portal.
package config
