package service

import (
	"time"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// BoardInfo provides summary information about a board configuration
type BoardInfo struct {
	Filename    string        `json:"filename"`
	ConfigID    string        `json:"config_id"` // The identifier to use in board paths
	Name        string        `json:"name"`      // Display name
	Description string        `json:"description"`
	BoardSize   engine.Square `json:"board_size"`
	Portals     int           `json:"portals"`
	Ladders     int           `json:"ladders"`
	Snakes      int           `json:"snakes"`
}

// NewBoardInfo summarizes a board configuration
func NewBoardInfo(filename, configID string, config *engine.BoardConfig) *BoardInfo {
	table := engine.NewPortalTableFromEntries(config.Entries())
	return &BoardInfo{
		Filename:    filename,
		ConfigID:    configID,
		Name:        config.Name,
		Description: config.Description,
		BoardSize:   config.BoardSize,
		Portals:     table.Len(),
		Ladders:     engine.CountPortalKind(table, engine.Ladder),
		Snakes:      engine.CountPortalKind(table, engine.Snake),
	}
}

// BoardDetail is a board configuration with derived facts
type BoardDetail struct {
	ConfigID       string               `json:"config_id"`
	Config         *engine.BoardConfig  `json:"config"`
	Portals        []engine.PortalEntry `json:"portals"`
	Ladders        int                  `json:"ladders"`
	Snakes         int                  `json:"snakes"`
	WinningSquares []engine.Square      `json:"winning_squares"`
}

// PortalInfo reports the portal anchored at a square, if any
type PortalInfo struct {
	Board  string         `json:"board"`
	Square engine.Square  `json:"square"`
	Found  bool           `json:"found"`
	Portal *engine.Portal `json:"portal,omitempty"`
}

// ResolveResult contains the result of resolving a landed-on square
type ResolveResult struct {
	Board     string         `json:"board"`
	Landed    engine.Square  `json:"landed"`
	Portal    *engine.Portal `json:"portal,omitempty"`
	Action    engine.Action  `json:"action"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}

// BatchResolveResult contains independent resolutions of several squares
type BatchResolveResult struct {
	Board            string          `json:"board"`
	RequestedSquares int             `json:"requested_squares"`
	Resolved         int             `json:"resolved"`
	Truncated        bool            `json:"truncated,omitempty"`
	Limit            int             `json:"limit,omitempty"`
	Results          []ResolveResult `json:"results"`

	// Tallies per action kind
	Moves   int `json:"moves"`
	Wins    int `json:"wins"`
	NoMoves int `json:"no_moves"`
}
