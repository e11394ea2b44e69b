package service

import (
	"context"
	"errors"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrBatchEmpty    = errors.New("no squares to resolve")
)

// BoardService defines all board-related operations
type BoardService interface {
	// Boards
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
	GetBoard(ctx context.Context, boardName string) (*BoardDetail, error)
	SaveBoard(ctx context.Context, boardName string, config *engine.BoardConfig) error

	// Resolution
	LookupPortal(ctx context.Context, boardName string, square engine.Square) (*PortalInfo, error)
	Resolve(ctx context.Context, boardName string, square engine.Square) (*ResolveResult, error)
	ResolveBatch(ctx context.Context, boardName string, squares []engine.Square) (*BatchResolveResult, error)
}

// ConfigManager handles board configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.BoardConfig, error)
	ListConfigs() ([]*BoardInfo, error)
	GetDefault() *engine.BoardConfig
	SaveConfig(name string, config *engine.BoardConfig) error
}
