package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// cachedBoard is a resolver built from one loaded config value
type cachedBoard struct {
	config *engine.BoardConfig
	board  *engine.Board
}

// boardServiceImpl implements the BoardService interface
type boardServiceImpl struct {
	configs ConfigManager
	boards  map[string]cachedBoard // by config id
	mu      sync.RWMutex
	now     func() time.Time
}

// NewBoardService creates a new board service instance
func NewBoardService(configs ConfigManager) BoardService {
	return &boardServiceImpl{
		configs: configs,
		boards:  make(map[string]cachedBoard),
		now:     time.Now,
	}
}

// getConfigID returns the config_id for a given display name, used for consistent responses
func (s *boardServiceImpl) getConfigID(configName string) string {
	available, err := s.configs.ListConfigs()
	if err == nil {
		for _, b := range available {
			if b.Name == configName {
				return b.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// loadConfig resolves a board name, empty meaning the default board
func (s *boardServiceImpl) loadConfig(boardName string) (string, *engine.BoardConfig, error) {
	if boardName == "" {
		config := s.configs.GetDefault()
		if config == nil {
			return "", nil, fmt.Errorf("%w: no default board configured", ErrBoardNotFound)
		}
		return s.getConfigID(config.Name), config, nil
	}

	config, err := s.configs.LoadConfig(boardName)
	if err != nil {
		if strings.Contains(err.Error(), "configuration not found") {
			available, listErr := s.configs.ListConfigs()
			if listErr == nil && len(available) > 0 {
				var ids []string
				for _, b := range available {
					ids = append(ids, b.ConfigID)
				}
				return "", nil, fmt.Errorf("%w: '%s'. Available boards: %v", ErrBoardNotFound, boardName, ids)
			}
			return "", nil, fmt.Errorf("%w: '%s'. Use /api/boards to list available boards", ErrBoardNotFound, boardName)
		}
		return "", nil, fmt.Errorf("failed to load board %s: %w", boardName, err)
	}
	return strings.TrimSuffix(boardName, ".json"), config, nil
}

// boardFor returns the resolver for a board id. A cached resolver is reused
// only while the config manager still hands out the same config value.
func (s *boardServiceImpl) boardFor(boardName string) (string, *engine.BoardConfig, *engine.Board, error) {
	id, config, err := s.loadConfig(boardName)
	if err != nil {
		return "", nil, nil, err
	}

	s.mu.RLock()
	cached, ok := s.boards[id]
	s.mu.RUnlock()
	if ok && cached.config == config {
		return id, config, cached.board, nil
	}

	board, err := engine.NewBoardFromConfig(config)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to build board %s: %w", id, err)
	}

	s.mu.Lock()
	if existing, ok := s.boards[id]; ok && existing.config == config {
		board = existing.board
	} else {
		s.boards[id] = cachedBoard{config: config, board: board}
	}
	s.mu.Unlock()

	return id, config, board, nil
}

// ListBoards returns every valid board configuration
func (s *boardServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	return s.configs.ListConfigs()
}

// GetBoard returns a board configuration and its derived facts
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardName string) (*BoardDetail, error) {
	id, config, board, err := s.boardFor(boardName)
	if err != nil {
		return nil, err
	}

	table := board.Portals()
	return &BoardDetail{
		ConfigID:       id,
		Config:         config,
		Portals:        table.Entries(),
		Ladders:        engine.CountPortalKind(table, engine.Ladder),
		Snakes:         engine.CountPortalKind(table, engine.Snake),
		WinningSquares: engine.WinningSquares(board),
	}, nil
}

// SaveBoard validates and stores a board configuration
func (s *boardServiceImpl) SaveBoard(ctx context.Context, boardName string, config *engine.BoardConfig) error {
	if config == nil {
		return fmt.Errorf("board config is required")
	}
	if boardName == "" {
		boardName = config.Name
	}
	if err := s.configs.SaveConfig(boardName, config); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.boards, strings.TrimSuffix(boardName, ".json"))
	s.mu.Unlock()
	return nil
}

// LookupPortal returns the portal anchored at square, if any
func (s *boardServiceImpl) LookupPortal(ctx context.Context, boardName string, square engine.Square) (*PortalInfo, error) {
	id, _, board, err := s.boardFor(boardName)
	if err != nil {
		return nil, err
	}

	info := &PortalInfo{Board: id, Square: square}
	if p, ok := board.Lookup(square); ok {
		info.Found = true
		info.Portal = &p
	}
	return info, nil
}

// Resolve resolves a single landed-on square
func (s *boardServiceImpl) Resolve(ctx context.Context, boardName string, square engine.Square) (*ResolveResult, error) {
	id, config, board, err := s.boardFor(boardName)
	if err != nil {
		return nil, err
	}

	result := s.resolve(id, config, board, square)
	log.WithFields(log.Fields{
		"board":  id,
		"landed": square,
		"action": result.Action.Kind,
		"target": result.Action.Target,
	}).Debug("resolved square")
	return &result, nil
}

// ResolveBatch resolves up to MaxBatchSquares squares independently
func (s *boardServiceImpl) ResolveBatch(ctx context.Context, boardName string, squares []engine.Square) (*BatchResolveResult, error) {
	if len(squares) == 0 {
		return nil, ErrBatchEmpty
	}

	id, config, board, err := s.boardFor(boardName)
	if err != nil {
		return nil, err
	}

	batch := &BatchResolveResult{
		Board:            id,
		RequestedSquares: len(squares),
	}
	if len(squares) > engine.MaxBatchSquares {
		squares = squares[:engine.MaxBatchSquares]
		batch.Truncated = true
		batch.Limit = engine.MaxBatchSquares
	}

	batch.Results = make([]ResolveResult, 0, len(squares))
	for _, square := range squares {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := s.resolve(id, config, board, square)
		switch result.Action.Kind {
		case engine.ActionWin:
			batch.Wins++
		case engine.ActionNoMove:
			batch.NoMoves++
		default:
			batch.Moves++
		}
		batch.Results = append(batch.Results, result)
	}
	batch.Resolved = len(batch.Results)

	return batch, nil
}

func (s *boardServiceImpl) resolve(id string, config *engine.BoardConfig, board *engine.Board, square engine.Square) ResolveResult {
	res := board.Trace(square)
	return ResolveResult{
		Board:     id,
		Landed:    res.Landed,
		Portal:    res.Portal,
		Action:    res.Action,
		Message:   config.Messages.Describe(res),
		Timestamp: s.now(),
	}
}
