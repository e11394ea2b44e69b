package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
	"github.com/wricardo/mcp-training/snakesladders/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.BoardService
	hub     *websocket.Hub
	router  *mux.Router
}

// DefaultBoardAlias is the path name that selects the default board
const DefaultBoardAlias = "default"

// NewServer creates a new API server. hub may be nil.
func NewServer(boardService service.BoardService, hub *websocket.Hub) *Server {
	s := &Server{
		service: boardService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Boards
	api.HandleFunc("/boards", s.handleListBoards).Methods("GET")
	api.HandleFunc("/boards", s.handleCreateBoard).Methods("POST")
	api.HandleFunc("/boards/{name}", s.handleGetBoard).Methods("GET")

	// Resolution
	api.HandleFunc("/boards/{name}/portals/{square}", s.handleLookupPortal).Methods("GET")
	api.HandleFunc("/boards/{name}/resolve", s.handleResolve).Methods("POST")
	api.HandleFunc("/boards/{name}/resolve-batch", s.handleResolveBatch).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"error": message, "code": status})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBoardNotFound), errors.Is(err, config.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBatchEmpty), errors.Is(err, config.ErrInvalidConfig):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// boardName strips an optional .json suffix from the {name} path variable.
// "default" selects the configured default board.
func boardName(r *http.Request) string {
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")
	if name == DefaultBoardAlias {
		return ""
	}
	return name
}

func parseSquare(raw string) (engine.Square, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid square %q: must be an unsigned 32-bit integer", raw)
	}
	return engine.Square(n), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Board Handlers

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.service.ListBoards(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(boards),
		"boards": boards,
	})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	detail, err := s.service.GetBoard(r.Context(), boardName(r))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var boardConfig engine.BoardConfig
	if err := json.NewDecoder(r.Body).Decode(&boardConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if boardConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Board name is required")
		return
	}
	if boardConfig.Name == DefaultBoardAlias {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Board name %q is reserved", DefaultBoardAlias))
		return
	}

	if err := engine.ValidateBoardConfig(&boardConfig); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.SaveBoard(r.Context(), boardConfig.Name, &boardConfig); err != nil {
		respondError(w, statusFor(err), fmt.Sprintf("Failed to save board: %v", err))
		return
	}

	configID := strings.TrimSuffix(boardConfig.Name, ".json")
	if s.hub != nil {
		s.hub.BroadcastEvent(configID, websocket.EventBoardSaved, boardConfig)
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Board saved successfully",
		"config_id": configID,
	})
}

// Resolution Handlers

func (s *Server) handleLookupPortal(w http.ResponseWriter, r *http.Request) {
	square, err := parseSquare(mux.Vars(r)["square"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := s.service.LookupPortal(r.Context(), boardName(r), square)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	name := boardName(r)

	var req struct {
		Square *engine.Square `json:"square"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Square == nil {
		respondError(w, http.StatusBadRequest, "square is required")
		return
	}

	result, err := s.service.Resolve(r.Context(), name, *req.Square)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastResolution(result.Board, result)
	}

	log.Printf("[RESOLVE] board=%s landed=%d action=%s target=%d",
		result.Board, result.Landed, result.Action.Kind, result.Action.Target)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleResolveBatch(w http.ResponseWriter, r *http.Request) {
	name := boardName(r)

	var req struct {
		Squares []engine.Square `json:"squares"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.ResolveBatch(r.Context(), name, req.Squares)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastBatch(result.Board, result)
	}

	log.Printf("[BATCH] board=%s resolved=%d/%d moves=%d wins=%d no_moves=%d",
		result.Board, result.Resolved, result.RequestedSquares, result.Moves, result.Wins, result.NoMoves)

	respondJSON(w, http.StatusOK, result)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket not available", http.StatusServiceUnavailable)
		return
	}

	board := r.URL.Query().Get("board")
	if board == "" {
		http.Error(w, "board parameter required", http.StatusBadRequest)
		return
	}

	if board == DefaultBoardAlias {
		board = ""
	}

	// Verify board exists
	detail, err := s.service.GetBoard(r.Context(), board)
	if err != nil {
		http.Error(w, "Invalid board", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, detail.ConfigID)
}
