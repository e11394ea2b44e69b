package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
)

// ServerName and ServerVersion identify the MCP server
const (
	ServerName    = "Snakes and Ladders Board"
	ServerVersion = "1.0.0"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snakes and Ladders Board - MCP Interface

This is a thin client that proxies all requests to the REST API server.

It answers one question: a token landed on square N, what happens next?
Each board has a final square and a set of portals (ladders climb, snakes slide).

AVAILABLE TOOLS:
- list_boards: List available boards
- describe_board: Board size, portals and squares that win directly
- lookup_portal: The ladder or snake anchored at a square, if any
- resolve_square: Resolve one landed-on square into move / win / no_move
- resolve_squares: Resolve several squares independently
- board_rules: The resolution rules in plain words

Dice, turns and player positions are up to you: resolve_square never moves anyone.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	boardProp := map[string]interface{}{
		"type":        "string",
		"description": "Board config_id (optional, defaults to the server's default board)",
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List all available boards",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListBoards)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_board",
		Description: "Describe a board: size, every portal, and squares that win directly",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": boardProp,
			},
		},
	}, c.handleDescribeBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "lookup_portal",
		Description: "Get the ladder or snake anchored at a square",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": boardProp,
				"square": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "Square number",
				},
			},
			Required: []string{"square"},
		},
	}, c.handleLookupPortal)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "resolve_square",
		Description: "Resolve the square a token landed on into a move, win or no_move action",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": boardProp,
				"square": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "Square the token landed on after the dice move (may be past the end)",
				},
			},
			Required: []string{"square"},
		},
	}, c.handleResolveSquare)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "resolve_squares",
		Description: fmt.Sprintf("Resolve up to %d squares independently", engine.MaxBatchSquares),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": boardProp,
				"squares": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":    "integer",
						"minimum": 0,
					},
					"description": "Squares to resolve",
				},
			},
			Required: []string{"squares"},
		},
	}, c.handleResolveSquares)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_rules",
		Description: "Explain how a landed-on square is resolved",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleBoardRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments as a map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// boardPath returns the escaped board path segment
func boardPath(args map[string]interface{}) string {
	board, _ := args["board"].(string)
	if board == "" {
		board = "default"
	}
	return url.PathEscape(board)
}

// squareArg converts a JSON number into a Square
func squareArg(v interface{}) (engine.Square, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("square must be a number")
	}
	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("square must be an integer between 0 and %d, got %v", uint32(math.MaxUint32), f)
	}
	return engine.Square(f), nil
}

// Tool handlers

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count  int                  `json:"count"`
		Boards []*service.BoardInfo `json:"boards"`
	}

	if err := c.apiCall(ctx, "GET", "/api/boards", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Boards (%d):\n\n", response.Count)
	for _, b := range response.Boards {
		result += fmt.Sprintf("- %s: %s (size %d, %d ladders, %d snakes)\n",
			b.ConfigID, b.Name, b.BoardSize, b.Ladders, b.Snakes)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	var detail service.BoardDetail
	if err := c.apiCall(ctx, "GET", "/api/boards/"+boardPath(args), nil, &detail); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoardDetail(&detail)), nil
}

func (c *Client) handleLookupPortal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	square, err := squareArg(args["square"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var info service.PortalInfo
	path := fmt.Sprintf("/api/boards/%s/portals/%d", boardPath(args), square)
	if err := c.apiCall(ctx, "GET", path, nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !info.Found {
		return mcp.NewToolResultText(fmt.Sprintf("Square %d on %s has no portal", info.Square, info.Board)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Square %d on %s: %s to %d",
		info.Square, info.Board, info.Portal.Kind, info.Portal.Destination)), nil
}

func (c *Client) handleResolveSquare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	square, err := squareArg(args["square"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ResolveResult
	path := fmt.Sprintf("/api/boards/%s/resolve", boardPath(args))
	if err := c.apiCall(ctx, "POST", path, map[string]interface{}{"square": square}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatResolveResult(&result)), nil
}

func (c *Client) handleResolveSquares(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	raw, _ := args["squares"].([]interface{})
	if len(raw) == 0 {
		return mcp.NewToolResultError("squares must be a non-empty array"), nil
	}

	squares := make([]engine.Square, 0, len(raw))
	for i, v := range raw {
		square, err := squareArg(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("squares[%d]: %v", i, err)), nil
		}
		squares = append(squares, square)
	}

	var result service.BatchResolveResult
	path := fmt.Sprintf("/api/boards/%s/resolve-batch", boardPath(args))
	if err := c.apiCall(ctx, "POST", path, map[string]interface{}{"squares": squares}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBatchResult(&result)), nil
}

func (c *Client) handleBoardRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := `RESOLUTION RULES

1. If the landed square holds a ladder or snake, replace it with the portal's destination.
   This happens once; a destination is never followed further.
2. If the square is now exactly the board size, the result is WIN.
3. If the square is past the board size, the result is NO_MOVE and carries the
   attempted square. The token stays where it started the turn.
4. Otherwise the result is MOVE to that square.

Ladders and snakes follow the same rule; only the direction differs.
Square 0 and squares far beyond the board are valid inputs.`

	return mcp.NewToolResultText(rules), nil
}

// Formatting helpers

func formatBoardDetail(detail *service.BoardDetail) string {
	var sb strings.Builder
	size := engine.Square(0)
	name := detail.ConfigID
	if detail.Config != nil {
		size = detail.Config.BoardSize
		name = fmt.Sprintf("%s (%s)", detail.ConfigID, detail.Config.Name)
	}

	fmt.Fprintf(&sb, "Board %s\n", name)
	fmt.Fprintf(&sb, "Final square: %d\n", size)
	fmt.Fprintf(&sb, "Ladders: %d, Snakes: %d\n\n", detail.Ladders, detail.Snakes)

	sb.WriteString("Portals:\n")
	for _, p := range detail.Portals {
		fmt.Fprintf(&sb, "  %3d -> %3d  %s\n", p.From, p.To, p.Kind)
	}

	if len(detail.WinningSquares) > 0 {
		parts := make([]string, 0, len(detail.WinningSquares))
		for _, s := range detail.WinningSquares {
			parts = append(parts, fmt.Sprintf("%d", s))
		}
		fmt.Fprintf(&sb, "\nSquares that win: %s\n", strings.Join(parts, ", "))
	}
	return sb.String()
}

func formatResolveResult(result *service.ResolveResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Landed on %d (board %s)\n", result.Landed, result.Board)
	if result.Portal != nil {
		fmt.Fprintf(&sb, "Portal: %s to %d\n", result.Portal.Kind, result.Portal.Destination)
	}
	fmt.Fprintf(&sb, "Action: %s\n", strings.ToUpper(result.Action.Kind.String()))
	fmt.Fprintf(&sb, "Target: %d\n", result.Action.Target)
	if result.Message != "" {
		fmt.Fprintf(&sb, "%s\n", result.Message)
	}
	return sb.String()
}

func formatBatchResult(result *service.BatchResolveResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Resolved %d of %d squares on %s", result.Resolved, result.RequestedSquares, result.Board)
	if result.Truncated {
		fmt.Fprintf(&sb, " (truncated at %d)", result.Limit)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Moves: %d, Wins: %d, No moves: %d\n\n", result.Moves, result.Wins, result.NoMoves)

	for _, r := range result.Results {
		line := fmt.Sprintf("  %d -> %s", r.Landed, r.Action)
		if r.Portal != nil {
			line += fmt.Sprintf(" via %s", r.Portal.Kind)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
