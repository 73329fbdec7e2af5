package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/leapfrog/game/engine"
	"github.com/wricardo/leapfrog/game/service"
)

// ServerVersion is reported to MCP clients during initialization
const ServerVersion = "1.0.0"

// Client is a thin MCP server that proxies every tool call to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API at baseURL
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

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Leapfrog",
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Leapfrog - MCP Interface

Two players share a rectangular board. Player 1 (X) starts on the left edge,
player 2 (O) on the right edge. Players alternate; on your turn you move one
of your pieces either one step to an empty neighbouring cell (8 directions)
or through a chain of jumps over other pieces.

TYPICAL TURN:
1. game_state      - see the board and whose turn it is
2. select_piece    - pick up one of your pieces and list where it can go
3. move_piece      - move it to one of the listed destinations

OTHER TOOLS:
- create_session, get_session, list_sessions, list_configs
- clear_selection, reset_game, move_history
- game_instructions: full rules and board legend`),
	)

	c.registerTools()
}

func sessionArg() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID"))
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new game session, optionally on a named board layout"),
		mcp.WithString("config_id", mcp.Description("Layout to use (see list_configs). Defaults to the standard 5x20 board")),
	), c.handleCreateSession)

	c.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active game sessions, most recently used first"),
	), c.handleListSessions)

	c.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get details of a specific session"),
		sessionArg(),
	), c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the board, whose turn it is and the current selection"),
		sessionArg(),
	), c.handleGameState)

	c.mcpServer.AddTool(mcp.NewTool("select_piece",
		mcp.WithDescription("Pick up one of your pieces and list every cell it can reach with the number of jumps needed"),
		sessionArg(),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row of the piece (0-based)")),
		mcp.WithNumber("col", mcp.Required(), mcp.Description("Column of the piece (0-based)")),
	), c.handleSelectPiece)

	c.mcpServer.AddTool(mcp.NewTool("move_piece",
		mcp.WithDescription("Move a piece to a reachable cell. Selects the piece first if needed"),
		sessionArg(),
		mcp.WithNumber("from_row", mcp.Required(), mcp.Description("Row of the piece to move")),
		mcp.WithNumber("from_col", mcp.Required(), mcp.Description("Column of the piece to move")),
		mcp.WithNumber("to_row", mcp.Required(), mcp.Description("Destination row")),
		mcp.WithNumber("to_col", mcp.Required(), mcp.Description("Destination column")),
		mcp.WithString("intent", mcp.Description("Why this move? Explain your plan")),
	), c.handleMovePiece)

	c.mcpServer.AddTool(mcp.NewTool("clear_selection",
		mcp.WithDescription("Put the selected piece back down without moving"),
		sessionArg(),
	), c.handleClearSelection)

	c.mcpServer.AddTool(mcp.NewTool("reset_game",
		mcp.WithDescription("Put both formations back on their starting cells. The move history is kept"),
		sessionArg(),
	), c.handleReset)

	c.mcpServer.AddTool(mcp.NewTool("move_history",
		mcp.WithDescription("View past moves with pagination"),
		sessionArg(),
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Moves per page (default 20)")),
		mcp.WithString("order", mcp.Description("asc (oldest first) or desc (newest first, default)")),
	), c.handleMoveHistory)

	// Layouts and help
	c.mcpServer.AddTool(mcp.NewTool("list_configs",
		mcp.WithDescription("List available board layouts"),
	), c.handleListConfigs)

	c.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the complete rules, board legend and tips"),
	), c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
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
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]string{}
	if configID := request.GetString("config_id", ""); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		turn, moves := engine.Occupant(""), 0
		if s.GameState != nil {
			turn, moves = s.GameState.Turn, s.GameState.TotalMoves
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Turn: %s, Moves: %d, Created: %s)\n",
			s.ID, s.ConfigName, turn.Label(), moves, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleSelectPiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	origin, err := requirePosition(request, "row", "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.SelectResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/select"), origin, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSelectResult(&result)), nil
}

func (c *Client) handleMovePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := requirePosition(request, "from_row", "from_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := requirePosition(request, "to_row", "to_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// intent is for the caller's own reasoning; the server ignores it

	body := map[string]engine.Position{"from": from, "to": to}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Move %s -> %s rejected: %s", from, to, err)), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleClearSelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "DELETE", sessionPath(sessionID, "/select"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Selection cleared\n\n" + formatGameState(&state)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := request.GetString("order", ""); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Layouts:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, %d pieces per side\n\n",
			config.Name, config.ConfigID, config.Description, config.Rows, config.Cols, config.Pieces)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Leapfrog - Complete Instructions

SETUP:
• The standard board has 5 rows and 20 columns
• Player 1 (X) fills the two leftmost columns, player 2 (O) the two rightmost
• Player 1 moves first; turns alternate after every move
• There is no capture and no win condition: play until you stop

BOARD LEGEND:
• . - empty cell
• X - player 1 piece
• O - player 2 piece
• * - the selected piece
• 0-9 - a cell the selected piece can reach; the digit is the number of jumps
• + - reachable with ten or more jumps
Rows and columns are numbered from 0; (row,col) is the notation used everywhere.

MOVES:
• Step: move to any empty neighbouring cell, including diagonals (0 jumps)
• Jump: pick a direction (8 directions), find the first piece along it at
  distance d, and land at distance 2d on the far side. The landing cell and
  every cell between you and it except the jumped piece must be empty. A
  jump over an adjacent piece lands two cells away; a jump over a piece
  three cells away lands six cells away
• Chains: after landing you may keep jumping from the new cell. The selected
  piece's own starting cell counts as empty for the whole chain, but you may
  not end on it
• Any piece can be jumped, yours or your opponent's

TIPS:
• select_piece shows every destination with its minimum jump count
• move_piece accepts only cells listed by select_piece
• Jumps keep row and column parity: from (r,c) a jump lands on a cell whose
  row and column differ by even amounts
• Long symmetric jumps across open space are the fastest way to advance

ERRORS:
• "wrong player": the cell is empty or holds your opponent's piece
• "invalid move": the destination is not reachable from that piece
• "out of bounds": the coordinates are outside the board`

func requirePosition(request mcp.CallToolRequest, rowKey, colKey string) (engine.Position, error) {
	row, err := request.RequireInt(rowKey)
	if err != nil {
		return engine.Position{}, err
	}
	col, err := request.RequireInt(colKey)
	if err != nil {
		return engine.Position{}, err
	}
	return engine.Position{Row: row, Col: col}, nil
}

// Formatting

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatBoard draws the board with a column ruler and row labels. With a
// selection, reachable cells show their jump count.
func formatBoard(board *engine.Board, sel *engine.Selection) string {
	if board == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("    ")
	for c := 0; c < board.Cols; c++ {
		b.WriteByte(byte('0' + c%10))
	}
	b.WriteByte('\n')

	for r, line := range strings.Split(engine.RenderSelection(board, sel), "\n") {
		fmt.Fprintf(&b, "%2d  %s\n", r, line)
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil || state.Board == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Turn: %s | Moves: %d | Pieces: X=%d O=%d\n\n",
		state.Turn.Label(), state.TotalMoves,
		state.Board.Count(engine.Player1), state.Board.Count(engine.Player2))

	b.WriteString(formatBoard(state.Board, state.Selection))

	if sel := state.Selection; sel != nil {
		fmt.Fprintf(&b, "\nSelected: %s with %d destinations\n", sel.Origin, len(sel.Reachable))
	}
	if last := state.MoveHistory.Last(); last != nil {
		fmt.Fprintf(&b, "\nLast move: %s\n", formatMoveLine(*last))
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatSelectResult(result *service.SelectResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s selected %s\n", result.Player.Label(), result.Origin)

	if len(result.Destinations) == 0 {
		b.WriteString("No legal destinations. Pick another piece.\n")
	} else {
		b.WriteString("Destinations:\n")
		for _, d := range result.Destinations {
			kind := "step"
			if d.Jumps == 1 {
				kind = "1 jump"
			} else if d.Jumps > 1 {
				kind = fmt.Sprintf("%d jumps", d.Jumps)
			}
			fmt.Fprintf(&b, "- %s (%s)\n", d.Position, kind)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		b.WriteString("✗ Move failed\n")
	}

	if result.Move != nil {
		fmt.Fprintf(&b, "Move: %s\n", formatMoveLine(*result.Move))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatMoveLine(move engine.MoveRecord) string {
	how := "step"
	if move.Jumps > 0 {
		how = fmt.Sprintf("%d jump", move.Jumps)
		if move.Jumps > 1 {
			how += "s"
		}
	}
	return fmt.Sprintf("#%d %s %s -> %s (%s)", move.MoveNumber, move.Player.Label(), move.From, move.To, how)
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	if len(history.Moves) == 0 {
		b.WriteString("(no moves yet)\n")
	}
	for _, move := range history.Moves {
		fmt.Fprintf(&b, "%s [%s]\n", formatMoveLine(move), move.Timestamp.Format("15:04:05"))
	}

	return b.String()
}
