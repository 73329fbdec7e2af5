package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/wricardo/leapfrog/game/config"
	"github.com/wricardo/leapfrog/game/engine"
	"github.com/wricardo/leapfrog/game/service"
	"github.com/wricardo/leapfrog/game/session"
	"github.com/wricardo/leapfrog/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Game Operations
	SelectFunc         func(ctx context.Context, sessionID string, origin engine.Position) (*service.SelectResult, error)
	MoveFunc           func(ctx context.Context, sessionID string, from, to engine.Position) (*service.MoveResult, error)
	ClearSelectionFunc func(ctx context.Context, sessionID string) (*engine.GameState, error)
	ResetFunc          func(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.GameConfig) error
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{ID: "test-session", ConfigName: configName, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "test-config", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) Select(ctx context.Context, sessionID string, origin engine.Position) (*service.SelectResult, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, sessionID, origin)
	}
	return &service.SelectResult{Origin: origin, Player: engine.Player1, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Move(ctx context.Context, sessionID string, from, to engine.Position) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, from, to)
	}
	return &service.MoveResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) ClearSelection(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ClearSelectionFunc != nil {
		return m.ClearSelectionFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetMoveHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetMoveHistoryFunc != nil {
		return m.GetMoveHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Moves:      []engine.MoveRecord{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return &engine.GameConfig{Name: configName, Description: "Test config"}, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService service.GameService) *Server {
	t.Helper()
	hub := websocket.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewServer(mockService, hub, nil)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(server *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	parseResponse(t, w, &resp)
	return resp["error"]
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{notFound("x"), http.StatusNotFound},
		{fmt.Errorf("%w: nope", service.ErrConfigNotFound), http.StatusNotFound},
		{fmt.Errorf("move: %w", engine.ErrWrongPlayer), http.StatusUnprocessableEntity},
		{fmt.Errorf("move: %w", engine.ErrInvalidMove), http.StatusUnprocessableEntity},
		{fmt.Errorf("select: %w", engine.ErrOutOfBounds), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: name is required", engine.ErrInvalidConfig), http.StatusBadRequest},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		wantConfig     string
		createErr      error
		expectedStatus int
	}{
		{"default layout", nil, "", nil, http.StatusCreated},
		{"config_id", map[string]string{"config_id": "compact"}, "compact", nil, http.StatusCreated},
		{"legacy config_name", map[string]string{"config_name": "tall"}, "tall", nil, http.StatusCreated},
		{"unknown layout", map[string]string{"config_id": "nope"}, "nope", fmt.Errorf("%w: nope", service.ErrConfigNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockGameService{
				CreateSessionFunc: func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					if configName != tt.wantConfig {
						t.Errorf("Expected config %q, got %q", tt.wantConfig, configName)
					}
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &service.SessionInfo{ID: "ab12", ConfigName: configName}, nil
				},
			}

			w := serve(setupTestServer(t, mock), makeRequest("POST", "/api/sessions", tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if w.Code == http.StatusCreated {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected session ID ab12, got %s", resp.ID)
				}
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "a", CreatedAt: base, LastAccessedAt: base.Add(3 * time.Hour)},
				{ID: "b", CreatedAt: base.Add(time.Hour), LastAccessedAt: base.Add(time.Hour)},
				{ID: "c", CreatedAt: base.Add(2 * time.Hour), LastAccessedAt: base.Add(2 * time.Hour)},
			}, nil
		},
	}
	server := setupTestServer(t, mock)

	tests := []struct {
		query     string
		wantIDs   string
		wantSort  string
		wantOrder string
		wantTotal int
	}{
		{"", "a,c,b", "accessed", "desc", 3},
		{"?sort=created", "c,b,a", "created", "desc", 3},
		{"?sort=created&order=asc", "a,b,c", "created", "asc", 3},
		{"?order=asc&limit=2", "b,c", "accessed", "asc", 3},
		{"?limit=0", "a,c,b", "accessed", "desc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := serve(server, makeRequest("GET", "/api/sessions"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
				Sort     string                 `json:"sort"`
				Order    string                 `json:"order"`
			}
			parseResponse(t, w, &resp)

			var ids []string
			for _, s := range resp.Sessions {
				ids = append(ids, s.ID)
			}
			if got := strings.Join(ids, ","); got != tt.wantIDs {
				t.Errorf("Expected order %s, got %s", tt.wantIDs, got)
			}
			if resp.Count != len(ids) || resp.Total != tt.wantTotal {
				t.Errorf("Expected count %d total %d, got %d/%d", len(ids), tt.wantTotal, resp.Count, resp.Total)
			}
			if resp.Sort != tt.wantSort || resp.Order != tt.wantOrder {
				t.Errorf("Expected %s/%s, got %s/%s", tt.wantSort, tt.wantOrder, resp.Sort, resp.Order)
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mock := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID != "ab12" {
				return nil, notFound(sessionID)
			}
			return &service.SessionInfo{ID: sessionID}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID != "ab12" {
				return notFound(sessionID)
			}
			return nil
		},
	}
	server := setupTestServer(t, mock)

	tests := []struct {
		method string
		id     string
		want   int
	}{
		{"GET", "ab12", http.StatusOK},
		{"GET", "zz99", http.StatusNotFound},
		{"DELETE", "ab12", http.StatusOK},
		{"DELETE", "zz99", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.id, func(t *testing.T) {
			w := serve(server, makeRequest(tt.method, "/api/sessions/"+tt.id, nil))
			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusNotFound && !strings.Contains(errorMessage(t, w), "session not found") {
				t.Errorf("Unexpected error message %q", w.Body.String())
			}
		})
	}
}

// Game Operations Tests

func TestSelect(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		selectErr      error
		expectedStatus int
	}{
		{"valid origin", map[string]int{"row": 0, "col": 1}, nil, http.StatusOK},
		{"origin at zero", map[string]int{"row": 0, "col": 0}, nil, http.StatusOK},
		{"missing col", map[string]int{"row": 0}, nil, http.StatusBadRequest},
		{"opponent piece", map[string]int{"row": 0, "col": 19}, fmt.Errorf("select: %w", engine.ErrWrongPlayer), http.StatusUnprocessableEntity},
		{"outside board", map[string]int{"row": 9, "col": 0}, fmt.Errorf("select: %w", engine.ErrOutOfBounds), http.StatusUnprocessableEntity},
		{"unknown session", map[string]int{"row": 0, "col": 1}, notFound("sess-1"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &MockGameService{
				SelectFunc: func(ctx context.Context, sessionID string, origin engine.Position) (*service.SelectResult, error) {
					called = true
					if tt.selectErr != nil {
						return nil, tt.selectErr
					}
					return &service.SelectResult{
						Origin:       origin,
						Player:       engine.Player1,
						Destinations: []engine.Destination{{Position: engine.Position{Row: 0, Col: 2}}},
						GameState:    &engine.GameState{},
					}, nil
				},
			}

			w := serve(setupTestServer(t, mock), makeRequest("POST", "/api/sessions/sess-1/select", tt.body))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusBadRequest && called {
				t.Error("Service must not be called for a malformed body")
			}
			if w.Code == http.StatusOK {
				var resp service.SelectResult
				parseResponse(t, w, &resp)
				if len(resp.Destinations) != 1 {
					t.Errorf("Expected 1 destination, got %d", len(resp.Destinations))
				}
			}
		})
	}
}

func TestClearSelection(t *testing.T) {
	mock := &MockGameService{
		ClearSelectionFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			return &engine.GameState{Turn: engine.Player2, Message: "Player 2's Turn"}, nil
		},
	}

	w := serve(setupTestServer(t, mock), makeRequest("DELETE", "/api/sessions/sess-1/select", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var state engine.GameState
	parseResponse(t, w, &state)
	if state.Selection != nil || state.Turn != engine.Player2 {
		t.Errorf("Unexpected state %+v", state)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		moveErr        error
		expectedStatus int
		wantError      string
	}{
		{
			name:           "valid step",
			body:           map[string]interface{}{"from": map[string]int{"row": 0, "col": 1}, "to": map[string]int{"row": 0, "col": 2}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing destination",
			body:           map[string]interface{}{"from": map[string]int{"row": 0, "col": 1}},
			expectedStatus: http.StatusBadRequest,
			wantError:      "to: row and col are required",
		},
		{
			name:           "unreachable destination",
			body:           map[string]interface{}{"from": map[string]int{"row": 0, "col": 1}, "to": map[string]int{"row": 0, "col": 5}},
			moveErr:        fmt.Errorf("move (0,1) -> (0,5): %w", engine.ErrInvalidMove),
			expectedStatus: http.StatusUnprocessableEntity,
			wantError:      "invalid move",
		},
		{
			name:           "wrong player",
			body:           map[string]interface{}{"from": map[string]int{"row": 0, "col": 19}, "to": map[string]int{"row": 0, "col": 17}},
			moveErr:        fmt.Errorf("move (0,19) -> (0,17): %w", engine.ErrWrongPlayer),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unknown session",
			body:           map[string]interface{}{"from": map[string]int{"row": 0, "col": 1}, "to": map[string]int{"row": 0, "col": 2}},
			moveErr:        notFound("sess-1"),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockGameService{
				MoveFunc: func(ctx context.Context, sessionID string, from, to engine.Position) (*service.MoveResult, error) {
					if tt.moveErr != nil {
						return nil, tt.moveErr
					}
					return &service.MoveResult{
						Success:   true,
						Move:      &engine.MoveRecord{MoveNumber: 1, Player: engine.Player1, From: from, To: to},
						GameState: &engine.GameState{Turn: engine.Player2},
					}, nil
				},
			}

			w := serve(setupTestServer(t, mock), makeRequest("POST", "/api/sessions/sess-1/move", tt.body))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.wantError != "" && !strings.Contains(errorMessage(t, w), tt.wantError) {
				t.Errorf("Expected error containing %q, got %q", tt.wantError, w.Body.String())
			}
			if w.Code == http.StatusOK {
				var resp service.MoveResult
				parseResponse(t, w, &resp)
				if resp.Move == nil || resp.Move.To != (engine.Position{Row: 0, Col: 2}) {
					t.Errorf("Unexpected move %+v", resp.Move)
				}
				if resp.GameState.Turn != engine.Player2 {
					t.Errorf("Expected player2 to move next, got %s", resp.GameState.Turn)
				}
			}
		})
	}
}

func TestReset(t *testing.T) {
	mock := &MockGameService{
		ResetFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			if sessionID != "sess-1" {
				return nil, notFound(sessionID)
			}
			return &engine.GameState{Turn: engine.Player1, TotalMoves: 4}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := serve(server, makeRequest("POST", "/api/sessions/sess-1/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	parseResponse(t, w, &resp)
	if resp.Message != "Game reset successfully" || resp.State.TotalMoves != 4 {
		t.Errorf("Unexpected reset response %+v", resp)
	}

	if w := serve(server, makeRequest("POST", "/api/sessions/nope/reset", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetHistory(t *testing.T) {
	tests := []struct {
		query string
		want  service.HistoryOptions
	}{
		{"", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"?page=2&limit=5&order=asc", service.HistoryOptions{Page: 2, Limit: 5, Order: "asc"}},
		{"?page=-1&limit=abc&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got service.HistoryOptions
			mock := &MockGameService{
				GetMoveHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
					got = opts
					return &service.HistoryResponse{Moves: []engine.MoveRecord{}, Page: opts.Page, PageSize: opts.Limit}, nil
				},
			}

			w := serve(setupTestServer(t, mock), makeRequest("GET", "/api/sessions/sess-1/history"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if got != tt.want {
				t.Errorf("Expected options %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestGetGameState(t *testing.T) {
	mock := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			if sessionID != "sess-1" {
				return nil, notFound(sessionID)
			}
			board, _ := engine.InitializeBoard(5, 20)
			return &engine.GameState{Board: board, Turn: engine.Player1}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := serve(server, makeRequest("GET", "/api/sessions/sess-1/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var state engine.GameState
	parseResponse(t, w, &state)
	if state.Board == nil || state.Board.Count(engine.Player2) != 10 {
		t.Error("Expected the starting board in the response")
	}

	if w := serve(server, makeRequest("GET", "/api/sessions/nope/state", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// Layout Tests

func TestConfigs(t *testing.T) {
	var savedID string
	mock := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{ConfigID: "standard", Name: "Standard", Rows: 5, Cols: 20, Pieces: 10}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
			if configName != "standard" {
				return nil, fmt.Errorf("%w: %s", service.ErrConfigNotFound, configName)
			}
			return engine.DefaultConfig(), nil
		},
		SaveConfigFunc: func(ctx context.Context, configName string, cfg *engine.GameConfig) error {
			if err := engine.ValidateGameConfig(cfg); err != nil {
				return err
			}
			savedID = configName
			return nil
		},
	}
	server := setupTestServer(t, mock)

	t.Run("list", func(t *testing.T) {
		w := serve(server, makeRequest("GET", "/api/configs", nil))
		var configs []*service.ConfigInfo
		parseResponse(t, w, &configs)
		if len(configs) != 1 || configs[0].ConfigID != "standard" {
			t.Errorf("Unexpected configs %+v", configs)
		}
	})

	t.Run("get with suffix", func(t *testing.T) {
		w := serve(server, makeRequest("GET", "/api/configs/standard.json", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var cfg engine.GameConfig
		parseResponse(t, w, &cfg)
		if cfg.Rows != 5 || cfg.Cols != 20 {
			t.Errorf("Unexpected layout %dx%d", cfg.Rows, cfg.Cols)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		if w := serve(server, makeRequest("GET", "/api/configs/missing", nil)); w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("create", func(t *testing.T) {
		cfg := engine.DefaultConfig()
		cfg.Name = "My Board"
		w := serve(server, makeRequest("POST", "/api/configs", cfg))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		if savedID != "my-board" {
			t.Errorf("Expected config id my-board, got %q", savedID)
		}
	})

	t.Run("create invalid", func(t *testing.T) {
		cfg := engine.DefaultConfig()
		cfg.Cols = 2
		if w := serve(server, makeRequest("POST", "/api/configs", cfg)); w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("create without name", func(t *testing.T) {
		if w := serve(server, makeRequest("POST", "/api/configs", map[string]int{"rows": 5})); w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestHealth(t *testing.T) {
	w := serve(setupTestServer(t, &MockGameService{}), makeRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestWebSocketHandler(t *testing.T) {
	mock := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			return nil, notFound(sessionID)
		},
	}
	server := setupTestServer(t, mock)

	if w := serve(server, makeRequest("GET", "/ws", nil)); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without session, got %d", w.Code)
	}
	if w := serve(server, makeRequest("GET", "/ws?session=nope", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown session, got %d", w.Code)
	}

	noHub := NewServer(mock, nil, nil)
	if w := serve(noHub, makeRequest("GET", "/ws?session=nope", nil)); w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 without a hub, got %d", w.Code)
	}
}

// newLiveServer wires the real service, session and layout managers
func newLiveServer(t *testing.T) *httptest.Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config.NewManager failed: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs, nil)
	ts := httptest.NewServer(setupTestServer(t, svc))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}, target interface{}) int {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if target != nil {
		json.NewDecoder(resp.Body).Decode(target)
	}
	return resp.StatusCode
}

func TestEndToEndGame(t *testing.T) {
	ts := newLiveServer(t)

	var info service.SessionInfo
	if code := postJSON(t, ts.URL+"/api/sessions", nil, &info); code != http.StatusCreated {
		t.Fatalf("Expected 201 creating session, got %d", code)
	}
	base := ts.URL + "/api/sessions/" + info.ID

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + info.ID
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	readMessage := func() websocket.Message {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg websocket.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		return msg
	}

	if msg := readMessage(); msg.Event != websocket.EventStateUpdate || msg.GameState.Turn != engine.Player1 {
		t.Fatalf("Expected the initial state, got %+v", msg)
	}

	// Player 2 cannot move first
	var errResp map[string]string
	code := postJSON(t, base+"/move", map[string]interface{}{
		"from": map[string]int{"row": 0, "col": 19},
		"to":   map[string]int{"row": 0, "col": 17},
	}, &errResp)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422 for wrong player, got %d", code)
	}
	if msg := readMessage(); msg.Event != websocket.EventStateUpdate || msg.GameState.Message == "" {
		t.Errorf("Expected the rejection to be broadcast, got %+v", msg)
	}

	var sel service.SelectResult
	if code := postJSON(t, base+"/select", map[string]int{"row": 0, "col": 1}, &sel); code != http.StatusOK {
		t.Fatalf("Expected 200 selecting, got %d", code)
	}
	if len(sel.Destinations) == 0 {
		t.Fatal("Expected destinations for the front-line piece")
	}
	if msg := readMessage(); msg.Event != websocket.EventSelection {
		t.Errorf("Expected a selection event, got %q", msg.Event)
	}

	var result service.MoveResult
	code = postJSON(t, base+"/move", map[string]interface{}{
		"from": map[string]int{"row": 0, "col": 1},
		"to":   map[string]int{"row": 0, "col": 2},
	}, &result)
	if code != http.StatusOK || !result.Success {
		t.Fatalf("Expected a successful move, got %d %+v", code, result)
	}
	if result.GameState.Turn != engine.Player2 {
		t.Errorf("Expected player2 to move next, got %s", result.GameState.Turn)
	}
	if msg := readMessage(); msg.Event != websocket.EventMove {
		t.Errorf("Expected a move event, got %q", msg.Event)
	}
	if msg := readMessage(); msg.Event != websocket.EventStateUpdate || msg.GameState.TotalMoves != 1 {
		t.Errorf("Expected the post-move state, got %+v", msg)
	}

	resp, err := http.Get(base + "/history?order=asc")
	if err != nil {
		t.Fatalf("GET history failed: %v", err)
	}
	defer resp.Body.Close()
	var history service.HistoryResponse
	json.NewDecoder(resp.Body).Decode(&history)
	if history.TotalMoves != 1 || history.Moves[0].From != (engine.Position{Row: 0, Col: 1}) {
		t.Errorf("Unexpected history %+v", history)
	}
}
