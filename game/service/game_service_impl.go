package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/leapfrog/game/engine"
)

const defaultHistoryPage = 20

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. A nil logger disables
// logging.
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger.Named("service"),
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// getSession looks up a session and marks it as accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	lastAccessed, err := s.sessions.LastAccessed(sess.ID)
	if err != nil {
		lastAccessed = sess.CreatedAt
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: lastAccessed,
		GameState:      snapshot(sess.Engine.GetState()),
		GameConfig:     sess.Config,
	}
}

// CreateSession starts a new game on the named layout, or the default one
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %s", ErrConfigNotFound, configName, strings.Join(configIDs, ", "))
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate the ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("session", sess.ID),
		zap.String("config", config.Name),
		zap.Int("rows", config.Rows),
		zap.Int("cols", config.Cols))

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.logger.Info("session deleted", zap.String("session", sessionID))
	return nil
}

// Select picks up the piece on origin for the player to move
func (s *gameServiceImpl) Select(ctx context.Context, sessionID string, origin engine.Position) (*SelectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	reach, err := sess.Engine.SelectOrigin(origin)
	if err != nil {
		s.rejected(sess, "select rejected", err, zap.Stringer("origin", origin))
		return nil, fmt.Errorf("select %s: %w", origin, err)
	}

	state := sess.Engine.GetState()
	s.logger.Debug("piece selected",
		zap.String("session", sess.ID),
		zap.String("player", string(state.Turn)),
		zap.Stringer("origin", origin),
		zap.Int("destinations", len(reach)))

	message := fmt.Sprintf("%s selected %s: %d destinations", state.Turn.Label(), origin, len(reach))
	if len(reach) == 0 {
		message = fmt.Sprintf("%s selected %s: no legal destinations", state.Turn.Label(), origin)
	}

	return &SelectResult{
		Origin:       origin,
		Player:       state.Turn,
		Destinations: reach.Destinations(),
		GameState:    snapshot(state),
		Message:      message,
	}, nil
}

// Move applies from -> to. If the session has no selection for from, the
// piece is selected first. A rejected destination drops the selection.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, from, to engine.Position) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	if sel := eng.GetState().Selection; sel == nil || sel.Origin != from {
		if _, err := eng.SelectOrigin(from); err != nil {
			s.rejected(sess, "move rejected", err, zap.Stringer("from", from), zap.Stringer("to", to))
			return nil, fmt.Errorf("move %s -> %s: %w", from, to, err)
		}
	}

	record, err := eng.ApplyMove(from, to)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidMove) {
			eng.ClearSelection()
		}
		s.rejected(sess, "move rejected", err, zap.Stringer("from", from), zap.Stringer("to", to))
		return nil, fmt.Errorf("move %s -> %s: %w", from, to, err)
	}

	state := eng.GetState()
	s.logger.Info("move applied",
		zap.String("session", sess.ID),
		zap.String("player", string(record.Player)),
		zap.Stringer("from", record.From),
		zap.Stringer("to", record.To),
		zap.Int("jumps", record.Jumps),
		zap.Int("move", record.MoveNumber))

	return &MoveResult{
		Success:   true,
		Move:      record,
		GameState: snapshot(state),
		Message:   state.Message,
		Events:    moveEvents(record, eng.TurnMessage(), state.Turn),
	}, nil
}

// ClearSelection drops the piece currently picked up
func (s *gameServiceImpl) ClearSelection(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.ClearSelection()
	sess.Engine.GetState().Message = sess.Engine.TurnMessage()
	return snapshot(sess.Engine.GetState()), nil
}

// Reset puts both formations back. The move log is kept.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	s.logger.Info("game reset", zap.String("session", sess.ID), zap.Int("logged_moves", state.TotalMoves))
	return snapshot(state), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(sess.Engine.GetState()), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.MoveLog()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryPage
	}
	if opts.Limit > engine.MaxHistoryPage {
		opts.Limit = engine.MaxHistoryPage
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	moves := []engine.MoveRecord{}
	// Bound the page before multiplying, start must not overflow
	if opts.Page <= totalPages {
		start := (opts.Page - 1) * opts.Limit
		end := min(start+opts.Limit, total)
		switch {
		case start >= total:
		case opts.Order == "desc":
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		default:
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available board layouts
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board layout
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board layout to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	s.logger.Info("layout saved", zap.String("config", configName))
	return nil
}

// rejected logs a refused select or move and puts the matching message on
// the session so the UI can show it
func (s *gameServiceImpl) rejected(sess *Session, msg string, err error, fields ...zap.Field) {
	state := sess.Engine.GetState()
	switch {
	case errors.Is(err, engine.ErrWrongPlayer):
		state.Message = sess.Engine.GetConfig().Messages.WrongPlayer
	case errors.Is(err, engine.ErrInvalidMove), errors.Is(err, engine.ErrOutOfBounds):
		state.Message = sess.Engine.GetConfig().Messages.InvalidMove
	}

	fields = append(fields,
		zap.String("session", sess.ID),
		zap.String("player", string(state.Turn)),
		zap.Error(err))
	s.logger.Debug(msg, fields...)
}

// moveEvents describes a successful move for clients
func moveEvents(record *engine.MoveRecord, turnMessage string, next engine.Occupant) []GameEvent {
	to := record.To
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("%s moved %s -> %s", record.Player.Label(), record.From, record.To),
		Timestamp: record.Timestamp,
		Player:    record.Player,
		Position:  &to,
	}}

	if record.Jumps > 0 {
		events = append(events, GameEvent{
			Type:      EventJumpChain,
			Message:   fmt.Sprintf("Chained %d jump(s)", record.Jumps),
			Timestamp: record.Timestamp,
			Player:    record.Player,
			Position:  &to,
		})
	}

	return append(events, GameEvent{
		Type:      EventTurn,
		Message:   turnMessage,
		Timestamp: time.Now(),
		Player:    next,
	})
}

// snapshot copies a game state so callers can encode it after the lock is
// released
func snapshot(state *engine.GameState) *engine.GameState {
	if state == nil {
		return nil
	}
	cp := *state
	if state.Board != nil {
		cp.Board = state.Board.Clone()
	}
	cp.MoveHistory = engine.MoveLog(state.MoveHistory.Entries())
	if state.Selection != nil {
		sel := *state.Selection
		sel.Reachable = make(engine.Reachability, len(state.Selection.Reachable))
		for p, j := range state.Selection.Reachable {
			sel.Reachable[p] = j
		}
		cp.Selection = &sel
	}
	return &cp
}
