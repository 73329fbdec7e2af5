package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig validates a board variant for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	// Validate dimensions
	if config.Rows < MinRows || config.Rows > MaxRows {
		return fmt.Errorf("%w: rows must be between %d and %d, got %d", ErrInvalidConfig, MinRows, MaxRows, config.Rows)
	}
	if config.Cols < MinCols || config.Cols > MaxCols {
		return fmt.Errorf("%w: cols must be between %d and %d, got %d", ErrInvalidConfig, MinCols, MaxCols, config.Cols)
	}

	if len(config.Setup) > 0 {
		if err := validateSetup(config); err != nil {
			return err
		}
	} else if err := config.Formation.Validate(config.Rows, config.Cols); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Validate format strings
	if config.Messages.Turn != "" && !strings.Contains(config.Messages.Turn, "%s") {
		return fmt.Errorf("%w: messages.turn must contain %%s for the player name", ErrInvalidConfig)
	}
	if config.Messages.Moved != "" && strings.Count(config.Messages.Moved, "%s") != 3 {
		return fmt.Errorf("%w: messages.moved must contain %%s for player, origin and destination", ErrInvalidConfig)
	}

	return nil
}

// validateSetup checks a custom starting position against the board size
func validateSetup(config *GameConfig) error {
	board, err := ParseBoard(config.Setup)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if board.Rows != config.Rows || board.Cols != config.Cols {
		return fmt.Errorf("%w: setup is %dx%d, board is %dx%d", ErrInvalidConfig, board.Rows, board.Cols, config.Rows, config.Cols)
	}
	if board.Count(Player1) == 0 || board.Count(Player2) == 0 {
		return fmt.Errorf("%w: setup needs at least one piece per player", ErrInvalidConfig)
	}
	return nil
}

// StartingBoard builds the opening position: the setup rows when present,
// the formation otherwise
func (c *GameConfig) StartingBoard() (*Board, error) {
	if len(c.Setup) > 0 {
		return ParseBoard(c.Setup)
	}
	return InitializeBoardWithFormation(c.Rows, c.Cols, c.Formation)
}

// PiecesPerSide returns how many pieces player 1 starts with
func (c *GameConfig) PiecesPerSide() int {
	if len(c.Setup) > 0 {
		board, err := ParseBoard(c.Setup)
		if err != nil {
			return 0
		}
		return board.Count(Player1)
	}
	return c.Formation.Size
}

// DefaultConfig returns the 5x20 board the game was designed for
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:        "Standard",
		Description: "5x20 board, two columns of ten pieces per side",
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		Formation:   DefaultFormation(),
	}
	applyDefaultMessages(config)
	return config
}

// applyDefaultMessages fills every empty message with the built-in text
func applyDefaultMessages(config *GameConfig) {
	if config.Messages.Welcome == "" {
		config.Messages.Welcome = "Welcome to Leapfrog! Player 1 moves first."
	}
	if config.Messages.Turn == "" {
		config.Messages.Turn = "%s's Turn"
	}
	if config.Messages.Moved == "" {
		config.Messages.Moved = "%s moved %s -> %s"
	}
	if config.Messages.InvalidMove == "" {
		config.Messages.InvalidMove = "That piece can not move there."
	}
	if config.Messages.WrongPlayer == "" {
		config.Messages.WrongPlayer = "That is not your piece."
	}
}

// LoadGameConfig loads a board variant from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InitGameStateFromConfig creates a fresh game state with both formations in
// place and player 1 to move. A nil config uses DefaultConfig.
func InitGameStateFromConfig(config *GameConfig) (*GameState, error) {
	if config == nil {
		config = DefaultConfig()
	}

	board, err := config.StartingBoard()
	if err != nil {
		return nil, err
	}

	message := config.Messages.Welcome
	if message == "" {
		message = DefaultConfig().Messages.Welcome
	}

	return &GameState{
		Board:       board,
		Turn:        Player1,
		Message:     message,
		ConfigName:  config.Name,
		MoveHistory: MoveLog{},
		TotalMoves:  0,
	}, nil
}
