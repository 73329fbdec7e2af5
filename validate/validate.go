// Command validate checks the board layout JSON files in a configs
// directory (../configs by default, or the first argument). It checks:
//   - JSON structure, with unknown fields rejected to catch typos
//   - Board dimensions and formation fit or custom setup rows (the same rules the server applies)
//   - Message format strings
//   - Playability: both sides have at least one legal move from the opening position
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/leapfrog/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...any) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single layout file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	playability := validatePlayability(&config)
	result.Errors = append(result.Errors, playability.Errors...)
	if !playability.Valid {
		result.Valid = false
		return result
	}

	result.info("Name: %s", config.Name)
	result.info("Board: %dx%d", config.Rows, config.Cols)
	if len(config.Setup) > 0 {
		result.info("Setup: custom starting position, %d pieces for %s", config.PiecesPerSide(), engine.Player1.Label())
	} else {
		result.info("Formation: %d pieces per side, %d column(s) deep", config.Formation.Size, config.Formation.Depth)
		result.info("No man's land: %d column(s)", config.Cols-2*config.Formation.Depth)
	}

	var defaults []string
	if config.Messages.Welcome == "" {
		defaults = append(defaults, "welcome")
	}
	if config.Messages.Turn == "" {
		defaults = append(defaults, "turn")
	}
	if config.Messages.Moved == "" {
		defaults = append(defaults, "moved")
	}
	if config.Messages.InvalidMove == "" {
		defaults = append(defaults, "invalid_move")
	}
	if config.Messages.WrongPlayer == "" {
		defaults = append(defaults, "wrong_player")
	}
	if len(defaults) > 0 {
		result.info("Default messages used for: %s", strings.Join(defaults, ", "))
	}

	return result
}

// validatePlayability builds the opening position and checks that each side
// can move at least one piece from it
func validatePlayability(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	state, err := engine.InitGameStateFromConfig(config)
	if err != nil {
		result.fail("Cannot build opening position: %v", err)
		return result
	}

	for _, player := range []engine.Occupant{engine.Player1, engine.Player2} {
		m := engine.AnalyzeMobility(state.Board, player)
		if len(config.Setup) == 0 && m.Pieces != config.Formation.Size {
			result.fail("%s starts with %d pieces, expected %d", player.Label(), m.Pieces, config.Formation.Size)
			continue
		}
		if m.MovablePieces == 0 {
			result.fail("%s has no legal opening move", player.Label())
			continue
		}
		result.info("%s opening: %d/%d pieces movable, %d destinations, longest chain %d",
			player.Label(), m.MovablePieces, m.Pieces, m.Destinations, m.LongestChain)
	}

	return result
}

// main validates every *.json layout in the directory, printing a concise
// report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No layouts found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All layouts are valid!")
	} else {
		fmt.Println("❌ Some layouts have errors")
		os.Exit(1)
	}
}
