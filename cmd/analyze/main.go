// Command analyze prints quick, human-readable heuristics about the board
// layouts in the project's configs directory: dimensions, formation, the gap
// between the two sides and how much each side can do from the opening
// position.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wricardo/leapfrog/game/engine"
)

// Analysis is the opening-position summary of one layout
type Analysis struct {
	File     string
	Config   *engine.GameConfig
	Board    *engine.Board
	// Gap is the number of empty columns between the formations, -1 for a custom setup
	Gap      int
	Mobility []engine.Mobility
	// Moves is the number of distinct (origin, destination) pairs for the first player
	Moves    int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No layouts found in %s\n", configDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analysis, err := analyzeConfig(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analysis)
	}
}

func analyzeConfig(path string) (*Analysis, error) {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	state := eng.GetState()
	a := &Analysis{
		File:   filepath.Base(path),
		Config: config,
		Board:  state.Board,
		Gap:    -1,
	}
	if len(config.Setup) == 0 {
		a.Gap = config.Cols - 2*config.Formation.Depth
	}

	for _, player := range []engine.Occupant{engine.Player1, engine.Player2} {
		a.Mobility = append(a.Mobility, engine.AnalyzeMobility(state.Board, player))
	}

	for _, reach := range eng.MovablePieces() {
		a.Moves += len(reach)
	}

	return a, nil
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Config.Name)
	fmt.Fprintf(w, "Board: %d x %d\n", a.Config.Rows, a.Config.Cols)
	if a.Gap >= 0 {
		fmt.Fprintf(w, "Formation: %d pieces, %d column(s) deep\n", a.Config.Formation.Size, a.Config.Formation.Depth)
		fmt.Fprintf(w, "Gap between sides: %d column(s)\n", a.Gap)
	} else {
		fmt.Fprintf(w, "Setup: custom starting position\n")
	}
	fmt.Fprintf(w, "%s\n", a.Board)

	for _, m := range a.Mobility {
		fmt.Fprintf(w, "%s: %d/%d movable, %d destinations (%d by jumping), longest chain %d\n",
			m.Player.Label(), m.MovablePieces, m.Pieces, m.Destinations, m.JumpMoves, m.LongestChain)
		if m.MovablePieces == 0 {
			fmt.Fprintf(w, "⚠️  WARNING: %s can not move from the opening position!\n", m.Player.Label())
		}
	}

	fmt.Fprintf(w, "Opening moves for %s: %d\n", engine.Player1.Label(), a.Moves)

	switch {
	case a.Gap == 0:
		fmt.Fprintf(w, "⚠️  WARNING: the formations touch, pieces start in contact\n")
	case a.Gap > 0:
		fmt.Fprintf(w, "✅ Formations are separated\n")
	}
}
