// Package config loads Leapfrog board layouts.
//
// A layout is a JSON file in the config directory describing the board size,
// the starting formation of each side and the status messages shown to
// players:
//
//	{
//	  "name": "Standard",
//	  "description": "5x20 board, two columns of ten pieces per side",
//	  "rows": 5,
//	  "cols": 20,
//	  "formation": {"depth": 2, "size": 10},
//	  "messages": {"turn": "%s's Turn"}
//	}
//
// A layout may give "setup" instead of a formation: one string per row using
// '.', 'X' and 'O', for a custom starting position.
//
// The file name without its extension is the layout ID used when creating a
// session. Layouts are validated with engine.ValidateGameConfig on load and
// cached for the life of the Manager.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	compact, err := manager.LoadConfig("compact")
//	layouts, err := manager.ListConfigs()
//
// The default layout is standard.json when present, otherwise the first valid
// layout in the directory, otherwise the built-in 5x20 board.
package config
