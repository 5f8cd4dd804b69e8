package game

import "minesweeper/engine"

// Preset returns the board configuration for a difficulty level from 1
// (easiest) to 5. The boards are wider than they are tall. Levels outside
// the table fall back to level 1.
func Preset(level int) engine.GameConfig {
	switch level {
	case 1:
		return engine.GameConfig{Rows: 8, Cols: 12, Mines: 14}
	case 2:
		return engine.GameConfig{Rows: 9, Cols: 14, Mines: 22}
	case 3:
		return engine.GameConfig{Rows: 10, Cols: 18, Mines: 38}
	case 4:
		return engine.GameConfig{Rows: 12, Cols: 22, Mines: 60}
	case 5:
		return engine.GameConfig{Rows: 14, Cols: 26, Mines: 90}
	default:
		return engine.GameConfig{Rows: 8, Cols: 12, Mines: 14}
	}
}
