// Command analyze prints quick, human-readable heuristics about board
// configuration files. It summarizes board size, ladder and snake counts,
// the longest climb and slide, squares that win directly, and snakes that
// guard the last stretch of the board.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/validate"
)

// endZoneFraction sets how much of the board counts as the end zone
const endZoneFraction = 10

func main() {
	configDir := "configs"
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		configDir = dir
	}
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No board configurations found in %s\n", configDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeConfig(os.Stdout, file)
	}
}

func analyzeConfig(w io.Writer, path string) {
	result := validate.File(path)
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(w, "❌ %s\n", e)
		}
		return
	}

	config := result.Config
	table := engine.NewPortalTableFromEntries(config.Entries())
	board := engine.NewBoard(config.BoardSize, table)

	fmt.Fprintf(w, "Name: %s\n", config.Name)
	fmt.Fprintf(w, "Board Size: %d\n", config.BoardSize)
	fmt.Fprintf(w, "Ladders: %d\n", engine.CountPortalKind(table, engine.Ladder))
	fmt.Fprintf(w, "Snakes: %d\n", engine.CountPortalKind(table, engine.Snake))

	if e, ok := engine.LongestPortal(table, engine.Ladder); ok {
		fmt.Fprintf(w, "Longest Climb: %d -> %d (+%d)\n", e.From, e.To, engine.PortalDistance(e))
	}
	if e, ok := engine.LongestPortal(table, engine.Snake); ok {
		fmt.Fprintf(w, "Longest Slide: %d -> %d (-%d)\n", e.From, e.To, engine.PortalDistance(e))
	}

	winning := engine.WinningSquares(board)
	fmt.Fprintf(w, "Winning Squares: %v\n", winning)
	if len(winning) > 1 {
		fmt.Fprintf(w, "✅ %d ladder(s) reach the final square directly\n", len(winning)-1)
	}

	guards := endZoneSnakes(table, config.BoardSize)
	if len(guards) > 0 {
		fmt.Fprintf(w, "⚠️  %d snake(s) guard the last %d squares\n", len(guards), endZone(config.BoardSize))
		for _, e := range guards {
			fmt.Fprintf(w, "   Snake: %d -> %d\n", e.From, e.To)
		}
	} else {
		fmt.Fprintf(w, "✅ No snakes in the end zone\n")
	}
}

// endZone returns the number of squares before the final square considered the end zone
func endZone(size engine.Square) engine.Square {
	zone := size / endZoneFraction
	if zone == 0 {
		zone = 1
	}
	return zone
}

// endZoneSnakes lists snakes whose head sits in the end zone
func endZoneSnakes(table *engine.PortalTable, size engine.Square) []engine.PortalEntry {
	start := size - endZone(size)
	var guards []engine.PortalEntry
	for _, e := range table.Entries() {
		if e.Kind == engine.Snake && e.From >= start {
			guards = append(guards, e)
		}
	}
	return guards
}
