// Package validate checks board configuration JSON files. It checks:
//   - JSON structure with no unknown fields
//   - Board size and portal bounds
//   - Portal kinds agree with direction (ladders climb, snakes fall)
//   - No portal lands on another portal
//   - Message templates carry the right number of %d verbs
//
// Valid files also get informational lines: portal counts, the longest
// climb and slide, and the squares that win directly.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// Result captures the outcome of validating a single file.
type Result struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
	Config *engine.BoardConfig
}

// File loads and validates a single configuration JSON file.
func File(filePath string) Result {
	result := Result{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
		Info:   []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.BoardConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}
	result.Config = &config

	if err := engine.ValidateBoardConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, strings.TrimPrefix(err.Error(), "config validation: "))
		return result
	}

	table := engine.NewPortalTableFromEntries(config.Entries())
	board := engine.NewBoard(config.BoardSize, table)

	result.Info = append(result.Info, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Info = append(result.Info, fmt.Sprintf("✓ Board size: %d", config.BoardSize))
	result.Info = append(result.Info, fmt.Sprintf("✓ Ladders: %d", engine.CountPortalKind(table, engine.Ladder)))
	result.Info = append(result.Info, fmt.Sprintf("✓ Snakes: %d", engine.CountPortalKind(table, engine.Snake)))
	if e, ok := engine.LongestPortal(table, engine.Ladder); ok {
		result.Info = append(result.Info, fmt.Sprintf("✓ Longest climb: %d -> %d (+%d)", e.From, e.To, engine.PortalDistance(e)))
	}
	if e, ok := engine.LongestPortal(table, engine.Snake); ok {
		result.Info = append(result.Info, fmt.Sprintf("✓ Longest slide: %d -> %d (-%d)", e.From, e.To, engine.PortalDistance(e)))
	}
	result.Info = append(result.Info, fmt.Sprintf("✓ Winning squares: %s", joinSquares(engine.WinningSquares(board))))

	return result
}

// Dir validates every *.json file in dir, in name order.
func Dir(dir string) ([]Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("finding config files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files found in %s", dir)
	}

	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, File(file))
	}
	return results, nil
}

// Report prints a concise report and returns true when every result is valid.
func Report(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func joinSquares(squares []engine.Square) string {
	parts := make([]string, 0, len(squares))
	for _, s := range squares {
		parts = append(parts, fmt.Sprintf("%d", s))
	}
	return strings.Join(parts, ", ")
}
