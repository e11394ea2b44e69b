package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

func TestAnalyzeConfig_Classic(t *testing.T) {
	data, err := json.Marshal(engine.DefaultBoardConfig())
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "classic.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var buf bytes.Buffer
	analyzeConfig(&buf, path)
	out := buf.String()

	for _, want := range []string{
		"Board Size: 100",
		"Ladders: 9",
		"Snakes: 9",
		"Longest Climb: 28 -> 84 (+56)",
		"Longest Slide: 87 -> 24 (-63)",
		"Winning Squares: [80 100]",
		"1 ladder(s) reach the final square directly",
		"3 snake(s) guard the last 10 squares",
		"Snake: 98 -> 75",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestAnalyzeConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"name": "broken", "board_size": 0}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var buf bytes.Buffer
	analyzeConfig(&buf, path)
	if !strings.Contains(buf.String(), "board_size must be between") {
		t.Errorf("Expected validation error, got:\n%s", buf.String())
	}
}

func TestEndZone(t *testing.T) {
	tests := []struct {
		size engine.Square
		want engine.Square
	}{
		{100, 10},
		{20, 2},
		{5, 1},
		{2, 1},
	}

	for _, tt := range tests {
		if got := endZone(tt.size); got != tt.want {
			t.Errorf("endZone(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestEndZoneSnakes(t *testing.T) {
	table := engine.NewPortalTableFromEntries([]engine.PortalEntry{
		{From: 3, To: 11, Kind: engine.Ladder},
		{From: 14, To: 5, Kind: engine.Snake},
		{From: 18, To: 2, Kind: engine.Snake},
		{From: 19, To: 20, Kind: engine.Ladder},
	})

	guards := endZoneSnakes(table, 20)
	if len(guards) != 1 || guards[0].From != 18 {
		t.Errorf("Expected only the snake at 18, got %+v", guards)
	}
}
