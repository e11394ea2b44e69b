package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const classicJSON = `{
	"name": "classic",
	"description": "Test board",
	"board_size": 100,
	"portals": [
		{"from": 2, "to": 38, "kind": "ladder"},
		{"from": 4, "to": 14, "kind": "ladder"},
		{"from": 8, "to": 31, "kind": "ladder"},
		{"from": 21, "to": 42, "kind": "ladder"},
		{"from": 28, "to": 84, "kind": "ladder"},
		{"from": 36, "to": 44, "kind": "ladder"},
		{"from": 47, "to": 26, "kind": "snake"},
		{"from": 49, "to": 11, "kind": "snake"},
		{"from": 51, "to": 67, "kind": "ladder"},
		{"from": 56, "to": 53, "kind": "snake"},
		{"from": 62, "to": 18, "kind": "snake"},
		{"from": 64, "to": 60, "kind": "snake"},
		{"from": 71, "to": 91, "kind": "ladder"},
		{"from": 80, "to": 100, "kind": "ladder"},
		{"from": 87, "to": 24, "kind": "snake"},
		{"from": 93, "to": 73, "kind": "snake"},
		{"from": 95, "to": 75, "kind": "snake"},
		{"from": 98, "to": 75, "kind": "snake"}
	]
}`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestFile_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "classic.json", classicJSON)

	result := File(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "classic.json" {
		t.Errorf("Expected file name classic.json, got %s", result.File)
	}
	if result.Config == nil || result.Config.BoardSize != 100 {
		t.Errorf("Expected parsed config with board size 100, got %+v", result.Config)
	}

	info := strings.Join(result.Info, "\n")
	for _, want := range []string{
		"Board size: 100",
		"Ladders: 9",
		"Snakes: 9",
		"Longest climb: 28 -> 84 (+56)",
		"Longest slide: 87 -> 24 (-63)",
		"Winning squares: 80, 100",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Expected %q in info, got:\n%s", want, info)
		}
	}
}

func TestFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid json", `{"name": "test", invalid json}`, "Invalid JSON"},
		{"unknown field", `{"name": "t", "board_size": 10, "grid": []}`, "Invalid JSON"},
		{"missing name", `{"board_size": 10}`, "name is required"},
		{"board too small", `{"name": "t", "board_size": 1}`, "board_size must be between"},
		{"source on final square", `{"name": "t", "board_size": 10, "portals": [{"from": 10, "to": 2}]}`, "source 10"},
		{"destination past board", `{"name": "t", "board_size": 10, "portals": [{"from": 3, "to": 11}]}`, "destination 11"},
		{"wrong kind", `{"name": "t", "board_size": 10, "portals": [{"from": 3, "to": 7, "kind": "snake"}]}`, "is a snake"},
		{"chained", `{"name": "t", "board_size": 10, "portals": [{"from": 2, "to": 5}, {"from": 5, "to": 9}]}`, "lands on another portal"},
		{"bad template", `{"name": "t", "board_size": 10, "messages": {"win": "done"}}`, "messages.win"},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".json", tt.content)

			result := File(path)
			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestFile_Missing(t *testing.T) {
	result := File(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Expected missing file to be invalid")
	}
	if !strings.Contains(result.Errors[0], "Failed to read file") {
		t.Errorf("Unexpected error: %v", result.Errors)
	}
}

func TestDirAndReport(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", classicJSON)
	writeConfig(t, dir, "short.json", `{"name": "short", "board_size": 20, "portals": [{"from": 3, "to": 11}, {"from": 14, "to": 5}]}`)
	writeConfig(t, dir, "notes.txt", "ignored")

	results, err := Dir(dir)
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].File != "classic.json" || results[1].File != "short.json" {
		t.Errorf("Expected name order, got %s, %s", results[0].File, results[1].File)
	}

	var buf bytes.Buffer
	if !Report(&buf, results) {
		t.Errorf("Expected all valid, report:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "All configurations are valid") {
		t.Errorf("Unexpected report:\n%s", buf.String())
	}

	writeConfig(t, dir, "broken.json", `{"name": ""}`)
	results, err = Dir(dir)
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	buf.Reset()
	if Report(&buf, results) {
		t.Error("Expected report to flag the broken config")
	}
	if !strings.Contains(buf.String(), "❌ INVALID") {
		t.Errorf("Unexpected report:\n%s", buf.String())
	}
}

func TestDir_Empty(t *testing.T) {
	if _, err := Dir(t.TempDir()); err == nil {
		t.Error("Expected error for directory without configs")
	}
}
