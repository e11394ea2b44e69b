package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PortalSpec is a portal as written in a board configuration file.
// Kind may be omitted, in which case it is inferred from direction.
type PortalSpec struct {
	From Square `json:"from"`
	To   Square `json:"to"`
	Kind string `json:"kind,omitempty"`
}

// BoardMessages holds the message templates used to describe a resolution
type BoardMessages struct {
	Move   string `json:"move"`    // %d target
	Ladder string `json:"ladder"`  // %d from, %d to
	Snake  string `json:"snake"`   // %d from, %d to
	Win    string `json:"win"`     // %d final square
	NoMove string `json:"no_move"` // %d overshot square
}

// BoardConfig represents a board configuration from JSON
type BoardConfig struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	BoardSize   Square        `json:"board_size"`
	Portals     []PortalSpec  `json:"portals"`
	Messages    BoardMessages `json:"messages"`
}

// DefaultMessages returns the templates used when a config leaves one empty
func DefaultMessages() BoardMessages {
	return BoardMessages{
		Move:   "Moved to square %d",
		Ladder: "Climbed a ladder from %d to %d",
		Snake:  "Bitten by a snake on %d, slid down to %d",
		Win:    "Reached square %d. Victory!",
		NoMove: "Square %d is past the end of the board, stay where you are",
	}
}

// DefaultBoardConfig returns the classic 100-square board configuration
func DefaultBoardConfig() *BoardConfig {
	classic := ClassicPortals()
	specs := make([]PortalSpec, 0, len(classic))
	for _, e := range classic {
		specs = append(specs, PortalSpec{From: e.From, To: e.To, Kind: e.Kind.String()})
	}
	return &BoardConfig{
		Name:        "classic",
		Description: "Classic 100-square board with 9 ladders and 9 snakes",
		BoardSize:   DefaultSize,
		Portals:     specs,
		Messages:    DefaultMessages(),
	}
}

// Entries converts the config's portal specs into table entries.
// Call ValidateBoardConfig first; unknown kinds fall back to direction.
func (c *BoardConfig) Entries() []PortalEntry {
	entries := make([]PortalEntry, 0, len(c.Portals))
	for _, p := range c.Portals {
		kind, err := ParsePortalKind(p.Kind)
		if err != nil {
			kind = inferKind(p.From, p.To)
		}
		entries = append(entries, PortalEntry{From: p.From, To: p.To, Kind: kind})
	}
	return entries
}

func inferKind(from, to Square) PortalKind {
	if to > from {
		return Ladder
	}
	return Snake
}

// Describe renders a human readable message for a resolution
func (m BoardMessages) Describe(res Resolution) string {
	defaults := DefaultMessages()
	pick := func(tmpl, fallback string) string {
		if tmpl == "" {
			return fallback
		}
		return tmpl
	}

	var parts []string
	if res.Portal != nil {
		switch res.Portal.Kind {
		case Ladder:
			parts = append(parts, fmt.Sprintf(pick(m.Ladder, defaults.Ladder), res.Landed, res.Portal.Destination))
		case Snake:
			parts = append(parts, fmt.Sprintf(pick(m.Snake, defaults.Snake), res.Landed, res.Portal.Destination))
		}
	}

	switch res.Action.Kind {
	case ActionWin:
		parts = append(parts, fmt.Sprintf(pick(m.Win, defaults.Win), res.Action.Target))
	case ActionNoMove:
		parts = append(parts, fmt.Sprintf(pick(m.NoMove, defaults.NoMove), res.Action.Target))
	default:
		parts = append(parts, fmt.Sprintf(pick(m.Move, defaults.Move), res.Action.Target))
	}
	return strings.Join(parts, ". ")
}

// ValidateBoardConfig validates a board configuration for correctness
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d",
			MinBoardSize, MaxBoardSize, config.BoardSize)
	}

	sources := make(map[Square]bool, len(config.Portals))
	for i, p := range config.Portals {
		if p.From == 0 || p.From >= config.BoardSize {
			return fmt.Errorf("config validation: portal %d source %d must be between 1 and %d",
				i+1, p.From, config.BoardSize-1)
		}
		if p.To == 0 || p.To > config.BoardSize {
			return fmt.Errorf("config validation: portal %d destination %d must be between 1 and %d",
				i+1, p.To, config.BoardSize)
		}
		if p.From == p.To {
			return fmt.Errorf("config validation: portal %d on square %d points to itself", i+1, p.From)
		}
		if sources[p.From] {
			return fmt.Errorf("config validation: square %d has more than one portal", p.From)
		}
		sources[p.From] = true

		if p.Kind != "" {
			kind, err := ParsePortalKind(p.Kind)
			if err != nil {
				return fmt.Errorf("config validation: portal %d: %v", i+1, err)
			}
			if kind != inferKind(p.From, p.To) {
				return fmt.Errorf("config validation: portal %d is a %s but goes from %d to %d",
					i+1, kind, p.From, p.To)
			}
		}
	}

	// Portals are substituted once, so a destination must not be another source
	for i, p := range config.Portals {
		if sources[p.To] {
			return fmt.Errorf("config validation: portal %d from %d lands on another portal at %d",
				i+1, p.From, p.To)
		}
	}

	checks := []struct {
		field string
		tmpl  string
		verbs int
	}{
		{"move", config.Messages.Move, 1},
		{"ladder", config.Messages.Ladder, 2},
		{"snake", config.Messages.Snake, 2},
		{"win", config.Messages.Win, 1},
		{"no_move", config.Messages.NoMove, 1},
	}
	for _, c := range checks {
		if c.tmpl == "" {
			continue
		}
		// %% is a literal percent sign, not a verb
		tmpl := strings.ReplaceAll(c.tmpl, "%%", "")
		if n := strings.Count(tmpl, "%d"); n != c.verbs || strings.Count(tmpl, "%") != c.verbs {
			return fmt.Errorf("config validation: messages.%s must contain exactly %d %%d verb(s)", c.field, c.verbs)
		}
	}

	return nil
}

// LoadBoardConfig loads a board configuration from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
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

	return ParseBoardConfig(data)
}

// ParseBoardConfig decodes and validates a JSON board configuration
func ParseBoardConfig(data []byte) (*BoardConfig, error) {
	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse board config: %w", err)
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
