package engine

import "fmt"

// Square identifies a board position. Resolution accepts any value,
// including 0 and squares past the end of the board.
type Square uint32

// PortalKind labels a portal as a ladder or a snake. It is descriptive only.
type PortalKind int

const (
	Ladder PortalKind = iota
	Snake
)

// ActionKind is the tag of an Action.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionWin
	ActionNoMove
)

const (
	// Validation constants
	MinBoardSize    = 2
	MaxBoardSize    = 10000
	DefaultSize     = 100
	MaxBatchSquares = 50
)

// Portal is a snake or ladder anchored at a source square
type Portal struct {
	Kind        PortalKind `json:"kind"`
	Destination Square     `json:"destination"`
}

// PortalEntry pairs a portal with its source square
type PortalEntry struct {
	From Square     `json:"from"`
	To   Square     `json:"to"`
	Kind PortalKind `json:"kind"`
}

// Action is the outcome of resolving a landed-on square.
// Two actions are equal iff both Kind and Target match.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Target Square     `json:"target"`
}

// Move ends the turn on target.
func Move(target Square) Action { return Action{Kind: ActionMove, Target: target} }

// Win reports that the final square was reached exactly.
func Win(target Square) Action { return Action{Kind: ActionWin, Target: target} }

// NoMove rejects a move that overshot the board. Target is the attempted square.
func NoMove(overshot Square) Action { return Action{Kind: ActionNoMove, Target: overshot} }

func (a Action) String() string {
	return fmt.Sprintf("%s(%d)", a.Kind, a.Target)
}

// Resolution describes how a landed-on square turned into an Action
type Resolution struct {
	Landed Square  `json:"landed"`
	Portal *Portal `json:"portal,omitempty"`
	Action Action  `json:"action"`
}

func (k PortalKind) String() string {
	switch k {
	case Ladder:
		return "ladder"
	case Snake:
		return "snake"
	}
	return fmt.Sprintf("PortalKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k PortalKind) MarshalText() ([]byte, error) {
	switch k {
	case Ladder, Snake:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown portal kind %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *PortalKind) UnmarshalText(text []byte) error {
	kind, err := ParsePortalKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParsePortalKind parses "ladder" or "snake"
func ParsePortalKind(s string) (PortalKind, error) {
	switch s {
	case "ladder":
		return Ladder, nil
	case "snake":
		return Snake, nil
	}
	return 0, fmt.Errorf("unknown portal kind %q", s)
}

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionWin:
		return "win"
	case ActionNoMove:
		return "no_move"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k ActionKind) MarshalText() ([]byte, error) {
	switch k {
	case ActionMove, ActionWin, ActionNoMove:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown action kind %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ActionKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "move":
		*k = ActionMove
	case "win":
		*k = ActionWin
	case "no_move":
		*k = ActionNoMove
	default:
		return fmt.Errorf("unknown action kind %q", string(text))
	}
	return nil
}
