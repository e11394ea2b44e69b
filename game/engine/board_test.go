package engine

import (
	"sync"
	"testing"
)

func TestBoard_Resolve_Scenarios(t *testing.T) {
	board := NewClassicBoard()

	tests := []struct {
		name   string
		square Square
		want   Action
	}{
		{"empty square 1", 1, Move(1)},
		{"empty square 3", 3, Move(3)},
		{"ladder 2 to 38", 2, Move(38)},
		{"snake 47 to 26", 47, Move(26)},
		{"final square", 100, Win(100)},
		{"ladder to final square", 80, Win(100)},
		{"square 0", 0, Move(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := board.Resolve(tt.square); got != tt.want {
				t.Errorf("Resolve(%d) = %v, expected %v", tt.square, got, tt.want)
			}
		})
	}
}

func TestBoard_Resolve_WinTag(t *testing.T) {
	board := NewClassicBoard()
	if got := board.Resolve(100).Kind; got != ActionWin {
		t.Errorf("Expected Resolve(100) to be a win, got %v", got)
	}
}

func TestBoard_Resolve_Overshoot(t *testing.T) {
	board := NewClassicBoard()

	if got := board.Resolve(101).Kind; got != ActionNoMove {
		t.Fatalf("Expected Resolve(101) to be no_move, got %v", got)
	}

	for _, s := range []Square{101, 102, 106, 150, 4294967295} {
		if got := board.Resolve(s); got != NoMove(s) {
			t.Errorf("Resolve(%d) = %v, expected overshot square preserved", s, got)
		}
	}
}

func TestBoard_Resolve_EmptySquares(t *testing.T) {
	board := NewClassicBoard()

	for s := Square(1); s < board.Size(); s++ {
		if _, ok := board.Lookup(s); ok {
			continue
		}
		if got := board.Resolve(s); got != Move(s) {
			t.Errorf("Resolve(%d) = %v, expected %v", s, got, Move(s))
		}
	}
}

func TestBoard_Resolve_PortalSquares(t *testing.T) {
	board := NewClassicBoard()

	for _, e := range ClassicPortals() {
		got := board.Resolve(e.From)
		want := Move(e.To)
		if e.To == board.Size() {
			want = Win(board.Size())
		}
		if got != want {
			t.Errorf("Resolve(%d) = %v, expected %v", e.From, got, want)
		}
	}
}

func TestBoard_Resolve_LookupBeforeBoundary(t *testing.T) {
	// A portal anchored on the final square is substituted before the win check
	board := NewBoard(10, NewPortalTable(map[Square]Portal{
		10: {Kind: Snake, Destination: 4},
	}))

	if got := board.Resolve(10); got != Move(4) {
		t.Errorf("Expected portal on final square to apply first, got %v", got)
	}
}

func TestBoard_Resolve_NoChaining(t *testing.T) {
	board := NewBoard(30, NewPortalTable(map[Square]Portal{
		3:  {Kind: Ladder, Destination: 12},
		12: {Kind: Ladder, Destination: 25},
	}))

	if got := board.Resolve(3); got != Move(12) {
		t.Errorf("Expected single substitution to 12, got %v", got)
	}
}

func TestBoard_Resolve_PortalPastBoard(t *testing.T) {
	board := NewBoard(20, NewPortalTable(map[Square]Portal{
		18: {Kind: Ladder, Destination: 25},
	}))

	if got := board.Resolve(18); got != NoMove(25) {
		t.Errorf("Expected NoMove(25), got %v", got)
	}
}

func TestBoard_Resolve_KindDoesNotMatter(t *testing.T) {
	ladder := NewBoard(100, NewPortalTable(map[Square]Portal{40: {Kind: Ladder, Destination: 10}}))
	snake := NewBoard(100, NewPortalTable(map[Square]Portal{40: {Kind: Snake, Destination: 10}}))

	if ladder.Resolve(40) != snake.Resolve(40) {
		t.Errorf("Expected kind to be descriptive only: %v vs %v", ladder.Resolve(40), snake.Resolve(40))
	}
}

func TestBoard_Resolve_Idempotent(t *testing.T) {
	board := NewClassicBoard()

	for s := Square(0); s <= 110; s++ {
		first := board.Resolve(s)
		second := board.Resolve(s)
		if first != second {
			t.Errorf("Resolve(%d) changed between calls: %v then %v", s, first, second)
		}
	}
}

func TestBoard_Resolve_Concurrent(t *testing.T) {
	board := NewClassicBoard()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := Square(0); s <= 120; s++ {
				board.Resolve(s)
			}
		}()
	}
	wg.Wait()

	if got := board.Resolve(2); got != Move(38) {
		t.Errorf("Expected Move(38) after concurrent use, got %v", got)
	}
}

func TestBoard_Trace(t *testing.T) {
	board := NewClassicBoard()

	t.Run("portal recorded", func(t *testing.T) {
		res := board.Trace(80)
		if res.Landed != 80 {
			t.Errorf("Expected landed 80, got %d", res.Landed)
		}
		if res.Portal == nil {
			t.Fatal("Expected portal to be recorded")
		}
		if res.Portal.Kind != Ladder || res.Portal.Destination != 100 {
			t.Errorf("Unexpected portal %+v", *res.Portal)
		}
		if res.Action != Win(100) {
			t.Errorf("Expected Win(100), got %v", res.Action)
		}
	})

	t.Run("plain square", func(t *testing.T) {
		res := board.Trace(5)
		if res.Portal != nil {
			t.Errorf("Expected no portal, got %+v", *res.Portal)
		}
		if res.Action != Move(5) {
			t.Errorf("Expected Move(5), got %v", res.Action)
		}
	})
}

func TestNewBoard_NilTable(t *testing.T) {
	board := NewBoard(10, nil)
	if got := board.Resolve(4); got != Move(4) {
		t.Errorf("Expected Move(4), got %v", got)
	}
	if board.Portals().Len() != 0 {
		t.Errorf("Expected empty table, got %d portals", board.Portals().Len())
	}
}

func TestNewBoardFromConfig(t *testing.T) {
	board, err := NewBoardFromConfig(DefaultBoardConfig())
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	if board.Size() != 100 {
		t.Errorf("Expected size 100, got %d", board.Size())
	}
	if board.Portals().Len() != 18 {
		t.Errorf("Expected 18 portals, got %d", board.Portals().Len())
	}
	if got := board.Resolve(47); got != Move(26) {
		t.Errorf("Expected Move(26), got %v", got)
	}

	invalid := DefaultBoardConfig()
	invalid.Name = ""
	if _, err := NewBoardFromConfig(invalid); err == nil {
		t.Error("Expected error for invalid config")
	}
}
