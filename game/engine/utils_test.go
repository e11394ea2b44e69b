package engine

import (
	"math"
	"testing"
)

func TestCountPortalKind(t *testing.T) {
	table := NewPortalTableFromEntries(ClassicPortals())

	if got := CountPortalKind(table, Ladder); got != 9 {
		t.Errorf("Expected 9 ladders, got %d", got)
	}
	if got := CountPortalKind(table, Snake); got != 9 {
		t.Errorf("Expected 9 snakes, got %d", got)
	}
}

func TestPortalDistance(t *testing.T) {
	tests := []struct {
		entry    PortalEntry
		expected Square
	}{
		{PortalEntry{From: 2, To: 38}, 36},
		{PortalEntry{From: 62, To: 18}, 44},
		{PortalEntry{From: 56, To: 53}, 3},
	}

	for _, test := range tests {
		if got := PortalDistance(test.entry); got != test.expected {
			t.Errorf("PortalDistance(%+v) = %d, expected %d", test.entry, got, test.expected)
		}
	}
}

func TestLongestPortal(t *testing.T) {
	table := NewPortalTableFromEntries(ClassicPortals())

	ladder, ok := LongestPortal(table, Ladder)
	if !ok || ladder.From != 28 || ladder.To != 84 {
		t.Errorf("Expected longest ladder 28 -> 84, got %+v", ladder)
	}

	snake, ok := LongestPortal(table, Snake)
	if !ok || snake.From != 87 || snake.To != 24 {
		t.Errorf("Expected longest snake 87 -> 24, got %+v", snake)
	}

	if _, ok := LongestPortal(NewPortalTable(nil), Snake); ok {
		t.Error("Expected no portal on empty table")
	}
}

func TestWinningSquares(t *testing.T) {
	squares := WinningSquares(NewClassicBoard())
	if len(squares) != 2 || squares[0] != 80 || squares[1] != 100 {
		t.Errorf("Expected [80 100], got %v", squares)
	}
}

func TestWinningSquares_LargeBoard(t *testing.T) {
	size := Square(math.MaxUint32)
	board := NewBoard(size, NewPortalTableFromEntries([]PortalEntry{
		{From: 5, To: size, Kind: Ladder},
		{From: 7, To: 3, Kind: Snake},
	}))

	squares := WinningSquares(board)
	if len(squares) != 2 || squares[0] != 5 || squares[1] != size {
		t.Errorf("Expected [5 %d], got %v", size, squares)
	}
}

func TestWinningSquares_PortalOnFinalSquare(t *testing.T) {
	board := NewBoard(10, NewPortalTableFromEntries([]PortalEntry{
		{From: 10, To: 4, Kind: Snake},
	}))

	if squares := WinningSquares(board); len(squares) != 0 {
		t.Errorf("Expected no winning squares, got %v", squares)
	}
}

func TestChainedPortals(t *testing.T) {
	if chained := ChainedPortals(NewPortalTableFromEntries(ClassicPortals())); len(chained) != 0 {
		t.Errorf("Expected no chained portals on the classic board, got %v", chained)
	}

	table := NewPortalTable(map[Square]Portal{
		3:  {Kind: Ladder, Destination: 12},
		12: {Kind: Ladder, Destination: 25},
	})
	chained := ChainedPortals(table)
	if len(chained) != 1 || chained[0].From != 3 {
		t.Errorf("Expected portal 3 to be chained, got %v", chained)
	}
}
