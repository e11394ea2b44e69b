package engine

import "sort"

// CountPortalKind counts the portals of a given kind
func CountPortalKind(table *PortalTable, kind PortalKind) int {
	count := 0
	for _, e := range table.Entries() {
		if e.Kind == kind {
			count++
		}
	}
	return count
}

// PortalDistance returns how far a portal moves the token, always positive
func PortalDistance(e PortalEntry) Square {
	if e.To > e.From {
		return e.To - e.From
	}
	return e.From - e.To
}

// LongestPortal returns the portal of the given kind that covers the most squares
func LongestPortal(table *PortalTable, kind PortalKind) (PortalEntry, bool) {
	var best PortalEntry
	found := false
	for _, e := range table.Entries() {
		if e.Kind != kind {
			continue
		}
		if !found || PortalDistance(e) > PortalDistance(best) {
			best = e
			found = true
		}
	}
	return best, found
}

// WinningSquares lists every square from 1 to the board size that resolves to a win.
// Only the final square and portal sources can win, so the board is never scanned.
func WinningSquares(b *Board) []Square {
	size := b.Size()
	candidates := []Square{size}
	for _, e := range b.Portals().Entries() {
		if e.From != size {
			candidates = append(candidates, e.From)
		}
	}

	var squares []Square
	for _, s := range candidates {
		if s >= 1 && s <= size && b.Resolve(s).Kind == ActionWin {
			squares = append(squares, s)
		}
	}
	sort.Slice(squares, func(i, j int) bool { return squares[i] < squares[j] })
	return squares
}

// ChainedPortals returns portals whose destination is another portal's source.
// Such portals are still substituted only once during resolution.
func ChainedPortals(table *PortalTable) []PortalEntry {
	var chained []PortalEntry
	for _, e := range table.Entries() {
		if _, ok := table.Lookup(e.To); ok {
			chained = append(chained, e)
		}
	}
	return chained
}
