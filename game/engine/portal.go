package engine

import "sort"

// PortalTable maps source squares to portals. It is immutable once built.
type PortalTable struct {
	portals map[Square]Portal
}

// NewPortalTable copies portals into a new table
func NewPortalTable(portals map[Square]Portal) *PortalTable {
	t := &PortalTable{portals: make(map[Square]Portal, len(portals))}
	for from, p := range portals {
		t.portals[from] = p
	}
	return t
}

// NewPortalTableFromEntries builds a table from a list of entries.
// A later entry for the same source replaces an earlier one.
func NewPortalTableFromEntries(entries []PortalEntry) *PortalTable {
	t := &PortalTable{portals: make(map[Square]Portal, len(entries))}
	for _, e := range entries {
		t.portals[e.From] = Portal{Kind: e.Kind, Destination: e.To}
	}
	return t
}

// Lookup returns the portal anchored at square, if any
func (t *PortalTable) Lookup(square Square) (Portal, bool) {
	if t == nil {
		return Portal{}, false
	}
	p, ok := t.portals[square]
	return p, ok
}

// Len returns the number of portals
func (t *PortalTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.portals)
}

// Entries returns every portal ordered by source square
func (t *PortalTable) Entries() []PortalEntry {
	entries := make([]PortalEntry, 0, t.Len())
	if t == nil {
		return entries
	}
	for from, p := range t.portals {
		entries = append(entries, PortalEntry{From: from, To: p.Destination, Kind: p.Kind})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].From < entries[j].From })
	return entries
}

// ClassicPortals returns the entries of the classic 100-square board
func ClassicPortals() []PortalEntry {
	return []PortalEntry{
		{From: 2, To: 38, Kind: Ladder},
		{From: 4, To: 14, Kind: Ladder},
		{From: 8, To: 31, Kind: Ladder},
		{From: 21, To: 42, Kind: Ladder},
		{From: 28, To: 84, Kind: Ladder},
		{From: 36, To: 44, Kind: Ladder},
		{From: 47, To: 26, Kind: Snake},
		{From: 49, To: 11, Kind: Snake},
		{From: 51, To: 67, Kind: Ladder},
		{From: 56, To: 53, Kind: Snake},
		{From: 62, To: 18, Kind: Snake},
		{From: 64, To: 60, Kind: Snake},
		{From: 71, To: 91, Kind: Ladder},
		{From: 80, To: 100, Kind: Ladder},
		{From: 87, To: 24, Kind: Snake},
		{From: 93, To: 73, Kind: Snake},
		{From: 95, To: 75, Kind: Snake},
		{From: 98, To: 75, Kind: Snake},
	}
}
