package engine

// Resolver turns a landed-on square into an Action
type Resolver interface {
	Resolve(landed Square) Action
	Trace(landed Square) Resolution
	Lookup(square Square) (Portal, bool)
	Size() Square
}

// Board resolves landed-on squares against a fixed size and portal table.
// A Board is never mutated after construction and is safe for concurrent use.
type Board struct {
	size    Square
	portals *PortalTable
}

// NewBoard creates a board. The table is used as-is; callers that load
// boards from configuration go through NewBoardFromConfig for validation.
func NewBoard(size Square, portals *PortalTable) *Board {
	if portals == nil {
		portals = NewPortalTable(nil)
	}
	return &Board{size: size, portals: portals}
}

// NewClassicBoard creates the classic 100-square board
func NewClassicBoard() *Board {
	return NewBoard(DefaultSize, NewPortalTableFromEntries(ClassicPortals()))
}

// NewBoardFromConfig validates config and builds its board
func NewBoardFromConfig(config *BoardConfig) (*Board, error) {
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}
	return NewBoard(config.BoardSize, NewPortalTableFromEntries(config.Entries())), nil
}

// Size returns the winning square
func (b *Board) Size() Square {
	return b.size
}

// Portals returns the board's portal table
func (b *Board) Portals() *PortalTable {
	return b.portals
}

// Lookup returns the portal anchored at square, if any
func (b *Board) Lookup(square Square) (Portal, bool) {
	return b.portals.Lookup(square)
}

// Resolve returns the action for a token landing on square
func (b *Board) Resolve(landed Square) Action {
	return b.Trace(landed).Action
}

// Trace resolves landed and records the portal that was taken, if any.
// Portals are substituted once; a destination is never looked up again.
func (b *Board) Trace(landed Square) Resolution {
	res := Resolution{Landed: landed}

	final := landed
	if p, ok := b.portals.Lookup(landed); ok {
		final = p.Destination
		res.Portal = &p
	}

	switch {
	case final == b.size:
		res.Action = Win(b.size)
	case final > b.size:
		res.Action = NoMove(final)
	default:
		res.Action = Move(final)
	}
	return res
}
