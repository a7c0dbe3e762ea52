package board

import (
	"fmt"

	"ccengine/pkg/tile"
)

// MSState bits, stored in MapTile.State when the owning Level runs the MS
// ruleset.
const (
	MSButtonDownBit uint8 = 1 << iota
	MSCloningBit
	MSBrokenBit
	MSHasMutantBit
	MSMarkerBit
)

// LynxState bits, stored in MapTile.State when the owning Level runs the
// Lynx ruleset. HadTrapBit/HadTeleportBit record that a cell's top terrain
// was once a beartrap/teleport even after a popup wall has since overwritten
// it, so that terrain can be restored once the wall recedes.
const (
	LynxClaimedBit uint8 = 1 << iota
	LynxAnimatedBit
	LynxHadTrapBit
	LynxHadTeleportBit
)

// MapTile is one layer of a cell: a tile identity plus an 8-bit
// ruleset-specific state byte (button-down/cloning/broken/marker for MS;
// claimed/animated for Lynx).
type MapTile struct {
	ID    tile.ID
	State uint8
}

// HasState reports whether all bits of mask are set.
func (t MapTile) HasState(mask uint8) bool { return t.State&mask == mask }

// SetState sets the bits of mask.
func (t *MapTile) SetState(mask uint8) { t.State |= mask }

// ClearState clears the bits of mask.
func (t *MapTile) ClearState(mask uint8) { t.State &^= mask }

// MapCell is a cell's two stacked layers. An actor or animation usually
// occupies Top while Bottom holds the terrain beneath it; Pop/Push move
// between the two layers as actors enter and leave a cell.
type MapCell struct {
	Top    MapTile
	Bottom MapTile
}

// Pop removes and returns the top tile, promoting Bottom to Top and leaving
// Bottom empty. Used when an actor (or animation) leaves a cell.
func (c *MapCell) Pop() MapTile {
	popped := c.Top
	c.Top = c.Bottom
	c.Bottom = MapTile{ID: tile.Empty}
	return popped
}

// Push demotes the current Top to Bottom and installs t as the new Top.
// Used when an actor enters, or an animation is overlaid on, a cell.
func (c *MapCell) Push(t MapTile) {
	c.Bottom = c.Top
	c.Top = t
}

// Board is the fixed 32x32 grid of cells.
type Board struct {
	cells [tile.Size]MapCell
}

// New returns a Board with every cell set to Empty over Empty.
func New() *Board {
	b := &Board{}
	for i := range b.cells {
		b.cells[i] = MapCell{Top: MapTile{ID: tile.Empty}, Bottom: MapTile{ID: tile.Empty}}
	}
	return b
}

// Cell returns a pointer to the cell at pos, or an error if pos is out of
// range. Runtime code that already knows pos is valid (the hot path inside
// a tick) should prefer CellUnchecked.
func (b *Board) Cell(pos tile.Position) (*MapCell, error) {
	if !tile.InBounds(pos) {
		return nil, fmt.Errorf("board: position %d out of range [0,%d)", pos, tile.Size)
	}
	return &b.cells[pos], nil
}

// CellUnchecked returns a pointer to the cell at pos without bounds
// checking. Callers must have already validated pos (e.g. via
// tile.InBounds), since the only bounds violation this engine tolerates at
// runtime is logged by the validation package, not a panic mid-tick.
func (b *Board) CellUnchecked(pos tile.Position) *MapCell {
	return &b.cells[pos]
}

// TopID is shorthand for Cell(pos).Top.ID, grounded on the reference's
// Level_get_top_terrain accessor.
func (b *Board) TopID(pos tile.Position) tile.ID {
	return b.cells[pos].Top.ID
}

// BottomID is shorthand for Cell(pos).Bottom.ID, grounded on the
// reference's Level_get_bottom_terrain accessor.
func (b *Board) BottomID(pos tile.Position) tile.ID {
	return b.cells[pos].Bottom.ID
}

// IsBuried reports the "buried tile" invalid-level condition: a non-empty
// bottom layer sitting under a top tile that isn't terrain (so the bottom
// tile can never surface through normal Pop semantics).
func (c MapCell) IsBuried() bool {
	return c.Bottom.ID != tile.Empty && !tile.IsTerrain(c.Top.ID)
}

// Each calls fn once per cell in reading order (row-major, matching
// Position's y*Width+x packing), passing the cell's position.
func (b *Board) Each(fn func(pos tile.Position, cell *MapCell)) {
	for i := range b.cells {
		fn(tile.Position(i), &b.cells[i])
	}
}
