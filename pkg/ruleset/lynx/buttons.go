package lynx

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// findConnectedCell resolves Level_find_connected_cell: in pedantic mode it
// ignores links entirely and instead scans the board in reading order,
// starting just past fromPos and wrapping around, for the first cell whose
// terrain equals targetID; otherwise it looks fromPos up in links, the way
// a non-pedantic run trusts the level's recorded wiring.
func findConnectedCell(lvl *level.Level, s *State, fromPos tile.Position, targetID tile.ID, links *level.ConnList) tile.Position {
	if s.pedanticMode {
		pos := fromPos
		for {
			pos++
			if pos >= tile.Size {
				pos = 0
			}
			if lvl.Board.TopID(pos) == targetID {
				return pos
			}
			if pos == fromPos {
				return tile.PosNull
			}
		}
	}
	for _, to := range links.Find(fromPos) {
		return to
	}
	return tile.PosNull
}

// activateTrap releases whatever sits on the bear trap linked to buttonPos,
// grounded on Level_activate_trap.
func activateTrap(lvl *level.Level, s *State, buttonPos tile.Position) {
	pos := findConnectedCell(lvl, s, buttonPos, tile.Beartrap, &lvl.TrapLinks)
	if pos == tile.PosNull {
		return
	}
	idx := findActor(lvl, pos, false, false)
	if idx == actor.IndexNone {
		return
	}
	if lvl.Actors.Get(idx).Direction == tile.DirNil {
		return
	}
	advanceMovement(lvl, s, idx, true)
}

// activateCloner fires the clone machine linked to buttonPos. The
// reference leaves clone-machine activation unwritten entirely; this port
// authors it from scratch, grounded on the machine's resident always being
// a live, trackable actor in Lynx (unlike MS, which keeps sleeping
// creatures drawn on the board instead of in the actor array): it spawns a
// fresh copy in the resident's place, then tries to walk the original off
// the pad exactly as a trap release does, leaving the copy behind as the
// machine's next resident.
func activateCloner(lvl *level.Level, s *State, buttonPos tile.Position) {
	pos := findConnectedCell(lvl, s, buttonPos, tile.CloneMachine, &lvl.ClonerLinks)
	if pos == tile.PosNull {
		return
	}
	idx := findActor(lvl, pos, false, false)
	if idx == actor.IndexNone {
		return
	}
	resident := lvl.Actors.Get(idx)
	if resident.Direction == tile.DirNil {
		return
	}
	lvl.Actors.Spawn(actor.Actor{ID: resident.ID, Direction: resident.Direction, Pos: pos})
	advanceMovement(lvl, s, idx, true)
	addClaim(lvl, pos)
}
