package ms

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/board"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

func locateTrapByButton(lvl *level.Level, buttonPos tile.Position) tile.Position {
	for _, to := range lvl.TrapLinks.Find(buttonPos) {
		return to
	}
	return tile.PosNull
}

func locateClonerByButton(lvl *level.Level, buttonPos tile.Position) tile.Position {
	for _, to := range lvl.ClonerLinks.Find(buttonPos) {
		return to
	}
	return tile.PosNull
}

func isTrapButtonDown(lvl *level.Level, pos tile.Position) bool {
	return pos >= 0 && pos < tile.Size && lvl.Board.TopID(pos) != tile.ButtonBrown
}

// isTrapOpen reports whether any other button linked to the trap at pos
// is currently held down, excluding skipPos (the button a creature is
// standing on while it's being evaluated).
func isTrapOpen(lvl *level.Level, pos, skipPos tile.Position) bool {
	for _, conn := range lvl.TrapLinks.Items() {
		if conn.To == pos && conn.From != skipPos && isTrapButtonDown(lvl, conn.From) {
			return true
		}
	}
	return false
}

// toggleWalls flips every SwitchWallOpen/SwitchWallClosed tile on the
// board, top and bottom layers alike, skipping ones marked broken.
func toggleWalls(lvl *level.Level) {
	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell := lvl.Board.CellUnchecked(pos)
		flip := func(t *board.MapTile) {
			if (t.ID == tile.SwitchWallOpen || t.ID == tile.SwitchWallClosed) && !t.HasState(board.MSBrokenBit) {
				if t.ID == tile.SwitchWallOpen {
					t.ID = tile.SwitchWallClosed
				} else {
					t.ID = tile.SwitchWallOpen
				}
			}
		}
		flip(&cell.Top)
		flip(&cell.Bottom)
	}
}

func awakenCreature(lvl *level.Level, pos tile.Position) actor.Index {
	id := lvl.Board.TopID(pos)
	if !tile.IsActor(id) || tile.GetID(id) == tile.Chip {
		return actor.IndexNone
	}
	idx := lvl.Actors.Spawn(actor.Actor{
		ID:        tile.GetID(id),
		Direction: tile.GetDir(id),
		Pos:       pos,
	})
	if tile.GetID(id) == tile.Block {
		state(lvl).blockList = append(state(lvl).blockList, idx)
	}
	return idx
}

// activateCloner fires the cloner linked to buttonPos: pushes a resident
// block, or spawns a fresh copy of the template creature drawn on the
// cell, marking the source cell FS_CLONING until the copy steps off it.
func activateCloner(lvl *level.Level, buttonPos tile.Position) {
	pos := locateClonerByButton(lvl, buttonPos)
	if pos < 0 || pos >= tile.Size {
		return
	}
	id := lvl.Board.TopID(pos)
	if !tile.IsActor(id) || tile.GetID(id) == tile.Chip {
		return
	}

	if tile.GetID(id) == tile.Block {
		idx := blockAt(lvl, pos)
		a := lvl.Actors.Get(idx)
		if a.Direction != tile.DirNil {
			advanceMovement(lvl, idx, a.Direction)
		}
		return
	}

	if lvl.Board.CellUnchecked(pos).Bottom.HasState(board.MSCloningBit) {
		return
	}
	dummy := actor.Actor{ID: tile.GetID(id), Direction: tile.GetDir(id), Pos: pos}
	dummyIdx := lvl.Actors.Spawn(dummy)
	canMove := canMakeMove(lvl, dummyIdx, dummy.Direction, cmmCloneCantBlock)
	hideDummy(lvl, dummyIdx)
	if !canMove {
		return
	}

	idx := awakenCreature(lvl, pos)
	if idx == actor.IndexNone {
		return
	}
	a := lvl.Actors.Get(idx)
	a.State |= csCloning
	if lvl.Board.BottomID(pos) == tile.CloneMachine {
		lvl.Board.CellUnchecked(pos).Bottom.SetState(board.MSCloningBit)
	}
}

// hideDummy discards the scratch actor spawned to probe canMakeMove; the
// arena never reclaims slots mid-tick, so the cheapest way to make a
// throwaway probe actor inert is to hide it immediately.
func hideDummy(lvl *level.Level, idx actor.Index) {
	lvl.Actors.Get(idx).Hidden = true
}

// springTrap releases whatever occupies the bear trap linked to
// buttonPos.
func springTrap(lvl *level.Level, buttonPos tile.Position) {
	pos := locateTrapByButton(lvl, buttonPos)
	if pos < 0 || pos >= tile.Size {
		return
	}
	id := lvl.Board.TopID(pos)
	if id == tile.BlockStatic || lvl.Board.CellUnchecked(pos).Bottom.HasState(board.MSHasMutantBit) {
		idx := blockAt(lvl, pos)
		lvl.Actors.Get(idx).State |= csReleased
	} else if tile.IsActor(id) {
		idx := lookUpCreature(lvl, pos, true)
		if idx != actor.IndexNone {
			lvl.Actors.Get(idx).State |= csReleased
		}
	}
}

func resetButtons(lvl *level.Level) {
	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell := lvl.Board.CellUnchecked(pos)
		cell.Top.ClearState(board.MSButtonDownBit)
		cell.Bottom.ClearState(board.MSButtonDownBit)
	}
}

// handleButtons applies the effects of every deferred button press
// accumulated this tick.
func handleButtons(lvl *level.Level) {
	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell := lvl.Board.CellUnchecked(pos)
		var id tile.ID
		switch {
		case cell.Top.HasState(board.MSButtonDownBit):
			cell.Top.ClearState(board.MSButtonDownBit)
			id = cell.Top.ID
		case cell.Bottom.HasState(board.MSButtonDownBit):
			cell.Bottom.ClearState(board.MSButtonDownBit)
			id = cell.Bottom.ID
		default:
			continue
		}
		switch id {
		case tile.ButtonBlue:
			lvl.AddSFX(level.SfxButtonPushed)
			turnTanks(lvl, actor.IndexNone)
		case tile.ButtonGreen:
			toggleWalls(lvl)
		case tile.ButtonRed:
			activateCloner(lvl, pos)
			lvl.AddSFX(level.SfxButtonPushed)
		case tile.ButtonBrown:
			springTrap(lvl, pos)
			lvl.AddSFX(level.SfxButtonPushed)
		}
	}
}
