package ms

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/board"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// InitLevel builds a fresh MS Level from lvl's metadata: marking
// teleport/toggle-wall terrain under Chip and blocks as broken, placing
// Chip and every listed creature, and springing any trap whose button
// is already held down by the initial layout.
func InitLevel(lvl *level.Level) error {
	lvl.RulesetState = newState()

	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell := lvl.Board.CellUnchecked(pos)
		topID := cell.Top.ID
		if tile.IsTerrain(topID) || tile.GetID(topID) == tile.Chip || tile.GetID(topID) == tile.Block {
			switch cell.Bottom.ID {
			case tile.Teleport, tile.SwitchWallOpen, tile.SwitchWallClosed:
				cell.Bottom.SetState(board.MSBrokenBit)
			}
		}
	}

	chipIdx := lvl.Actors.Spawn(actor.Actor{ID: tile.Chip, Direction: tile.DirSouth})
	chip := lvl.Actors.Get(chipIdx)
	addToMap(lvl, chipIdx)

	for _, pos := range lvl.Metadata.MonsterList {
		if pos < 0 || pos >= tile.Size {
			continue
		}
		cell := lvl.Board.CellUnchecked(pos)
		topID := cell.Top.ID
		bottomID := cell.Bottom.ID
		if !tile.IsActor(topID) {
			continue
		}
		if tile.GetID(topID) != tile.Block && bottomID != tile.CloneMachine {
			idx := lvl.Actors.Spawn(actor.Actor{
				ID:        tile.GetID(topID),
				Direction: tile.GetDir(topID),
				Pos:       pos,
			})
			if tile.GetID(topID) == tile.Block {
				s := state(lvl)
				s.blockList = append(s.blockList, idx)
			}
			if tile.IsActor(bottomID) && tile.GetID(bottomID) == tile.Chip {
				chip.Pos = pos
				chip.Direction = tile.GetDir(bottomID)
			}
		}
		cell.Top.SetState(board.MSMarkerBit)
	}

	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell := lvl.Board.CellUnchecked(pos)
		if cell.Top.HasState(board.MSMarkerBit) {
			cell.Top.ClearState(board.MSMarkerBit)
		} else if tile.IsActor(cell.Top.ID) && tile.GetID(cell.Top.ID) == tile.Chip {
			chip.Pos = pos
			chip.Direction = tile.GetDir(cell.Bottom.ID)
		}
	}

	for _, conn := range lvl.TrapLinks.Items() {
		if conn.To == chip.Pos || lvl.Board.TopID(conn.To) == tile.BlockStatic || isTrapButtonDown(lvl, conn.From) {
			springTrap(lvl, conn.From)
		}
	}

	return nil
}
