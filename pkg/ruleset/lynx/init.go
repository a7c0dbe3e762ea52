package lynx

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// InitLevel builds a fresh Lynx Level from lvl's metadata: spawning one
// actor per actor tile found on the board in reading order (exposing its
// bottom layer as the terrain left behind), converting static blocks and
// MS-only tiles Lynx has no use for, and flagging the handful of
// malformed-level conditions pedantic mode cares about. Grounded on
// lynx_init_level.
func InitLevel(lvl *level.Level) error {
	s := newState(lvl.PedanticMode)
	lvl.RulesetState = s

	chipIdx := actor.IndexNone

	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell := lvl.Board.CellUnchecked(pos)

		if cell.Top.ID == tile.BlockStatic {
			cell.Top.ID = tile.WithDir(tile.Block, tile.DirNorth)
		}
		if tile.IsMSSpecial(cell.Top.ID) {
			cell.Top.ID = tile.Wall
			if s.pedanticMode {
				lvl.StatusFlags |= level.StatusBadTiles
			}
		}
		// Wall_North and Wall_West don't exist in real Lynx; the tile
		// values are reused for something else there.
		if s.pedanticMode && (cell.Top.ID == tile.WallNorth || cell.Top.ID == tile.WallWest) {
			lvl.StatusFlags |= level.StatusBadTiles
		}
		if cell.IsBuried() {
			lvl.StatusFlags |= level.StatusBadTiles
		}

		if tile.IsActor(cell.Top.ID) {
			actID := tile.GetID(cell.Top.ID)
			actDir := tile.GetDir(cell.Top.ID)
			if s.pedanticMode && actID == tile.Block && tile.IsIce(cell.Bottom.ID) {
				actDir = tile.DirNil
			}

			idx := lvl.Actors.Spawn(actor.Actor{ID: actID, Direction: actDir, Pos: pos})
			if actID == tile.Chip {
				if chipIdx != actor.IndexNone {
					lvl.StatusFlags |= level.StatusBadTiles
				}
				chipIdx = idx
			} else {
				addClaim(lvl, pos)
			}
			cell.Top.ID = cell.Bottom.ID
			cell.Bottom.ID = tile.Empty
		}

		if cell.Top.ID == tile.Beartrap {
			markHadTrap(lvl, pos)
		}
		if cell.Top.ID == tile.Teleport {
			markHadTeleport(lvl, pos)
		}
	}

	if chipIdx == actor.IndexNone {
		chipIdx = lvl.Actors.Spawn(actor.Actor{ID: tile.Chip, Pos: 0, Hidden: true})
		lvl.StatusFlags |= level.StatusBadTiles
	}
	lvl.Actors.SwapToFront(chipIdx)

	lvl.PlayerKeys = [4]uint8{}
	lvl.PlayerBoots = [4]uint8{}

	chip := lvl.Actors.Chip()
	s.chipStuck = s.pedanticMode && !chip.Hidden && tile.IsIce(lvl.Board.TopID(chip.Pos))

	for _, conn := range lvl.TrapLinks.Items() {
		if lvl.Board.TopID(conn.From) != tile.ButtonBrown {
			activateTrap(lvl, s, conn.From)
		}
	}

	return nil
}
