package ms

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/board"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// endMovement applies every side effect of idx finishing a move in dir:
// terrain consumption, item pickup, door/key accounting, death checks,
// teleport, button triggers, and re-entering the slip list if the
// destination is another slip surface. This is the only place a
// creature can join the slip list mid-tick.
func endMovement(lvl *level.Level, idx actor.Index, dir tile.Direction) {
	a := lvl.Actors.Get(idx)
	oldPos := a.Pos
	newPos := tile.Neighbor(oldPos, dir)

	cell := lvl.Board.CellUnchecked(newPos)
	floor := cell.Top.ID
	dead := false
	blockCloning := false

	switch {
	case a.IsChip():
		dead = chipEnterTile(lvl, a, cell, floor)
	case a.IsBlock():
		switch floor {
		case tile.Empty:
			cell.Pop()
		case tile.Water:
			cell.Top.ID = tile.Dirt
			dead = true
			lvl.AddSFX(level.SfxWaterSplash)
		case tile.Bomb:
			cell.Top.ID = tile.Empty
			dead = true
			lvl.AddSFX(level.SfxBombExplodes)
		case tile.Teleport:
			if !cell.Top.HasState(board.MSBrokenBit) {
				newPos = teleport(lvl, idx, newPos)
			}
		}
		if tile.GetID(lvl.Board.TopID(oldPos)) == tile.Chip {
			a.State |= csMutant
		}
	default:
		topActorID := tile.GetID(lvl.Board.TopID(oldPos))
		switch floor {
		case tile.Water:
			dead = topActorID != tile.Glider
		case tile.Fire:
			dead = topActorID != tile.Fireball
		case tile.Bomb:
			cell.Top.ID = tile.Empty
			dead = true
			lvl.AddSFX(level.SfxBombExplodes)
		case tile.Teleport:
			if !cell.Top.HasState(board.MSBrokenBit) {
				newPos = teleport(lvl, idx, newPos)
			}
		}
	}

	oldCell := lvl.Board.CellUnchecked(oldPos)
	if oldCell.Bottom.ID != tile.CloneMachine || a.IsChip() {
		oldCell.Pop()
	}
	if dead {
		removeActor(lvl, idx)
		if oldCell.Bottom.ID == tile.CloneMachine {
			oldCell.Bottom.ClearState(board.MSCloningBit)
		}
		return
	}

	if a.IsChip() && floor == tile.Teleport && !cell.Top.HasState(board.MSBrokenBit) {
		newPos = teleport(lvl, idx, newPos)
		lvl.AddSFX(level.SfxTeleporting)
		if cellTerrain(lvl, newPos) == tile.BlockStatic {
			s := state(lvl)
			if s.chipLastSlipDir == tile.DirNil {
				a.Direction = tile.DirNil
			} else {
				a.Direction = s.chipLastSlipDir
			}
		}
	}

	a.Pos = newPos
	addToMap(lvl, idx)
	a.Pos = oldPos

	bottom := &lvl.Board.CellUnchecked(newPos).Bottom
	switch floor {
	case tile.ButtonBlue:
		if a.State&csDeferPush != 0 {
			bottom.SetState(board.MSButtonDownBit)
		} else {
			turnTanks(lvl, idx)
		}
		lvl.AddSFX(level.SfxButtonPushed)
	case tile.ButtonGreen:
		if a.State&csDeferPush != 0 {
			bottom.SetState(board.MSButtonDownBit)
		} else {
			toggleWalls(lvl)
		}
	case tile.ButtonRed:
		a.State |= csSpontaneous
		if a.State&csDeferPush != 0 {
			bottom.SetState(board.MSButtonDownBit)
		} else {
			activateCloner(lvl, newPos)
		}
		lvl.AddSFX(level.SfxButtonPushed)
		a.State &^= csSpontaneous
	case tile.ButtonBrown:
		if a.State&csDeferPush != 0 {
			bottom.SetState(board.MSButtonDownBit)
		} else {
			springTrap(lvl, newPos)
		}
		lvl.AddSFX(level.SfxButtonPushed)
	}
	a.Pos = newPos

	if oldCell.Bottom.ID == tile.CloneMachine && a.IsBlock() && oldCell.Top.ID != tile.BlockStatic {
		blockCloning = true
	}
	if oldCell.Bottom.ID == tile.CloneMachine {
		oldCell.Bottom.SetState(board.MSCloningBit)
	}

	s := state(lvl)
	if floor == tile.Beartrap {
		if isTrapOpen(lvl, newPos, oldPos) {
			a.State |= csReleased
		}
	} else if lvl.Board.TopID(newPos) == tile.Beartrap {
		for _, conn := range lvl.TrapLinks.Items() {
			if conn.To == newPos {
				a.State |= csReleased
				break
			}
		}
	}

	if a.IsChip() {
		if s.mouseGoal == a.Pos {
			cancelMouseGoal(s)
		}
		if s.chipStatus != level.ChipOkay && s.chipStatus != level.ChipSquished {
			return
		}
		if lvl.Board.CellUnchecked(newPos).Bottom.ID == tile.Exit {
			s.levelComplete = true
			return
		}
	} else {
		if bottomID := lvl.Board.CellUnchecked(newPos).Bottom.ID; tile.IsActor(bottomID) {
			id := tile.GetID(bottomID)
			if id == tile.Chip || id == tile.SwimmingChip {
				if !a.IsBlock() || !blockCloning {
					s.chipStatus = level.ChipCollided
				} else {
					s.chipStatus = level.ChipSquished
				}
				return
			}
		}
	}

	wasSlipping := a.State&(csSlip|csSlide) != 0
	switch {
	case floor == tile.Teleport:
		startFloorMovement(lvl, idx, floor, tile.DirNil)
	case tile.IsIce(floor) && (!a.IsChip() || !lvl.HasBoots(tile.BootsIce)):
		startFloorMovement(lvl, idx, floor, tile.DirNil)
	case tile.IsSlide(floor) && (!a.IsChip() || !lvl.HasBoots(tile.BootsSlide)):
		startFloorMovement(lvl, idx, floor, tile.DirNil)
	case floor == tile.Beartrap && a.IsBlock() && wasSlipping:
		startFloorMovement(lvl, idx, floor, tile.DirNil)
		if a.State&csMutant != 0 {
			lvl.Board.CellUnchecked(newPos).Bottom.SetState(board.MSHasMutantBit)
		}
	default:
		a.State &^= (csSlip | csSlide)
		if wasSlipping && !a.IsChip() {
			s.msccSlippers--
			removeFromSlipList(s, idx)
		}
	}
	if !wasSlipping && a.State&(csSlip|csSlide) != 0 && !a.IsChip() {
		s.controllerDir = actorSlipDir(s, idx)
	}
}

// chipEnterTile applies Chip's tile-specific pickup/hazard table, the one
// table the Lynx ruleset's own Actor_enter_tile must be recovered from
// (see the lynx package's postmove.go).
func chipEnterTile(lvl *level.Level, chip *actor.Actor, cell *board.MapCell, floor tile.ID) bool {
	s := state(lvl)
	switch floor {
	case tile.Empty, tile.Dirt, tile.BlueWallFake:
		cell.Pop()
	case tile.Water:
		if !lvl.HasBoots(floor) {
			s.chipStatus = level.ChipDrowned
		}
	case tile.Fire:
		if !lvl.HasBoots(floor) {
			s.chipStatus = level.ChipBurned
		}
	case tile.PopupWall:
		cell.Top.ID = tile.Wall
	case tile.DoorRed, tile.DoorBlue, tile.DoorYellow, tile.DoorGreen:
		if floor != tile.DoorGreen {
			lvl.ConsumeKey(keyForDoor(floor))
		}
		cell.Pop()
		lvl.AddSFX(level.SfxDoorOpened)
	case tile.BootsIce, tile.BootsSlide, tile.BootsFire, tile.BootsWater,
		tile.KeyRed, tile.KeyBlue, tile.KeyYellow, tile.KeyGreen:
		if tile.IsActor(cell.Bottom.ID) {
			s.chipStatus = level.ChipCollided
		}
		if tile.IsKey(floor) {
			lvl.GrantKey(floor)
		} else {
			lvl.GrantBoots(floor)
		}
		cell.Pop()
		lvl.AddSFX(level.SfxItemCollected)
	case tile.Burglar:
		lvl.PlayerBoots = [4]uint8{}
		lvl.AddSFX(level.SfxBootsStolen)
	case tile.ICChip:
		if lvl.ChipsLeft > 0 {
			lvl.ChipsLeft--
		}
		cell.Pop()
		lvl.AddSFX(level.SfxICCollected)
	case tile.Socket:
		cell.Pop()
		lvl.AddSFX(level.SfxSocketOpened)
	case tile.Bomb:
		s.chipStatus = level.ChipBombed
		lvl.AddSFX(level.SfxBombExplodes)
	default:
		if tile.IsActor(floor) {
			s.chipStatus = level.ChipCollided
		}
	}
	return false
}

func keyForDoor(door tile.ID) tile.ID {
	switch door {
	case tile.DoorRed:
		return tile.KeyRed
	case tile.DoorBlue:
		return tile.KeyBlue
	case tile.DoorYellow:
		return tile.KeyYellow
	default:
		return tile.KeyGreen
	}
}

func removeActor(lvl *level.Level, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	a.State &^= (csSlip | csSlide)
	if a.IsChip() {
		s := state(lvl)
		if s.chipStatus == level.ChipOkay {
			s.chipStatus = level.ChipNotOkay
		}
	} else {
		a.Hidden = true
	}
}
