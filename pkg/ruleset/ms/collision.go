package ms

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// collisionFlags mirrors the reference's CollisionCheckFlags bitset,
// passed through canMakeMove to vary its side effects for teleport
// probing, block pushing and button deferral.
type collisionFlags uint8

const (
	cmmNoLeaveCheck collisionFlags = 1 << iota
	cmmNoExposeWalls
	cmmCloneCantBlock
	cmmNoPushing
	cmmTeleportPush
	cmmNoFireCheck
	cmmNoDeferButtons
)

// cellTerrain returns the "interesting" floor at pos: the topmost of the
// two stacked tiles that isn't a key, boots, or actor sprite.
func cellTerrain(lvl *level.Level, pos tile.Position) tile.ID {
	cell := lvl.Board.CellUnchecked(pos)
	if !tile.IsKey(cell.Top.ID) && !tile.IsBoots(cell.Top.ID) && !tile.IsActor(cell.Top.ID) {
		return cell.Top.ID
	}
	if !tile.IsKey(cell.Bottom.ID) && !tile.IsBoots(cell.Bottom.ID) && !tile.IsActor(cell.Bottom.ID) {
		return cell.Bottom.ID
	}
	return tile.Empty
}

func setCellTerrain(lvl *level.Level, pos tile.Position, id tile.ID) {
	cell := lvl.Board.CellUnchecked(pos)
	if !tile.IsKey(cell.Top.ID) && !tile.IsBoots(cell.Top.ID) && !tile.IsActor(cell.Top.ID) {
		cell.Top.ID = id
		return
	}
	cell.Bottom.ID = id
}

// impedesMoveInto reports whether floor blocks an actor from entering it,
// grounded on the reference's per-tile switch table.
func impedesMoveInto(floor tile.ID, act *actor.Actor, dir tile.Direction) bool {
	switch floor {
	case tile.Nothing, tile.Wall, tile.HiddenWallPerm, tile.SwitchWallClosed,
		tile.CloneMachine, tile.DrownedChip, tile.BurnedChip, tile.BombedChip,
		tile.ExitedChip, tile.ExitExtra1, tile.ExitExtra2, tile.OverlayBuffer,
		tile.FloorReserved1, tile.FloorReserved2:
		return true

	case tile.Empty, tile.SlideNorth, tile.SlideWest, tile.SlideSouth, tile.SlideEast,
		tile.SlideRandom, tile.Ice, tile.Water, tile.Fire, tile.Bomb, tile.Beartrap,
		tile.HintButton, tile.ButtonBlue, tile.ButtonGreen, tile.ButtonRed,
		tile.ButtonBrown, tile.Teleport, tile.SwitchWallOpen,
		tile.KeyRed, tile.KeyBlue, tile.KeyYellow, tile.KeyGreen:
		return false

	case tile.Gravel, tile.Exit, tile.BootsIce, tile.BootsSlide, tile.BootsFire, tile.BootsWater:
		return !act.IsChip() && !act.IsBlock()

	case tile.Dirt, tile.Burglar, tile.HiddenWallTemp, tile.BlueWallReal, tile.BlueWallFake,
		tile.PopupWall, tile.DoorRed, tile.DoorBlue, tile.DoorYellow, tile.DoorGreen,
		tile.Socket, tile.ICChip, tile.BlockStatic:
		return !act.IsChip()

	case tile.IceWallNorthwest:
		return dir != tile.DirNorth && dir != tile.DirWest
	case tile.IceWallNortheast:
		return dir != tile.DirNorth && dir != tile.DirEast
	case tile.IceWallSouthwest:
		return dir != tile.DirSouth && dir != tile.DirWest
	case tile.IceWallSoutheast, tile.WallSoutheast:
		return dir != tile.DirSouth && dir != tile.DirEast
	case tile.WallNorth:
		return dir != tile.DirNorth && dir != tile.DirEast && dir != tile.DirWest
	case tile.WallEast:
		return dir != tile.DirNorth && dir != tile.DirSouth && dir != tile.DirWest
	case tile.WallSouth:
		return dir != tile.DirSouth && dir != tile.DirEast && dir != tile.DirWest
	case tile.WallWest:
		return dir != tile.DirNorth && dir != tile.DirSouth && dir != tile.DirWest

	default:
		return false
	}
}

// canMakeMove reports whether act may move dir, applying — and in some
// cases triggering — the side effects (wall exposure, block pushing)
// documented on collisionFlags.
func canMakeMove(lvl *level.Level, idx actor.Index, dir tile.Direction, flags collisionFlags) bool {
	a := lvl.Actors.Get(idx)
	x, y := tile.XY(a.Pos)
	switch dir {
	case tile.DirNorth:
		y--
	case tile.DirSouth:
		y++
	}
	switch dir {
	case tile.DirWest:
		x--
	case tile.DirEast:
		x++
	}
	if x < 0 || x >= tile.Width || y < 0 || y >= tile.Height {
		return false
	}
	to := tile.FromXY(x, y)

	if flags&cmmNoLeaveCheck == 0 {
		switch lvl.Board.BottomID(a.Pos) {
		case tile.WallNorth:
			if dir == tile.DirNorth {
				return false
			}
		case tile.WallWest:
			if dir == tile.DirWest {
				return false
			}
		case tile.WallSouth:
			if dir == tile.DirSouth {
				return false
			}
		case tile.WallEast:
			if dir == tile.DirEast {
				return false
			}
		case tile.WallSoutheast:
			if dir&(tile.DirSouth|tile.DirEast) != 0 {
				return false
			}
		case tile.Beartrap:
			if a.State&csReleased == 0 {
				return false
			}
		}
	}

	switch {
	case a.IsChip():
		floor := cellTerrain(lvl, to)
		if impedesMoveInto(floor, a, dir) {
			return false
		}
		if floor == tile.Socket && lvl.ChipsLeft > 0 {
			return false
		}
		if tile.IsDoor(floor) && !lvl.HasKey(floor) {
			return false
		}
		if top := lvl.Board.TopID(to); tile.IsActor(top) {
			id := tile.GetID(top)
			if id == tile.Chip || id == tile.SwimmingChip || id == tile.Block {
				return false
			}
		}
		if floor == tile.HiddenWallTemp || floor == tile.BlueWallReal {
			if flags&cmmNoExposeWalls == 0 {
				setCellTerrain(lvl, to, tile.Wall)
			}
			return false
		}
		if floor == tile.BlockStatic {
			if !pushBlock(lvl, to, dir, flags) {
				return false
			}
			if flags&cmmNoPushing != 0 {
				return false
			}
			if lvl.Board.BottomID(to) == tile.CloneMachine {
				return false
			}
			if flags&cmmTeleportPush != 0 && cellTerrain(lvl, to) == tile.BlockStatic {
				return true
			}
			return canMakeMove(lvl, idx, dir, flags|cmmNoPushing)
		}

	case a.IsBlock():
		floor := lvl.Board.TopID(to)
		if tile.IsActor(floor) {
			id := tile.GetID(floor)
			return id == tile.Chip || id == tile.SwimmingChip
		}
		if impedesMoveInto(floor, a, dir) {
			return false
		}

	default:
		floor := lvl.Board.TopID(to)
		if tile.IsActor(floor) {
			id := tile.GetID(floor)
			if id == tile.Chip || id == tile.SwimmingChip {
				floor = lvl.Board.BottomID(to)
				if tile.IsActor(floor) {
					bid := tile.GetID(floor)
					return bid == tile.Chip || bid == tile.SwimmingChip
				}
			}
		}
		if tile.IsActor(floor) {
			other := lookUpCreature(lvl, to, false)
			if flags&cmmCloneCantBlock == 0 {
				return false
			}
			if other == actor.IndexNone {
				return false
			}
			otherActor := lvl.Actors.Get(other)
			if otherActor.State&csTurning == 0 && floor == tile.WithDir(a.ID, a.Direction) {
				return true
			}
			return otherActor.Direction == a.Direction
		}
		if impedesMoveInto(floor, a, dir) {
			return false
		}
		if floor == tile.Fire && (a.ID == tile.Bug || a.ID == tile.Walker) {
			if flags&cmmNoFireCheck == 0 {
				return false
			}
		}
	}

	if lvl.Board.BottomID(to) == tile.CloneMachine {
		return false
	}
	return true
}

// pushBlock attempts to push the block occupying pos in dir, returning
// false if the block cannot move. Button presses the pushed block
// triggers are deferred unless cmmNoDeferButtons is set.
func pushBlock(lvl *level.Level, pos tile.Position, dir tile.Direction, flags collisionFlags) bool {
	idx := blockAt(lvl, pos)
	a := lvl.Actors.Get(idx)

	slipping := a.State&(csSlip|csSlide) != 0
	if slipping {
		slipDir := actorSlipDir(state(lvl), idx)
		if dir == slipDir || dir == tile.Back(slipDir) {
			if flags&cmmTeleportPush == 0 {
				return false
			}
		}
	}

	if flags&cmmTeleportPush == 0 && lvl.Board.BottomID(pos) == tile.BlockStatic {
		lvl.Board.CellUnchecked(pos).Bottom.ID = tile.Empty
	}
	if flags&cmmNoDeferButtons == 0 {
		a.State |= csDeferPush
	}
	ok := advanceMovement(lvl, idx, dir)
	if flags&cmmNoDeferButtons == 0 {
		a.State &^= csDeferPush
	}
	if !ok {
		a.State &^= (csSlip | csSlide)
		if slipping {
			s := state(lvl)
			s.msccSlippers--
			removeFromSlipList(s, idx)
		}
	}
	return ok
}
