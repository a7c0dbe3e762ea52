package lynx

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// collisionFlags mirrors the reference's CollisionCheckFlags bitset.
type collisionFlags uint8

const (
	cmmReleasing collisionFlags = 1 << iota
	cmmClearAnimations
	cmmStartMovement
	cmmPushBlocks
	cmmPushBlocksNow
)

// exitImpedingDirections reports the directions a wall-shaped terrain
// blocks an actor from leaving through, grounded on
// TileID_get_exit_impeding_directions.
func exitImpedingDirections(id tile.ID) tile.Direction {
	switch id {
	case tile.WallNorth:
		return tile.DirNorth
	case tile.WallWest:
		return tile.DirWest
	case tile.WallSouth:
		return tile.DirSouth
	case tile.WallEast:
		return tile.DirEast
	case tile.WallSoutheast:
		return tile.DirSouth | tile.DirEast
	case tile.IceWallNorthwest:
		return tile.DirSouth | tile.DirEast
	case tile.IceWallNortheast:
		return tile.DirSouth | tile.DirWest
	case tile.IceWallSouthwest:
		return tile.DirNorth | tile.DirEast
	case tile.IceWallSoutheast:
		return tile.DirNorth | tile.DirWest
	default:
		return tile.DirNil
	}
}

// impedesMoveInto reports whether floor blocks act from entering it from
// dir, grounded on TileID_impedes_move_into.
func impedesMoveInto(lvl *level.Level, floor tile.ID, act *actor.Actor, dir tile.Direction) bool {
	switch floor {
	case tile.Wall, tile.HiddenWallPerm, tile.SwitchWallClosed, tile.CloneMachine,
		tile.BlockStatic, tile.DrownedChip, tile.BurnedChip, tile.ExitedChip,
		tile.ExitExtra1, tile.ExitExtra2, tile.OverlayBuffer, tile.FloorReserved2,
		tile.FloorReserved1:
		return true

	case tile.Gravel:
		return tile.GetID(act.ID) != tile.Chip && tile.GetID(act.ID) != tile.Block

	case tile.Dirt, tile.Burglar, tile.HintButton, tile.HiddenWallTemp,
		tile.BlueWallFake, tile.BlueWallReal, tile.PopupWall, tile.Exit,
		tile.ICChip, tile.KeyYellow, tile.KeyGreen, tile.BootsSlide,
		tile.BootsIce, tile.BootsWater, tile.BootsFire:
		return !act.IsChip()

	case tile.Socket:
		return !act.IsChip() || lvl.ChipsLeft > 0

	case tile.DoorRed, tile.DoorBlue, tile.DoorGreen, tile.DoorYellow:
		return !act.IsChip() || !playerHasItem(lvl, floor)

	case tile.Fire:
		return tile.GetID(act.ID) != tile.Chip && tile.GetID(act.ID) != tile.Block &&
			tile.GetID(act.ID) != tile.Fireball

	case tile.IceWallNorthwest:
		return dir&(tile.DirSouth|tile.DirEast) != 0
	case tile.IceWallNortheast:
		return dir&(tile.DirSouth|tile.DirWest) != 0
	case tile.IceWallSouthwest:
		return dir&(tile.DirNorth|tile.DirEast) != 0
	case tile.IceWallSoutheast, tile.WallSoutheast:
		return dir&(tile.DirNorth|tile.DirWest) != 0
	case tile.WallNorth:
		return dir == tile.DirSouth
	case tile.WallEast:
		return dir == tile.DirEast
	case tile.WallSouth:
		return dir == tile.DirNorth
	case tile.WallWest:
		return dir == tile.DirEast

	default:
		return false
	}
}

// canMakeMove reports whether idx may move dir, applying the exit check,
// force-floor reversal check, bounds check, terrain check, and the claim/
// animation checks against whatever actor occupies the destination.
// Grounded on Actor_check_collision.
func canMakeMove(lvl *level.Level, s *State, idx actor.Index, dir tile.Direction, flags collisionFlags) bool {
	a := lvl.Actors.Get(idx)
	if a.MoveCooldown > 0 {
		return false
	}

	thisTerrain := lvl.Board.TopID(a.Pos)
	if exitImpedingDirections(thisTerrain)&dir != 0 {
		return false
	}
	if (thisTerrain == tile.Beartrap || thisTerrain == tile.CloneMachine) && flags&cmmReleasing == 0 {
		return false
	}
	if tile.IsSlide(thisTerrain) &&
		!(a.IsChip() && playerHasItem(lvl, tile.BootsSlide)) &&
		slideForcedDirection(s, thisTerrain, false) == tile.Back(dir) {
		return false
	}

	x := int(a.Pos) % tile.Width
	y := int(a.Pos) / tile.Width
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
	if x < 0 || x >= tile.Width {
		return false
	}
	if y < 0 || y >= tile.Height {
		if s.pedanticMode && flags&cmmStartMovement != 0 {
			s.mapBreached = true
		}
		return false
	}
	targetPos := tile.Position(x + y*tile.Width)

	newTerrain := lvl.Board.TopID(targetPos)
	if newTerrain == tile.SwitchWallClosed || newTerrain == tile.SwitchWallOpen {
		newTerrain ^= s.toggleWallsXor
	}
	if impedesMoveInto(lvl, newTerrain, a, dir) {
		return false
	}

	if hasAnimation(lvl, targetPos) {
		if a.IsChip() {
			return false
		}
		if flags&cmmClearAnimations != 0 {
			if anim := findActor(lvl, targetPos, false, true); anim != actor.IndexNone {
				eraseAnimation(lvl, s, anim)
			}
		}
	}
	if hasClaim(lvl, targetPos) {
		if !a.IsChip() {
			return false
		}
		if other := findActor(lvl, targetPos, true, false); other != actor.IndexNone {
			otherActor := lvl.Actors.Get(other)
			if otherActor.IsBlock() {
				if !canBePushed(lvl, s, other, dir, flags&^cmmReleasing) {
					return false
				}
			}
		}
	}

	// These walls turn into real walls, but only once Chip's move has
	// otherwise already passed every earlier check.
	if a.IsChip() && (newTerrain == tile.HiddenWallTemp || newTerrain == tile.BlueWallReal) {
		lvl.Board.CellUnchecked(targetPos).Top.ID = tile.Wall
		return false
	}
	return true
}

// canBePushed reports whether the block at idx can be pushed dir, and
// (when flags asks for it) sets it in motion. Grounded on
// Actor_can_be_pushed.
func canBePushed(lvl *level.Level, s *State, idx actor.Index, dir tile.Direction, flags collisionFlags) bool {
	a := lvl.Actors.Get(idx)
	if !canMakeMove(lvl, s, idx, dir, flags) {
		if a.MoveCooldown == 0 && flags&(cmmPushBlocks|cmmPushBlocksNow) != 0 {
			a.Direction = dir
			if s.pedanticMode {
				a.MoveDecision = dir
			}
		}
		return false
	}
	if flags&(cmmPushBlocks|cmmPushBlocksNow) != 0 {
		a.Direction = dir
		a.MoveDecision = dir
		a.State |= csPushed
		if flags&cmmPushBlocksNow != 0 {
			advanceMovement(lvl, s, idx, false)
		}
	}
	return true
}
