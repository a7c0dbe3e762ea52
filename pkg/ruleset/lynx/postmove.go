package lynx

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// TriRes mirrors the reference's three-state move/activation result.
const (
	triResDied    = -1
	triResFailed  = 0
	triResSuccess = 1
)

func stopTerrainSFX(lvl *level.Level) {
	lvl.StopSFX(level.SfxSkatingForward)
	lvl.StopSFX(level.SfxSkatingTurn)
	lvl.StopSFX(level.SfxFirewalking)
	lvl.StopSFX(level.SfxWaterwalking)
	lvl.StopSFX(level.SfxIcewalking)
	lvl.StopSFX(level.SfxSlidewalking)
	lvl.StopSFX(level.SfxSliding)
}

// removeActor turns idx into an explosion/splash animation in place,
// grounded on Actor_remove.
func removeActor(lvl *level.Level, s *State, idx actor.Index, animationType tile.ID) {
	a := lvl.Actors.Get(idx)
	if !a.IsChip() {
		removeClaim(lvl, a.Pos)
	}
	if a.State&csPushed != 0 {
		lvl.StopSFX(level.SfxBlockMoving)
	}
	a.ID = animationType
	if (uint32(lvl.CurrentTick)+uint32(lvl.InitStepParity))&1 != 0 {
		a.AnimationFrame = 12
	} else {
		a.AnimationFrame = 11
	}
	a.AnimationFrame--
	a.Hidden = false
	a.State = 0
	a.MoveDecision = tile.DirNil
	// An actor caught mid-step when it dies reverts to the cell it was
	// leaving, matching the reference's move_cooldown==8 check.
	if a.MoveCooldown == 8 {
		a.Pos = tile.Neighbor(a.Pos, tile.Back(a.Direction))
		a.MoveCooldown = 0
	}
	addAnimation(lvl, a.Pos)
}

// removeChip kills Chip for reason, also removing a second actor (the
// one Chip collided with, or Chip itself if that's the direct cause)
// when applicable, and arms the endgame countdown. Grounded on
// Level_remove_chip.
func removeChip(lvl *level.Level, s *State, reason level.ChipStatus, also actor.Index) {
	switch reason {
	case level.ChipDrowned:
		lvl.AddSFX(level.SfxWaterSplash)
		removeActor(lvl, s, actor.ChipIndex, tile.WaterSplash)
	case level.ChipBombed:
		lvl.AddSFX(level.SfxBombExplodes)
		removeActor(lvl, s, actor.ChipIndex, tile.BombExplosion)
	case level.ChipOutOfTime:
		removeActor(lvl, s, actor.ChipIndex, tile.EntityExplosion)
	case level.ChipBurned:
		lvl.AddSFX(level.SfxChipLoses)
		removeActor(lvl, s, actor.ChipIndex, tile.EntityExplosion)
	case level.ChipCollided:
		lvl.AddSFX(level.SfxChipLoses)
		removeActor(lvl, s, actor.ChipIndex, tile.EntityExplosion)
		if also != actor.IndexNone && also != actor.ChipIndex {
			removeActor(lvl, s, also, tile.EntityExplosion)
		}
	}
	stopTerrainSFX(lvl)
	startEndgame(s)
}

// eraseAnimation hides a finished death/splash animation. The reference
// also shrinks its last_actor array bound here; this port skips that, see
// reverseIndices.
func eraseAnimation(lvl *level.Level, s *State, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	a.Hidden = true
	removeAnimation(lvl, a.Pos)
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

// enterTile applies terrain effects once idx actually occupies its new
// cell, completing Actor_enter_tile from scratch since the reference
// leaves it empty. The pickup/hazard table for doors, keys, boots, dirt,
// the IC chip and the socket mirrors the sibling MS ruleset's
// chipEnterTile; Lynx's collision table keeps every actor but Chip off
// all of these except the red and blue keys. Water, fire, bombs and the
// three button colours apply to whichever actor lands on them: the
// collision table lets monsters and blocks onto water and bombs, and lets
// blocks and fireballs (besides Chip) onto fire.
func enterTile(lvl *level.Level, s *State, idx actor.Index) int {
	a := lvl.Actors.Get(idx)
	floor := lvl.Board.TopID(a.Pos)

	switch floor {
	case tile.Water:
		switch {
		case a.IsChip():
			if !playerHasItem(lvl, tile.Water) {
				removeChip(lvl, s, level.ChipDrowned, idx)
				return triResDied
			}
		case a.IsBlock():
			lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Dirt
			lvl.AddSFX(level.SfxWaterSplash)
			removeActor(lvl, s, idx, tile.WaterSplash)
			return triResDied
		case a.ID != tile.Glider:
			lvl.AddSFX(level.SfxWaterSplash)
			removeActor(lvl, s, idx, tile.WaterSplash)
			return triResDied
		}

	case tile.Fire:
		switch {
		case a.IsChip():
			if !playerHasItem(lvl, tile.Fire) {
				removeChip(lvl, s, level.ChipBurned, idx)
				return triResDied
			}
		case !a.IsBlock() && a.ID != tile.Fireball:
			removeActor(lvl, s, idx, tile.EntityExplosion)
			return triResDied
		}

	case tile.Bomb:
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Empty
		lvl.AddSFX(level.SfxBombExplodes)
		if a.IsChip() {
			removeChip(lvl, s, level.ChipBombed, idx)
		} else {
			removeActor(lvl, s, idx, tile.BombExplosion)
		}
		return triResDied

	case tile.Dirt, tile.BlueWallFake:
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Empty

	case tile.PopupWall:
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Wall

	case tile.DoorRed, tile.DoorBlue, tile.DoorYellow, tile.DoorGreen:
		if floor != tile.DoorGreen {
			lvl.ConsumeKey(keyForDoor(floor))
		}
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Empty
		lvl.AddSFX(level.SfxDoorOpened)

	case tile.BootsIce, tile.BootsSlide, tile.BootsFire, tile.BootsWater:
		lvl.GrantBoots(floor)
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Empty
		lvl.AddSFX(level.SfxItemCollected)

	case tile.KeyRed, tile.KeyBlue, tile.KeyYellow, tile.KeyGreen:
		lvl.GrantKey(floor)
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Empty
		lvl.AddSFX(level.SfxItemCollected)

	case tile.Burglar:
		lvl.PlayerBoots = [4]uint8{}
		lvl.AddSFX(level.SfxBootsStolen)

	case tile.ICChip:
		if lvl.ChipsLeft > 0 {
			lvl.ChipsLeft--
		}
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Empty
		lvl.AddSFX(level.SfxICCollected)

	case tile.Socket:
		lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.Empty
		lvl.AddSFX(level.SfxSocketOpened)

	case tile.ButtonBlue:
		for _, tidx := range lvl.Actors.All() {
			ta := lvl.Actors.Get(tidx)
			if !ta.Hidden && ta.ID == tile.Tank {
				ta.State |= csReverse
			}
		}
		lvl.AddSFX(level.SfxButtonPushed)

	case tile.ButtonGreen:
		s.toggleWallsXor = tile.SwitchWallOpen ^ tile.SwitchWallClosed

	case tile.ButtonRed:
		activateCloner(lvl, s, a.Pos)
		lvl.AddSFX(level.SfxButtonPushed)
	}

	if a.IsChip() && lvl.Board.TopID(a.Pos) == tile.Exit {
		s.levelComplete = true
	}
	return triResSuccess
}

// teleportActor moves self to the next teleport going backward in
// reading order, wrapping at the map edges. The reference's own version
// of this loop has no visible termination condition beyond landing on an
// unclaimed teleport, an omission this port fixes by also stopping once
// the scan wraps all the way back to the start — with no free teleport
// found, self simply stays put, matching the case where a level has only
// the one teleport self is already standing on. Grounded on
// Actor_teleport, preserving its documented claim-removal quirk: a
// non-Chip actor that lands on an already-claimed teleport wipes the
// occupier's claim bit without displacing the occupier, because self's
// own position is reassigned before the occupancy check runs.
//
// A candidate cell also counts as a teleport if its top terrain once was
// one (everHadTeleport) even though a popup wall or other terrain change
// has since covered it; landing there restores the top terrain to
// Teleport and hides Chip if Chip happens to be standing on that cell.
func teleportActor(lvl *level.Level, s *State, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	start := a.Pos
	checked := start

	for {
		if checked == 0 {
			checked = tile.Size
		}
		checked--

		switch {
		case lvl.Board.TopID(checked) == tile.Teleport:
		case everHadTeleport(lvl, checked):
			lvl.Board.CellUnchecked(checked).Top.ID = tile.Teleport
			if checked == lvl.Actors.Chip().Pos {
				lvl.Actors.Chip().Hidden = true
			}
		default:
			if checked == start {
				return
			}
			continue
		}

		if !a.IsChip() {
			removeClaim(lvl, a.Pos)
		}
		a.Pos = checked
		if !a.IsChip() {
			if hasClaim(lvl, a.Pos) {
				removeClaim(lvl, a.Pos)
				if checked != start {
					continue
				}
			}
			addClaim(lvl, a.Pos)
		}
		return
	}
}
