package lynx

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// lynxRNG advances the ruleset's own 8-bit generator, grounded on
// Level_lynx_rng. It is used only by Walker's rotation choice; Blob draws
// from the shared PRNG instead, matching the reference's split between
// the two creatures' randomness sources.
func lynxRNG(s *State) uint8 {
	n := (s.prng1 >> 2) - s.prng1
	if s.prng1&0x02 == 0 {
		n--
	}
	s.prng1 = (s.prng1 >> 1) | (s.prng2 & 0x80)
	s.prng2 = (s.prng2 << 1) | (n & 0x01)
	return s.prng1 ^ s.prng2
}

// slideForcedDirection translates a slide floor into the direction it
// pushes toward. advanceRFF rotates the shared random-slide direction one
// quarter turn clockwise before returning it, matching the reference's
// "only advance while deciding where to go next, not while rechecking
// where the move came from" split between call sites.
func slideForcedDirection(s *State, floor tile.ID, advanceRFF bool) tile.Direction {
	switch floor {
	case tile.SlideNorth:
		return tile.DirNorth
	case tile.SlideWest:
		return tile.DirWest
	case tile.SlideSouth:
		return tile.DirSouth
	case tile.SlideEast:
		return tile.DirEast
	case tile.SlideRandom:
		if advanceRFF {
			s.rffDir = tile.Right(s.rffDir)
		}
		return s.rffDir
	default:
		return tile.DirNil
	}
}

// iceTurnedDir redirects a creature bouncing off ice, grounded on
// Ice_get_turned_dir.
func iceTurnedDir(floor tile.ID, dir tile.Direction) tile.Direction {
	if floor == tile.Ice {
		return tile.Back(dir)
	}
	vert := tile.DirNorth
	if floor == tile.IceWallSouthwest || floor == tile.IceWallSoutheast {
		vert = tile.DirSouth
	}
	horiz := tile.DirEast
	if floor == tile.IceWallSouthwest || floor == tile.IceWallNorthwest {
		horiz = tile.DirWest
	}
	switch dir {
	case vert:
		return tile.Back(horiz)
	case horiz:
		return tile.Back(vert)
	default:
		return dir
	}
}

// calculateForcedMove computes the direction terrain imposes on a, before
// it gets any say in the matter, grounded on Actor_calculate_forced_move.
func calculateForcedMove(lvl *level.Level, s *State, a *actor.Actor) tile.Direction {
	if lvl.CurrentTick == 0 {
		return tile.DirNil
	}
	terrain := lvl.Board.TopID(a.Pos)
	switch {
	case tile.IsIce(terrain):
		if a.IsChip() && (playerHasItem(lvl, tile.BootsIce) || s.chipStuck) {
			return tile.DirNil
		}
		if a.Direction == tile.DirNil {
			return tile.DirNil
		}
		return a.Direction
	case tile.IsSlide(terrain):
		if a.IsChip() && playerHasItem(lvl, tile.BootsSlide) {
			return tile.DirNil
		}
		return slideForcedDirection(s, terrain, true)
	case a.State&csTeleported != 0:
		a.State &^= csTeleported
		return a.Direction
	default:
		return tile.DirNil
	}
}

var clockwiseDirections = [4]tile.Direction{tile.DirNorth, tile.DirEast, tile.DirSouth, tile.DirWest}

// checkedDecisionDirs fills choices with idx's ranked candidate
// directions for this tick, grounded on Actor_get_checked_decision_dirs.
// It returns the number of entries actually filled; a short (or zero)
// return means the species has nothing left to try this tick.
func checkedDecisionDirs(lvl *level.Level, s *State, idx actor.Index, choices *[4]tile.Direction) int {
	a := lvl.Actors.Get(idx)
	dir := a.Direction
	switch a.ID {
	case tile.Tank:
		choices[0] = dir
		return 1
	case tile.Ball:
		choices[0], choices[1] = dir, tile.Back(dir)
		return 2
	case tile.Glider:
		*choices = [4]tile.Direction{dir, tile.Left(dir), tile.Right(dir), tile.Back(dir)}
		return 4
	case tile.Fireball:
		*choices = [4]tile.Direction{dir, tile.Right(dir), tile.Left(dir), tile.Back(dir)}
		return 4
	case tile.Bug:
		*choices = [4]tile.Direction{tile.Left(dir), dir, tile.Right(dir), tile.Back(dir)}
		return 4
	case tile.Paramecium:
		*choices = [4]tile.Direction{tile.Right(dir), dir, tile.Left(dir), tile.Back(dir)}
		return 4
	case tile.Walker:
		if canMakeMove(lvl, s, idx, dir, cmmClearAnimations) {
			a.MoveDecision = dir
			return 0
		}
		checked := dir
		rotateN := lynxRNG(s) & 3
		for rotateN > 0 {
			checked = tile.Right(checked)
			rotateN--
		}
		choices[0] = checked
		return 1
	case tile.Blob:
		choices[0] = clockwiseDirections[lvl.PRNG.Random4()]
		return 1
	case tile.Teeth:
		if (uint32(lvl.CurrentTick)+uint32(lvl.InitStepParity))&4 != 0 {
			return 0
		}
		chip := lvl.Actors.Chip()
		chipX, chipY := tile.XY(chip.Pos)
		selfX, selfY := tile.XY(a.Pos)
		dx, dy := chipX-selfX, chipY-selfY
		horiz := directionForDelta(dx, tile.DirWest, tile.DirEast)
		vert := directionForDelta(dy, tile.DirNorth, tile.DirSouth)
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		if dx > dy {
			*choices = [4]tile.Direction{horiz, vert, horiz, tile.DirNil}
		} else {
			*choices = [4]tile.Direction{vert, horiz, vert, tile.DirNil}
		}
		return 3
	default:
		return 0
	}
}

func directionForDelta(d int, neg, pos tile.Direction) tile.Direction {
	switch {
	case d < 0:
		return neg
	case d > 0:
		return pos
	default:
		return tile.DirNil
	}
}

// chipDoDecision resolves Chip's input into a move decision, including
// the diagonal-input resolution rules and the "about to collide"
// prediction used by startMovingTo. Grounded on Chip_do_decision.
func chipDoDecision(lvl *level.Level, s *State) {
	chip := lvl.Actors.Chip()
	s.chipPushing = false
	chip.MoveDecision = tile.DirNil

	canMove := true
	moveDir := tile.DirNil
	if lvl.GameInput.IsDirectional() {
		moveDir = tile.Direction(lvl.GameInput)
	}
	if moveDir == tile.DirNil || s.chipStuck {
		canMove = false
	}

	terrain := lvl.Board.TopID(chip.Pos)
	canOverride := tile.IsSlide(terrain) && chip.State&csSlideToken != 0
	forcedMoveDir := forcedMove(chip)
	if forcedMoveDir != tile.DirNil && !canOverride {
		canMove = false
	}

	switch {
	case !canMove:
	case !tile.IsDiagonal(moveDir):
		canMakeMove(lvl, s, actor.ChipIndex, moveDir, cmmPushBlocks)
		chip.MoveDecision = moveDir
	case chip.Direction&moveDir == 0:
		horiz := moveDir & (tile.DirWest | tile.DirEast)
		vert := moveDir & (tile.DirNorth | tile.DirSouth)
		if canMakeMove(lvl, s, actor.ChipIndex, horiz, cmmPushBlocks) {
			chip.MoveDecision = horiz
		} else {
			chip.MoveDecision = vert
		}
	default:
		current := chip.Direction
		other := moveDir ^ chip.Direction
		canCurrent := canMakeMove(lvl, s, actor.ChipIndex, current, cmmPushBlocks)
		canOther := canMakeMove(lvl, s, actor.ChipIndex, other, cmmPushBlocks)
		if !canCurrent && canOther {
			chip.MoveDecision = other
		} else {
			chip.MoveDecision = current
		}
	}

	if chip.MoveDecision == tile.DirNil && forcedMoveDir == tile.DirNil {
		stopTerrainSFX(lvl)
	}
	if chip.MoveDecision != tile.DirNil {
		s.chipPredictedPos = tile.Neighbor(chip.Pos, chip.MoveDecision)
	}
}

// doDecision picks idx's move for this tick, grounded on
// Actor_do_decision.
func doDecision(lvl *level.Level, s *State, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	if tile.IsAnimation(a.ID) {
		a.AnimationFrame--
		if a.AnimationFrame < 0 {
			eraseAnimation(lvl, s, idx)
		}
		return
	}
	forced := calculateForcedMove(lvl, s, a)
	setForcedMove(a, forced)
	if idx == actor.ChipIndex {
		chipDoDecision(lvl, s)
		return
	}
	if a.IsBlock() {
		return
	}
	a.MoveDecision = tile.DirNil
	if forced != tile.DirNil {
		return
	}

	terrain := lvl.Board.TopID(a.Pos)
	if terrain == tile.CloneMachine || terrain == tile.Beartrap {
		a.MoveDecision = a.Direction
		return
	}

	var choices [4]tile.Direction
	n := checkedDecisionDirs(lvl, s, idx, &choices)
	for i := 0; i < n; i++ {
		checked := choices[i]
		if checked == tile.DirNil {
			return
		}
		a.MoveDecision = checked
		if canMakeMove(lvl, s, idx, checked, cmmClearAnimations) {
			return
		}
	}
}

// startMovingTo attempts to put self in motion per its current decision
// or forced move, applying the "about to collide" Chip-prediction quirk
// and the ice-bonk turn. Grounded on Actor_start_moving_to.
func startMovingTo(lvl *level.Level, s *State, idx actor.Index, releasing bool) int {
	a := lvl.Actors.Get(idx)
	var moveDir tile.Direction
	switch {
	case a.MoveDecision != tile.DirNil:
		moveDir = a.MoveDecision
	case forcedMove(a) != tile.DirNil:
		moveDir = forcedMove(a)
	default:
		return triResFailed
	}
	a.Direction = moveDir

	fromTerrain := lvl.Board.TopID(a.Pos)

	if a.IsChip() && !playerHasItem(lvl, tile.BootsSlide) {
		switch {
		case tile.IsSlide(fromTerrain) && a.MoveDecision == tile.DirNil:
			a.State |= csSlideToken
		case !tile.IsIce(fromTerrain) || playerHasItem(lvl, tile.BootsIce):
			a.State &^= csSlideToken
		}
	}

	flags := cmmPushBlocksNow | cmmClearAnimations | cmmStartMovement
	if releasing {
		flags |= cmmReleasing
	}
	if !canMakeMove(lvl, s, idx, moveDir, flags) {
		if a.IsChip() {
			if !s.chipBonked {
				s.chipBonked = true
				lvl.AddSFX(level.SfxCantMove)
			}
			s.chipPushing = true
		}
		if tile.IsIce(fromTerrain) && !(a.IsChip() && playerHasItem(lvl, tile.BootsIce)) {
			a.Direction = iceTurnedDir(fromTerrain, a.Direction)
		}
		return triResFailed
	}

	if s.mapBreached && lvl.Actors.Chip().IsChip() {
		removeChip(lvl, s, level.ChipCollided, idx)
		return triResDied
	}

	if !a.IsChip() {
		removeClaim(lvl, a.Pos)
		if !a.IsBlock() && a.Pos == s.chipPredictedPos {
			s.chipCollidingActor = idx
		}
	}
	if a.IsChip() && s.chipCollidingActor != actor.IndexNone {
		culprit := lvl.Actors.Get(s.chipCollidingActor)
		if !culprit.Hidden {
			culprit.MoveCooldown = 8
			removeChip(lvl, s, level.ChipCollided, s.chipCollidingActor)
			return triResDied
		}
	}

	a.Pos = tile.Neighbor(a.Pos, moveDir)
	a.MoveCooldown += 8

	if !a.IsChip() {
		addClaim(lvl, a.Pos)
		chip := lvl.Actors.Chip()
		if a.Pos == chip.Pos && !chip.Hidden {
			removeChip(lvl, s, level.ChipCollided, idx)
			return triResDied
		}
	} else {
		s.chipBonked = false
		if monster := findActor(lvl, a.Pos, true, false); monster != actor.IndexNone {
			removeChip(lvl, s, level.ChipCollided, monster)
			return triResDied
		}
	}

	if a.State&csPushed != 0 {
		s.chipPushing = true
		lvl.AddSFX(level.SfxBlockMoving)
	}
	return triResSuccess
}

// reduceCooldown counts self's move cooldown down by its current speed,
// grounded on Actor_reduce_cooldown.
func reduceCooldown(lvl *level.Level, s *State, idx actor.Index) int {
	a := lvl.Actors.Get(idx)
	if tile.IsAnimation(a.ID) {
		return triResSuccess
	}
	if a.IsChip() && s.chipStuck {
		return triResSuccess
	}

	speed := int8(2)
	if a.ID == tile.Blob {
		speed /= 2
	}
	terrain := lvl.Board.TopID(a.Pos)
	if tile.IsSlide(terrain) && !(a.IsChip() && playerHasItem(lvl, tile.BootsSlide)) {
		speed *= 2
	}
	if tile.IsIce(terrain) && !(a.IsChip() && playerHasItem(lvl, tile.BootsIce)) {
		speed *= 2
	}
	a.MoveCooldown -= speed
	a.AnimationFrame = a.MoveCooldown / 2
	if a.MoveCooldown > 0 {
		return triResSuccess
	}
	return triResFailed
}

// advanceMovement drives self through one tick of its current move,
// starting a fresh one if idle, counting down an in-progress one, and
// finally landing it via enterTile. Grounded on Actor_advance_movement.
func advanceMovement(lvl *level.Level, s *State, idx actor.Index, releasing bool) int {
	a := lvl.Actors.Get(idx)
	if tile.IsAnimation(a.ID) {
		return triResSuccess
	}

	if a.MoveCooldown <= 0 {
		if releasing {
			a.MoveDecision = a.Direction
		}
		if a.MoveDecision == tile.DirNil && forcedMove(a) == tile.DirNil {
			if s.pedanticMode {
				if enterTile(lvl, s, idx) == triResDied {
					return triResDied
				}
			}
			return triResSuccess
		}
		startRes := startMovingTo(lvl, s, idx, releasing)
		if startRes != triResDied {
			a.Hidden = false
		}
		if s.pedanticMode && startRes == triResFailed {
			if enterTile(lvl, s, idx) != triResDied {
				return triResDied
			}
		}
	}
	if reduceCooldown(lvl, s, idx) == triResSuccess {
		return triResSuccess
	}
	return enterTile(lvl, s, idx)
}
