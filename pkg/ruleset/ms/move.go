package ms

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/board"
	"ccengine/pkg/level"
	"ccengine/pkg/prng"
	"ccengine/pkg/tile"
)

// slideDir translates a slide floor into the direction it pushes toward;
// a random slide floor draws a fresh direction from the level's PRNG.
func slideDir(lvl *level.Level, floor tile.ID) tile.Direction {
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
		return 1 << lvl.PRNG.Random4()
	default:
		return tile.DirNil
	}
}

// iceWallTurnDir redirects a creature bouncing off an ice-wall corner.
func iceWallTurnDir(floor tile.ID, dir tile.Direction) tile.Direction {
	switch floor {
	case tile.IceWallNortheast:
		switch dir {
		case tile.DirSouth:
			return tile.DirEast
		case tile.DirWest:
			return tile.DirNorth
		default:
			return dir
		}
	case tile.IceWallSouthwest:
		switch dir {
		case tile.DirNorth:
			return tile.DirWest
		case tile.DirEast:
			return tile.DirSouth
		default:
			return dir
		}
	case tile.IceWallNorthwest:
		switch dir {
		case tile.DirSouth:
			return tile.DirWest
		case tile.DirEast:
			return tile.DirNorth
		default:
			return dir
		}
	case tile.IceWallSoutheast:
		switch dir {
		case tile.DirNorth:
			return tile.DirEast
		case tile.DirWest:
			return tile.DirSouth
		default:
			return dir
		}
	default:
		return dir
	}
}

// updateFloor redraws idx's tile on the map to reflect its current
// direction and status.
func updateFloor(lvl *level.Level, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	if a.Hidden {
		return
	}
	cell := lvl.Board.CellUnchecked(a.Pos)

	if a.IsBlock() {
		cell.Top.ID = tile.BlockStatic
		if a.State&csMutant != 0 {
			cell.Top.ID = tile.WithDir(tile.Chip, tile.DirNorth)
		}
		return
	}
	if a.IsChip() {
		s := state(lvl)
		switch s.chipStatus {
		case level.ChipBurned:
			cell.Top.ID = tile.WithDir(tile.BurnedChip, 0)
			return
		case level.ChipDrowned:
			cell.Top.ID = tile.WithDir(tile.DrownedChip, 0)
			return
		}
		if s.chipStatus == level.ChipOkay && lvl.Board.BottomID(a.Pos) == tile.Water {
			a.ID = tile.SwimmingChip
		}
	}

	if a.State&csTurning != 0 {
		a.Direction = tile.Right(a.Direction)
	}
	cell.Top.ID = tile.WithDir(a.ID, a.Direction)
	cell.Top.State = 0
}

// addToMap pushes a fresh empty tile under idx and redraws it — the move
// into occupying that stack position.
func addToMap(lvl *level.Level, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	if a.Hidden {
		return
	}
	lvl.Board.CellUnchecked(a.Pos).Push(board.MapTile{ID: tile.Empty})
	updateFloor(lvl, idx)
}

// turnTanks reverses every live tank's direction, handling the Tank Top
// Glitch (a tank mid-slip keeps its "spare" direction in reserve) and
// spontaneous generation from a cloner.
func turnTanks(lvl *level.Level, invoking actor.Index) {
	for _, idx := range lvl.Actors.All() {
		a := lvl.Actors.Get(idx)
		if a.Hidden || a.ID != tile.Tank {
			continue
		}
		a.Direction = tile.Back(a.Direction)
		if a.State&csSlip != 0 && a.State&csSlide == 0 &&
			spareDirection(a) != tile.DirNil && a.State&csSpontaneous == 0 {
			a.Direction = tile.Back(spareDirection(a))
		}
		if a.State&csTurning == 0 {
			a.State |= csTurning | csHasMoved
		}
		if idx == invoking {
			continue
		}
		if tile.GetID(lvl.Board.TopID(a.Pos)) == tile.Tank {
			updateFloor(lvl, idx)
		} else if a.State&csSpontaneous != 0 {
			if a.State&csTurning != 0 {
				a.State &^= csTurning
				updateFloor(lvl, idx)
				a.State |= csTurning
			}
			a.Direction = tile.Back(a.Direction)
		}
	}
}

// startFloorMovement puts idx on the slip list if the floor under it is
// a slip surface (ice, slide, teleport, or a block resting in a
// beartrap).
func startFloorMovement(lvl *level.Level, idx actor.Index, floor tile.ID, fdir tile.Direction) {
	a := lvl.Actors.Get(idx)
	dir := fdir
	a.State &^= (csSlip | csSlide)

	switch {
	case tile.IsIce(floor):
		if fdir == tile.DirNil {
			dir = iceWallTurnDir(floor, a.Direction)
		}
	case tile.IsSlide(floor):
		dir = slideDir(lvl, floor)
	case floor == tile.Teleport:
		if fdir == tile.DirNil {
			dir = a.Direction
		}
	case floor == tile.Beartrap && a.IsBlock():
		dir = a.Direction
	case !a.IsChip():
		return
	default:
		dir = a.Direction
	}

	s := state(lvl)
	if a.IsChip() {
		if tile.IsIce(floor) || (floor == tile.Teleport && dir != tile.DirNil) {
			a.State |= csSlip
		} else {
			a.State |= csSlide
		}
		prependToSlipList(s, idx, dir)
		a.Direction = dir
		updateFloor(lvl, idx)
	} else {
		a.State |= csSlip
		setSpareDirection(a, tile.DirNil)
		appendToSlipList(s, idx, dir)
	}
}

func endFloorMovement(lvl *level.Level, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	a.State &^= (csSlip | csSlide)
	removeFromSlipList(state(lvl), idx)
}

// chooseMoveCreature picks self's candidate move for this tick, per the
// species-specific ranked direction list documented for the MS ruleset.
func chooseMoveCreature(lvl *level.Level, idx actor.Index) {
	a := lvl.Actors.Get(idx)
	a.MoveDecision = tile.DirNil
	s := state(lvl)

	if a.Hidden || a.ID == tile.Block {
		return
	}
	if lvl.CurrentTick&2 != 0 {
		return
	}
	if (a.ID == tile.Teeth || a.ID == tile.Blob) &&
		(uint32(lvl.CurrentTick)+uint32(lvl.InitStepParity))&4 != 0 {
		return
	}
	if a.State&csTurning != 0 {
		a.State &^= (csTurning | csHasMoved)
		updateFloor(lvl, idx)
	}
	if a.State&csHasMoved != 0 {
		floor := lvl.Board.TopID(a.Pos)
		id := tile.GetID(floor)
		if tile.IsActor(floor) && (id == tile.Chip || id == tile.SwimmingChip) {
			floor = lvl.Board.BottomID(a.Pos)
		}
		if !tile.IsActor(floor) && !impedesMoveInto(floor, a, tile.DirNil) {
			a.Hidden = true
		}
	}
	if a.State&csHasMoved != 0 {
		s.controllerDir = tile.DirNil
		return
	}
	if a.State&(csSlip|csSlide) != 0 {
		return
	}

	floor := cellTerrain(lvl, a.Pos)
	dir := a.Direction
	pdir := dir
	var choices [4]tile.Direction

	if floor == tile.CloneMachine || floor == tile.Beartrap {
		switch a.ID {
		case tile.Tank, tile.Ball, tile.Glider, tile.Fireball, tile.Walker:
			choices[0] = dir
		case tile.Blob:
			choices = [4]tile.Direction{dir, tile.Left(dir), tile.Back(dir), tile.Right(dir)}
			prng.Permute4(lvl.PRNG, &choices)
		case tile.Bug, tile.Paramecium, tile.Teeth:
			a.MoveDecision = s.controllerDir
			return
		}
	} else {
		switch a.ID {
		case tile.Tank:
			choices[0] = dir
		case tile.Ball:
			choices[0], choices[1] = dir, tile.Back(dir)
		case tile.Glider:
			choices = [4]tile.Direction{dir, tile.Left(dir), tile.Right(dir), tile.Back(dir)}
		case tile.Fireball:
			choices = [4]tile.Direction{dir, tile.Right(dir), tile.Left(dir), tile.Back(dir)}
		case tile.Walker:
			choices = [4]tile.Direction{dir, tile.Left(dir), tile.Back(dir), tile.Right(dir)}
			rest := [3]tile.Direction{choices[1], choices[2], choices[3]}
			prng.Permute3(lvl.PRNG, &rest)
			choices[1], choices[2], choices[3] = rest[0], rest[1], rest[2]
		case tile.Blob:
			choices = [4]tile.Direction{dir, tile.Left(dir), tile.Back(dir), tile.Right(dir)}
			prng.Permute4(lvl.PRNG, &choices)
		case tile.Bug:
			choices = [4]tile.Direction{tile.Left(dir), dir, tile.Right(dir), tile.Back(dir)}
		case tile.Paramecium:
			choices = [4]tile.Direction{tile.Right(dir), dir, tile.Left(dir), tile.Back(dir)}
		case tile.Teeth:
			chip := lvl.Actors.Chip()
			cx, cy := tile.XY(chip.Pos)
			sx, sy := tile.XY(a.Pos)
			dy, dx := cy-sy, cx-sx
			n := directionForDelta(dy, tile.DirNorth, tile.DirSouth)
			if dy < 0 {
				dy = -dy
			}
			m := directionForDelta(dx, tile.DirWest, tile.DirEast)
			if dx < 0 {
				dx = -dx
			}
			if dx > dy {
				choices[0], choices[1] = m, n
			} else {
				choices[0], choices[1] = n, m
			}
			pdir = choices[0]
			choices[2] = choices[0]
		}
	}

	for _, c := range choices {
		if c == tile.DirNil {
			break
		}
		a.MoveDecision = c
		s.controllerDir = c
		if canMakeMove(lvl, idx, c, 0) {
			return
		}
	}

	if a.ID == tile.Tank {
		if a.State&csReleased != 0 || floor != tile.Beartrap {
			a.State |= csHasMoved
		}
		a.MoveDecision = tile.DirNil
	} else {
		a.MoveDecision = pdir
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

// chipRelPositionToAbsolute unpacks a Chip-relative mouse-move position.
func chipRelPositionToAbsolute(chipPos tile.Position, rel int) tile.Position {
	x := rel%19 - 9
	y := rel/19 - 9
	cx, cy := tile.XY(chipPos)
	return tile.FromXY(cx+x, cy+y)
}

// chipMouseDirection derives the next step toward Chip's mouse goal,
// using the same horizontal/vertical priority rule as Teeth.
func chipMouseDirection(lvl *level.Level) tile.Direction {
	s := state(lvl)
	if !hasMouseGoal(s) {
		return tile.DirNil
	}
	chip := lvl.Actors.Chip()
	if s.mouseGoal == chip.Pos {
		cancelMouseGoal(s)
		return tile.DirNil
	}
	gx, gy := tile.XY(s.mouseGoal)
	cx, cy := tile.XY(chip.Pos)
	dy, dx := gy-cy, gx-cx
	d1 := directionForDelta(dy, tile.DirNorth, tile.DirSouth)
	if dy < 0 {
		dy = -dy
	}
	d2 := directionForDelta(dx, tile.DirWest, tile.DirEast)
	if dx < 0 {
		dx = -dx
	}
	if dx > dy {
		d1, d2 = d2, d1
	}
	if d1 != tile.DirNil && d2 != tile.DirNil {
		if canMakeMove(lvl, actor.ChipIndex, d1, 0) {
			return d1
		}
		return d2
	}
	if d2 == tile.DirNil {
		return d1
	}
	return d2
}

// chooseMoveChip consumes game_input to decide Chip's candidate move;
// discard is set while Chip is slipping, meaning player input is not
// retained across the tick.
func chooseMoveChip(lvl *level.Level, discard bool) {
	chip := lvl.Actors.Chip()
	chip.MoveDecision = tile.DirNil
	if chip.Hidden {
		return
	}
	if lvl.CurrentTick&3 == 0 {
		chip.State &^= csHasMoved
	}
	s := state(lvl)
	if chip.State&csHasMoved != 0 {
		if lvl.GameInput != level.InputNone && hasMouseGoal(s) {
			cancelMouseGoal(s)
		}
		return
	}

	input := lvl.GameInput
	if discard || (chip.State&csSlide != 0 && tile.Direction(input) == chip.Direction) {
		if lvl.CurrentTick != 0 && lvl.CurrentTick&1 == 0 {
			cancelMouseGoal(s)
		}
		return
	}

	var dir tile.Direction
	switch {
	case input.IsMouseAbsolute():
		s.mouseGoal = input.MousePosition()
		dir = tile.DirNil
	case input.IsMouseRelative():
		dx, dy := input.MouseOffset()
		s.mouseGoal = chipRelPositionToAbsolute(chip.Pos, (dy+9)*19+(dx+9))
		dir = tile.DirNil
	default:
		dir = tile.Direction(input)
		if dir&(tile.DirNorth|tile.DirSouth) != 0 && dir&(tile.DirEast|tile.DirWest) != 0 {
			dir &= tile.DirNorth | tile.DirSouth
		}
	}

	if dir == tile.DirNil && hasMouseGoal(s) && lvl.CurrentTick&3 == 2 {
		dir = chipMouseDirection(lvl)
	}
	chip.MoveDecision = dir
}

// teleport scans backward from start in reading order for a working exit
// teleport that idx can leave through facing its current direction.
func teleport(lvl *level.Level, idx actor.Index, start tile.Position) tile.Position {
	a := lvl.Actors.Get(idx)
	origDir := a.Direction
	origPos := a.Pos
	dest := start

	for {
		dest--
		if dest < 0 {
			dest += tile.Size
		}
		if dest == start {
			break
		}
		cell := lvl.Board.CellUnchecked(dest)
		if cell.Top.ID != tile.Teleport || cell.Top.HasState(board.MSBrokenBit) {
			continue
		}
		a.Pos = dest
		ok := canMakeMove(lvl, idx, a.Direction,
			cmmNoLeaveCheck|cmmNoExposeWalls|cmmNoDeferButtons|cmmNoFireCheck|cmmTeleportPush)
		a.Direction = origDir
		a.Pos = origPos
		if ok {
			break
		}
	}
	return dest
}

// startMovement attempts to begin idx's move in dir, redrawing the
// actor's facing even on failure so a blocked bump still turns it.
func startMovement(lvl *level.Level, idx actor.Index, dir tile.Direction) bool {
	a := lvl.Actors.Get(idx)
	floor := lvl.Board.BottomID(a.Pos)
	odir := a.Direction

	if !canMakeMove(lvl, idx, dir, 0) {
		if a.IsChip() || (floor != tile.Beartrap && floor != tile.CloneMachine && a.State&csSlip == 0) {
			if !a.IsChip() || odir != tile.DirNil {
				a.Direction = dir
			}
			updateFloor(lvl, idx)
		}
		return false
	}

	if floor == tile.Beartrap {
		if a.State&csMutant != 0 {
			lvl.Board.CellUnchecked(a.Pos).Bottom.SetState(board.MSHasMutantBit)
		}
	}
	a.State &^= csReleased
	a.Direction = dir
	return true
}

// advanceMovement performs idx's move in dir, including button/teleport/
// death post-move effects, and reports whether the move succeeded.
func advanceMovement(lvl *level.Level, idx actor.Index, dir tile.Direction) bool {
	if dir == tile.DirNil {
		return true
	}
	a := lvl.Actors.Get(idx)
	s := state(lvl)
	if a.IsChip() {
		s.chipTicksSinceMoved = 0
	}

	if !startMovement(lvl, idx, dir) {
		if a.IsChip() {
			cancelMouseGoal(s)
			resetButtons(lvl)
		}
		return false
	}

	endMovement(lvl, idx, dir)
	if a.IsChip() {
		handleButtons(lvl)
	}
	return true
}
