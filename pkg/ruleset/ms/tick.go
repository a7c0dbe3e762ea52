package ms

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// checkForEnding updates lvl.WinState from the current chip status /
// level-complete flag and raises the corresponding sfx exactly once.
func checkForEnding(lvl *level.Level) level.WinState {
	s := state(lvl)
	if s.chipStatus != level.ChipOkay && s.chipStatus != level.ChipSquished {
		if lvl.WinState != level.WinDied {
			lvl.AddSFX(level.SfxChipLoses)
		}
		lvl.WinState = level.WinDied
	} else if s.levelComplete {
		if lvl.WinState != level.WinWon {
			lvl.AddSFX(level.SfxChipWins)
		}
		lvl.WinState = level.WinWon
	}
	return lvl.WinState
}

// chipFloorMovements advances Chip along the slip list; only Chip's own
// entries are processed here, monsters are handled separately by
// nonChipFloorMovements so the two observe independent controller
// directions.
func chipFloorMovements(lvl *level.Level) {
	s := state(lvl)
	for n := 0; n < len(s.slipList); n++ {
		sl := s.slipList[n]
		a := lvl.Actors.Get(sl.idx)
		if a.State&(csSlip|csSlide) == 0 {
			continue
		}
		slipDir := sl.direction
		if slipDir == tile.DirNil && a.IsChip() {
			lvl.Board.CellUnchecked(a.Pos).Top.ID = tile.WithDir(tile.Chip, tile.DirNorth)
		}
		if slipDir == tile.DirNil || !a.IsChip() {
			continue
		}

		s.chipLastSlipDir = slipDir
		advanced := advanceMovement(lvl, sl.idx, slipDir)
		if advanced {
			a.State &^= csHasMoved
		} else {
			floor := lvl.Board.BottomID(a.Pos)
			switch {
			case tile.IsSlide(floor):
				a.State &^= csHasMoved
			case tile.IsIce(floor):
				slipDir = iceWallTurnDir(floor, tile.Back(slipDir))
				s.chipLastSlipDir = slipDir
				if advanceMovement(lvl, sl.idx, slipDir) {
					a.State &^= csHasMoved
				}
			case floor == tile.Teleport || floor == tile.BlockStatic:
				slipDir = tile.Back(slipDir)
				s.chipLastSlipDir = slipDir
				if advanceMovement(lvl, sl.idx, slipDir) {
					a.State &^= csHasMoved
				}
			}
			if a.State&(csSlip|csSlide) != 0 {
				endFloorMovement(lvl, sl.idx)
				startFloorMovement(lvl, sl.idx, lvl.Board.BottomID(a.Pos), tile.DirNil)
			}
		}
		if checkForEnding(lvl) != level.WinPlaying {
			return
		}
	}
}

// nonChipFloorMovements advances every slipping monster and block, using
// the MSCC-compatible "advance" counter quirk that skips re-processing
// an actor in the same pass once it has already been handled.
func nonChipFloorMovements(lvl *level.Level) {
	s := state(lvl)
	var advance int
	for n := 0; n < len(s.slipList); {
		oldMsccSlippers := s.msccSlippers
		sl := s.slipList[n]
		a := lvl.Actors.Get(sl.idx)
		if a.IsChip() {
			n++
			continue
		}
		if advance > 0 {
			advance--
			n++
			continue
		}
		if a.State&(csSlip|csSlide) == 0 {
			n++
			continue
		}
		slipDir := sl.direction
		origDir := slipDir
		if slipDir == tile.DirNil {
			n++
			continue
		}
		setSpareDirection(a, sl.direction)
		ok := advanceMovement(lvl, sl.idx, slipDir)
		if !ok {
			floor := lvl.Board.BottomID(a.Pos)
			if tile.IsIce(floor) {
				slipDir = iceWallTurnDir(floor, tile.Back(slipDir))
				ok = advanceMovement(lvl, sl.idx, slipDir)
			}
			if a.State&(csSlip|csSlide) != 0 {
				endFloorMovement(lvl, sl.idx)
				s.msccSlippers--
				next := origDir
				if ok {
					next = tile.DirNil
				}
				startFloorMovement(lvl, sl.idx, lvl.Board.BottomID(a.Pos), next)
			}
		}
		if a.State&csSlip != 0 && ok {
			a.State |= csSlide
		}
		setSpareDirection(a, tile.DirNil)
		if checkForEnding(lvl) != level.WinPlaying {
			return
		}
		if s.msccSlippers == oldMsccSlippers {
			advance++
		}
	}
}

func doFloorMovements(lvl *level.Level) {
	chipFloorMovements(lvl)
	cleanSlipList(lvl)
	if checkForEnding(lvl) == level.WinPlaying {
		nonChipFloorMovements(lvl)
	}
	s := state(lvl)
	if !s.levelComplete && s.chipStatus == level.ChipSquished {
		s.chipStatus = level.ChipSquishedDeath
	}
}

// cleanSlipList removes every actor no longer flagged SLIP/SLIDE —
// deadwood left behind by a move that succeeded onto dry land.
func cleanSlipList(lvl *level.Level) {
	s := state(lvl)
	for n := len(s.slipList) - 1; n >= 0; n-- {
		a := lvl.Actors.Get(s.slipList[n].idx)
		if a.State&(csSlip|csSlide) == 0 {
			endFloorMovement(lvl, s.slipList[n].idx)
		}
	}
}

func createClones(lvl *level.Level) {
	for _, idx := range lvl.Actors.All() {
		a := lvl.Actors.Get(idx)
		a.State &^= csCloning
	}
}

// Tick advances lvl by one game step, following the MS ruleset's
// documented phase order: stale-tank cleanup, Chip idle timeout,
// slip-list accounting, odd-tick monster phase, floor movements,
// time-limit check, Chip's own move, then slip-list sweep and clone
// advance.
func Tick(lvl *level.Level) {
	lvl.ClearOneshotSFX()
	s := state(lvl)

	if lvl.CurrentTick&3 == 0 {
		for _, idx := range lvl.Actors.All()[1:] {
			a := lvl.Actors.Get(idx)
			if a.State&csTurning != 0 {
				a.State &^= (csTurning | csHasMoved)
				updateFloor(lvl, idx)
			}
		}
		s.chipTicksSinceMoved++
		if s.chipTicksSinceMoved > 3 {
			s.chipTicksSinceMoved = 3
			chip := lvl.Actors.Chip()
			if chip.Direction != tile.DirNil {
				chip.Direction = tile.DirSouth
			}
			updateFloor(lvl, actor.ChipIndex)
		}
	}

	s.msccSlippers = len(s.slipList)
	chip := lvl.Actors.Chip()
	if chip.State&(csSlip|csSlide) != 0 {
		s.msccSlippers--
	}

	if lvl.CurrentTick&1 != 0 {
		s.controllerDir = tile.DirNil
		for _, idx := range lvl.Actors.All() {
			a := lvl.Actors.Get(idx)
			if !a.Hidden && !a.IsChip() && lvl.CurrentTick&3 == 0 &&
				s.chipStatus == level.ChipSquished && !s.levelComplete {
				s.chipStatus = level.ChipSquishedDeath
			}
			if a.Hidden || a.State&csCloning != 0 || a.IsChip() {
				continue
			}
			chooseMoveCreature(lvl, idx)
			if a.MoveDecision != tile.DirNil {
				advanceMovement(lvl, idx, a.MoveDecision)
			}
		}
		if checkForEnding(lvl) != level.WinPlaying {
			lvl.CurrentTick++
			return
		}
	}

	if lvl.CurrentTick&1 != 0 {
		doFloorMovements(lvl)
		if checkForEnding(lvl) != level.WinPlaying {
			lvl.CurrentTick++
			return
		}
	}
	cleanSlipList(lvl)

	if lvl.TimeLimit != 0 {
		if uint32(lvl.CurrentTick) >= lvl.TimeLimit {
			s.chipStatus = level.ChipOutOfTime
			lvl.AddSFX(level.SfxTimeOut)
			lvl.CurrentTick++
			return
		} else if lvl.TimeLimit-uint32(lvl.CurrentTick) <= 15*20 && lvl.CurrentTick%20 == 0 {
			lvl.AddSFX(level.SfxTimeLow)
		}
	}

	chooseMoveChip(lvl, chip.State&csSlip != 0)
	if chip.MoveDecision != tile.DirNil {
		if advanceMovement(lvl, actor.ChipIndex, chip.MoveDecision) {
			if checkForEnding(lvl) != level.WinPlaying {
				lvl.CurrentTick++
				return
			}
			chip.State |= csHasMoved
		}
	}
	cleanSlipList(lvl)
	createClones(lvl)

	lvl.CurrentTick++
}
