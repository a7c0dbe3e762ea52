package lynx

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// checkForEnding updates lvl.WinState from whether Chip's actor slot still
// holds a live Chip sprite (removeActor overwrites it with an explosion or
// splash id on death) or the level-complete flag, raising the matching sfx
// exactly once. Grounded on the sibling MS ruleset's function of the same
// name, adapted since Lynx has no separate chipStatus field.
func checkForEnding(lvl *level.Level, s *State) level.WinState {
	chip := lvl.Actors.Chip()
	switch {
	case !chip.IsChip():
		lvl.WinState = level.WinDied
	case s.levelComplete:
		if lvl.WinState != level.WinWon {
			lvl.AddSFX(level.SfxChipWins)
		}
		lvl.WinState = level.WinWon
	}
	return lvl.WinState
}

// flushToggleWalls applies a green button press deferred from last tick,
// flipping every switch wall on the board, then disarms itself. Lynx
// defers this to the following tick's start instead of flipping
// immediately the way MS does.
func flushToggleWalls(lvl *level.Level, s *State) {
	if s.toggleWallsXor == 0 {
		return
	}
	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell := lvl.Board.CellUnchecked(pos)
		if cell.Top.ID == tile.SwitchWallOpen || cell.Top.ID == tile.SwitchWallClosed {
			cell.Top.ID ^= s.toggleWallsXor
		}
	}
	s.toggleWallsXor = 0
}

// Tick advances lvl by one game step, following lynx_tick_level's phase
// order: Chip's pushing sprite reverts, the endgame timer arms (or Chip
// times out) unless it's already running, pending tank reversals and
// stale pushed-block sfx clear, a deferred green-button flip flushes,
// every actor decides its move from last actor to first, every actor
// then tries to execute that move in the same order, and finally any
// actor left standing on a teleport jumps.
func Tick(lvl *level.Level) {
	lvl.ClearOneshotSFX()
	s := state(lvl)

	chip := lvl.Actors.Chip()
	if chip.ID == tile.PushingChip {
		chip.ID = tile.Chip
	}

	if !inEndgame(s) {
		if s.levelComplete {
			startEndgame(s)
		} else if lvl.TimeLimit != 0 && lvl.CurrentTick >= lvl.TimeLimit {
			removeChip(lvl, s, level.ChipOutOfTime, actor.IndexNone)
			lvl.AddSFX(level.SfxTimeOut)
		}
	}

	for _, idx := range lvl.Actors.All() {
		a := lvl.Actors.Get(idx)
		if a.Hidden || a.State&csReverse == 0 {
			continue
		}
		a.State &^= csReverse
		if a.MoveCooldown <= 0 {
			a.Direction = tile.Back(a.Direction)
		}
	}

	for _, idx := range lvl.Actors.All() {
		a := lvl.Actors.Get(idx)
		if a.State&csPushed != 0 && a.MoveCooldown <= 0 {
			a.State &^= csPushed
			lvl.StopSFX(level.SfxBlockMoving)
		}
	}

	flushToggleWalls(lvl, s)

	s.chipPredictedPos = tile.PosNull
	s.chipCollidingActor = actor.IndexNone
	s.chipBonked = false

	for _, idx := range reverseIndices(lvl) {
		a := lvl.Actors.Get(idx)
		if a.Hidden && idx != actor.ChipIndex {
			continue
		}
		if a.MoveCooldown > 0 {
			continue
		}
		doDecision(lvl, s, idx)
	}

	for _, idx := range reverseIndices(lvl) {
		a := lvl.Actors.Get(idx)
		if a.Hidden && idx != actor.ChipIndex {
			continue
		}
		if idx == actor.ChipIndex && s.levelComplete {
			continue
		}
		if advanceMovement(lvl, s, idx, false) == triResSuccess {
			a.MoveDecision = tile.DirNil
			setForcedMove(a, tile.DirNil)
			if lvl.Board.TopID(a.Pos) == tile.ButtonBrown {
				activateTrap(lvl, s, a.Pos)
			}
		}
	}

	if s.chipPushing {
		chip.ID = tile.PushingChip
	}

	for _, idx := range reverseIndices(lvl) {
		a := lvl.Actors.Get(idx)
		if a.Hidden || a.MoveCooldown > 0 {
			continue
		}
		if lvl.Board.TopID(a.Pos) == tile.Teleport {
			teleportActor(lvl, s, idx)
		}
	}

	checkForEnding(lvl, s)
	if inEndgame(s) {
		s.endgameTimer--
	}
	lvl.CurrentTick++
}
