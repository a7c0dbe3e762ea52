package ms

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// Actor.State bits, matching the reference's ActorState enum.
const (
	csReleased uint16 = 1 << iota
	csCloning
	csHasMoved
	csTurning
	csSlip
	csSlide
	csDeferPush
	csMutant
	_ // CS_SDIRMASK occupies bits 8-11; handled separately below
	csSpontaneous uint16 = 1 << 12
)

const csSDirShift = 8
const csSDirMask uint16 = 0x0F00

func setSpareDirection(a *actor.Actor, dir tile.Direction) {
	a.State = (a.State &^ csSDirMask) | (uint16(dir) << csSDirShift)
}

func spareDirection(a *actor.Actor) tile.Direction {
	return tile.Direction((a.State & csSDirMask) >> csSDirShift)
}

// slipper is one entry on the slip list: an actor currently subject to
// involuntary ice/slide/teleport movement.
type slipper struct {
	idx       actor.Index
	direction tile.Direction
}

// State is the MS ruleset's private bookkeeping block, recovered from
// Level.RulesetState by every function in this package.
type State struct {
	slipList  []slipper
	blockList []actor.Index

	msccSlippers     int
	chipTicksSinceMoved uint8
	chipStatus       level.ChipStatus
	chipLastSlipDir  tile.Direction
	mouseGoal        tile.Position
	controllerDir    tile.Direction
	levelComplete    bool
}

func newState() *State {
	return &State{mouseGoal: tile.PosNull}
}

func state(lvl *level.Level) *State { return lvl.RulesetState.(*State) }

func hasMouseGoal(s *State) bool { return s.mouseGoal != tile.PosNull }

func cancelMouseGoal(s *State) bool {
	s.mouseGoal = tile.PosNull
	return true
}

// appendToSlipList adds actor idx to the end of the slip list, or updates
// its direction if already present.
func appendToSlipList(s *State, idx actor.Index, dir tile.Direction) {
	for i := range s.slipList {
		if s.slipList[i].idx == idx {
			s.slipList[i].direction = dir
			return
		}
	}
	s.slipList = append(s.slipList, slipper{idx: idx, direction: dir})
	s.msccSlippers++
}

// prependToSlipList adds actor idx to the front of the slip list.
func prependToSlipList(s *State, idx actor.Index, dir tile.Direction) {
	if len(s.slipList) > 0 && s.slipList[0].idx == idx {
		s.slipList[0].direction = dir
		return
	}
	s.slipList = append(s.slipList, slipper{})
	copy(s.slipList[1:], s.slipList)
	s.slipList[0] = slipper{idx: idx, direction: dir}
}

func actorSlipDir(s *State, idx actor.Index) tile.Direction {
	for _, sl := range s.slipList {
		if sl.idx == idx {
			return sl.direction
		}
	}
	return tile.DirNil
}

func removeFromSlipList(s *State, idx actor.Index) {
	for i, sl := range s.slipList {
		if sl.idx == idx {
			s.slipList = append(s.slipList[:i], s.slipList[i+1:]...)
			return
		}
	}
}

// blockAt returns the cached block actor at pos, creating and caching a
// fresh Actor for it if one isn't already tracked — the block list exists
// so blocks only enter the actor array once something actually pushes
// them.
func blockAt(lvl *level.Level, pos tile.Position) actor.Index {
	s := state(lvl)
	for _, idx := range s.blockList {
		a := lvl.Actors.Get(idx)
		if a.Pos == pos && !a.Hidden {
			return idx
		}
	}

	id := lvl.Board.TopID(pos)
	na := actor.Actor{ID: tile.Block, Pos: pos}
	if id == tile.BlockStatic {
		na.Direction = tile.DirNil
	} else if tile.GetID(id) == tile.Block {
		na.Direction = tile.GetDir(id)
	}
	idx := lvl.Actors.Spawn(na)
	s.blockList = append(s.blockList, idx)
	return idx
}

// lookUpCreature returns the live, non-hidden actor at pos, ignoring Chip
// unless includeChip is set. Returns actor.IndexNone if none is present.
func lookUpCreature(lvl *level.Level, pos tile.Position, includeChip bool) actor.Index {
	for _, idx := range lvl.Actors.All() {
		a := lvl.Actors.Get(idx)
		if a.Hidden || a.Pos != pos {
			continue
		}
		if !a.IsChip() || includeChip {
			return idx
		}
	}
	return actor.IndexNone
}
