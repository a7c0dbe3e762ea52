package validation

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// CheckInit turns the status flags a ruleset's InitLevel accumulated
// into a Report: StatusInvalid is an Error (the caller should refuse to
// play the level), StatusBadTiles is a Warning (play proceeds, per
// spec.md §7, "unless the caller refuses such levels").
func CheckInit(lvl *level.Level) *Report {
	r := NewReport()
	if lvl.StatusFlags&level.StatusInvalid != 0 {
		r.addError("level %d: marked invalid during init", lvl.Metadata.LevelNumber)
	}
	if lvl.StatusFlags&level.StatusBadTiles != 0 {
		r.addWarning("level %d: malformed tiles found during init (buried cell, stray MS-only tile, missing/duplicate Chip, or similar)", lvl.Metadata.LevelNumber)
	}
	return r
}

// CheckTick inspects lvl's actor array after a tick for the anomaly
// classes the reference implementation logs and works around rather
// than aborting on: the array filled to capacity, and a creature left
// directionless or hidden on a teleport. Grounded on logic-ms.c's
// Level_wire_creatures ("filled the actor array") and
// Actor_teleport ("directionless creature ... on teleport", "hidden
// creature ... on teleport") warn() call sites.
func CheckTick(lvl *level.Level) *Report {
	r := NewReport()

	if lvl.Actors.Len() >= actor.MaxCreatures {
		r.addWarning("tick %d: actor array filled to capacity (%d); this should not be possible", lvl.CurrentTick, actor.MaxCreatures)
	}

	for _, idx := range lvl.Actors.All() {
		a := lvl.Actors.Get(idx)
		if a.IsChip() || (lvl.Board.TopID(a.Pos) != tile.Teleport && lvl.Board.BottomID(a.Pos) != tile.Teleport) {
			continue
		}
		switch {
		case a.Hidden:
			r.addWarning("tick %d: hidden creature %v left on teleport at %d", lvl.CurrentTick, a.ID, a.Pos)
		case a.Direction == tile.DirNil:
			r.addWarning("tick %d: directionless creature %v on teleport at %d", lvl.CurrentTick, a.ID, a.Pos)
		}
	}

	return r
}
