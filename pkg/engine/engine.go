// Package engine is the public surface callers drive: build a Level from
// parsed metadata, feed it input one tick at a time, and read back what
// happened. It owns nothing the level/ruleset packages don't already own —
// every function here is a thin dispatch or a read-only snapshot, so the
// deterministic core stays reachable without exposing ruleset internals.
package engine

import (
	"fmt"

	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/ruleset/lynx"
	"ccengine/pkg/ruleset/ms"
	"ccengine/pkg/tile"
)

// MakeLevel builds a ready-to-tick Level from meta under cfg, dispatching
// level construction to whichever ruleset cfg names. A Config with an
// unrecognised Ruleset string is an error, since there is no sensible
// default to fall back to for game rules.
func MakeLevel(meta *level.LevelMetadata, cfg level.Config) (*level.Level, error) {
	lvl, err := level.NewBaseLevel(meta, cfg)
	if err != nil {
		return nil, fmt.Errorf("engine: make level: %w", err)
	}
	switch lvl.Ruleset {
	case level.RulesetMS:
		if err := ms.InitLevel(lvl); err != nil {
			return nil, fmt.Errorf("engine: ms init: %w", err)
		}
	case level.RulesetLynx:
		if err := lynx.InitLevel(lvl); err != nil {
			return nil, fmt.Errorf("engine: lynx init: %w", err)
		}
	default:
		return nil, fmt.Errorf("engine: unrecognised ruleset %q", cfg.Ruleset)
	}
	return lvl, nil
}

// SetInput records the input lvl's next Tick will consume.
func SetInput(lvl *level.Level, gi level.GameInput) { lvl.SetInput(gi) }

// Tick advances lvl by one game step under whichever ruleset built it.
func Tick(lvl *level.Level) error {
	switch lvl.Ruleset {
	case level.RulesetMS:
		ms.Tick(lvl)
	case level.RulesetLynx:
		lynx.Tick(lvl)
	default:
		return fmt.Errorf("engine: level has no ruleset assigned")
	}
	return nil
}

// WinState reports lvl's current tri-state outcome.
func WinState(lvl *level.Level) level.WinState { return lvl.Win() }

// TileAt returns the top and bottom tile identities at pos.
func TileAt(lvl *level.Level, pos tile.Position) (top, bottom tile.ID) {
	return lvl.Board.TopID(pos), lvl.Board.BottomID(pos)
}

// ActorSnapshot is a read-only copy of one actor slot's visible state.
type ActorSnapshot struct {
	Pos       tile.Position
	ID        tile.ID
	Direction tile.Direction
	Hidden    bool
}

func snapshotActor(a *actor.Actor) ActorSnapshot {
	return ActorSnapshot{Pos: a.Pos, ID: tile.GetID(a.ID), Direction: a.Direction, Hidden: a.Hidden}
}

// ActorCount reports how many actor slots are allocated, hidden or not.
func ActorCount(lvl *level.Level) int { return lvl.Actors.Len() }

// ActorAt returns a snapshot of the actor in slot idx.
func ActorAt(lvl *level.Level, idx actor.Index) ActorSnapshot {
	return snapshotActor(lvl.Actors.Get(idx))
}

// Actors returns a snapshot of every allocated actor slot, in array order
// (slot 0 is always Chip).
func Actors(lvl *level.Level) []ActorSnapshot {
	n := lvl.Actors.Len()
	out := make([]ActorSnapshot, n)
	for i := range out {
		out[i] = ActorAt(lvl, actor.Index(i))
	}
	return out
}

// CurrentTick reports how many ticks lvl has advanced.
func CurrentTick(lvl *level.Level) uint32 { return lvl.CurrentTick }

// TimeLimit reports lvl's time limit in ticks, or 0 for untimed.
func TimeLimit(lvl *level.Level) uint32 { return lvl.TimeLimit }

// ChipsLeft reports how many collectible chips remain for the socket.
func ChipsLeft(lvl *level.Level) uint16 { return lvl.ChipsLeft }

// SFX reports the raw bitset of sound cues currently raised.
func SFX(lvl *level.Level) uint32 { return lvl.SFX }

// HasSFX reports whether a specific cue is currently raised.
func HasSFX(lvl *level.Level, sfx level.Sfx) bool { return lvl.SFX&(1<<uint(sfx)) != 0 }

// Inventory is a read-only snapshot of the player's keys and boots.
type Inventory struct {
	Keys  [4]uint8
	Boots [4]uint8
}

// PlayerInventory returns a copy of lvl's current key/boot counts.
func PlayerInventory(lvl *level.Level) Inventory {
	return Inventory{Keys: lvl.PlayerKeys, Boots: lvl.PlayerBoots}
}

// StatusFlags reports the SF_INVALID/SF_BAD_TILES bits accumulated during
// init, for callers that want to refuse malformed levels instead of
// playing them anyway.
func StatusFlags(lvl *level.Level) uint16 { return lvl.StatusFlags }
