package lynx

import (
	"ccengine/pkg/actor"
	"ccengine/pkg/board"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// Actor.State bits, matching the reference's ActorState enum. The forced
// move direction occupies the low nibble, which happens to line up
// exactly with tile.Direction's own bit values (Nil=0, N=1, W=2, S=4,
// E=8), so no shift is needed to read or write it.
const (
	csFDirMask    uint16 = 0x0F
	csSlideToken  uint16 = 0x10
	csReverse     uint16 = 0x20
	csPushed      uint16 = 0x40
	csTeleported  uint16 = 0x80
)

func setForcedMove(a *actor.Actor, dir tile.Direction) {
	a.State = (a.State &^ csFDirMask) | uint16(dir)
}

func forcedMove(a *actor.Actor) tile.Direction {
	return tile.Direction(a.State & csFDirMask)
}

// State is the Lynx ruleset's private bookkeeping block, recovered from
// Level.RulesetState by every function in this package.
type State struct {
	pedanticMode bool

	// chipStuck is computed once at init (pedantic mode, Chip starting on
	// ice) and never revisited afterward.
	chipStuck bool

	chipBonked  bool
	chipPushing bool

	chipPredictedPos   tile.Position
	chipCollidingActor actor.Index

	mapBreached bool

	// toggleWallsXor is non-zero for exactly one tick after a green button
	// press: the next tick's start flips every switch wall and clears it.
	toggleWallsXor tile.ID

	// rffDir is the shared "random force floor" direction, advanced one
	// quarter-turn clockwise every time a random slide floor is consulted.
	rffDir tile.Direction

	endgameTimer int

	levelComplete bool

	// prng1/prng2 back Lynx's own 8-bit generator, kept separate from the
	// shared 31-bit one used for Blob's movement.
	prng1, prng2 uint8
}

func newState(pedantic bool) *State {
	return &State{
		pedanticMode:       pedantic,
		chipPredictedPos:   tile.PosNull,
		chipCollidingActor: actor.IndexNone,
		rffDir:             tile.DirNorth,
	}
}

func state(lvl *level.Level) *State { return lvl.RulesetState.(*State) }

func inEndgame(s *State) bool { return s.endgameTimer > 0 }

// startEndgame arms the 13-tick shutdown timer once Chip has died or
// reached the exit.
func startEndgame(s *State) {
	s.endgameTimer = 13
}

// findActor resolves Level_find_actor: the live, non-hidden actor at pos
// matching wantAnim against whether its id is an animation sprite.
// noChip skips slot 0 (Chip) from the search, as the reference's
// FA_NO_CHIP flag does.
//
// The reference compares (flags & FA_ANIMS) — 0 or 2 — directly against
// a C bool (0 or 1), which can never match true when FA_ANIMS is set;
// every call site that passes FA_ANIMS would then always come up empty.
// That reads as a transcription slip in an admittedly unfinished file
// rather than intended behavior, so this port compares wantAnim as a
// plain boolean instead.
func findActor(lvl *level.Level, pos tile.Position, noChip, wantAnim bool) actor.Index {
	all := lvl.Actors.All()
	start := 0
	if noChip {
		start = 1
	}
	for _, idx := range all[start:] {
		a := lvl.Actors.Get(idx)
		if a.Pos == pos && !a.Hidden && tile.IsAnimation(a.ID) == wantAnim {
			return idx
		}
	}
	return actor.IndexNone
}

// reverseIndices returns every spawned actor's index from last to first —
// the order both the decision and movement phases walk in. The
// reference bounds this with a shrinking last_actor pointer as an array-
// compaction optimization; since every actor this port erases is marked
// Hidden permanently (never revived or reused), walking the full
// allocated range and skipping hidden slots is behaviorally identical.
func reverseIndices(lvl *level.Level) []actor.Index {
	all := lvl.Actors.All()
	rev := make([]actor.Index, len(all))
	for i, idx := range all {
		rev[len(all)-1-i] = idx
	}
	return rev
}

func addClaim(lvl *level.Level, pos tile.Position) {
	lvl.Board.CellUnchecked(pos).Top.SetState(board.LynxClaimedBit)
}
func removeClaim(lvl *level.Level, pos tile.Position) {
	lvl.Board.CellUnchecked(pos).Top.ClearState(board.LynxClaimedBit)
}
func hasClaim(lvl *level.Level, pos tile.Position) bool {
	return lvl.Board.CellUnchecked(pos).Top.HasState(board.LynxClaimedBit)
}

func addAnimation(lvl *level.Level, pos tile.Position) {
	lvl.Board.CellUnchecked(pos).Top.SetState(board.LynxAnimatedBit)
}
func removeAnimation(lvl *level.Level, pos tile.Position) {
	lvl.Board.CellUnchecked(pos).Top.ClearState(board.LynxAnimatedBit)
}
func hasAnimation(lvl *level.Level, pos tile.Position) bool {
	return lvl.Board.CellUnchecked(pos).Top.HasState(board.LynxAnimatedBit)
}

// markHadTrap and markHadTeleport record that pos's top terrain was once a
// beartrap/teleport, set once during init and never cleared, so a popup
// wall or other terrain change over the cell doesn't erase the memory.
func markHadTrap(lvl *level.Level, pos tile.Position) {
	lvl.Board.CellUnchecked(pos).Top.SetState(board.LynxHadTrapBit)
}
func markHadTeleport(lvl *level.Level, pos tile.Position) {
	lvl.Board.CellUnchecked(pos).Top.SetState(board.LynxHadTeleportBit)
}
func everHadTrap(lvl *level.Level, pos tile.Position) bool {
	return lvl.Board.CellUnchecked(pos).Top.HasState(board.LynxHadTrapBit)
}
func everHadTeleport(lvl *level.Level, pos tile.Position) bool {
	return lvl.Board.CellUnchecked(pos).Top.HasState(board.LynxHadTeleportBit)
}

// playerHasItem resolves Level_player_has_item: id may be either an item
// (Boots_Ice, Key_Red, ...) or the terrain/door tile that item unlocks
// (Ice, Door_Red, ...) — both map to the same inventory slot.
func playerHasItem(lvl *level.Level, id tile.ID) bool {
	switch id {
	case tile.KeyRed, tile.DoorRed:
		return lvl.HasKey(tile.KeyRed)
	case tile.KeyBlue, tile.DoorBlue:
		return lvl.HasKey(tile.KeyBlue)
	case tile.KeyYellow, tile.DoorYellow:
		return lvl.HasKey(tile.KeyYellow)
	case tile.KeyGreen, tile.DoorGreen:
		return lvl.HasKey(tile.KeyGreen)
	case tile.BootsIce, tile.Ice, tile.IceWallNorthwest, tile.IceWallNortheast,
		tile.IceWallSouthwest, tile.IceWallSoutheast:
		return lvl.HasBoots(tile.BootsIce)
	case tile.BootsSlide, tile.SlideNorth, tile.SlideWest, tile.SlideSouth,
		tile.SlideEast, tile.SlideRandom:
		return lvl.HasBoots(tile.BootsSlide)
	case tile.BootsFire, tile.Fire:
		return lvl.HasBoots(tile.BootsFire)
	case tile.BootsWater, tile.Water:
		return lvl.HasBoots(tile.BootsWater)
	default:
		return false
	}
}
