package lynx

import (
	"testing"

	"ccengine/pkg/actor"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

func sampleMetadata() *level.LevelMetadata {
	meta := &level.LevelMetadata{
		Title:         "Test Level",
		LevelNumber:   1,
		TimeLimit:     0,
		ChipsRequired: 0,
	}
	for i := range meta.LayerBottom {
		meta.LayerBottom[i] = tile.Dirt
		meta.LayerTop[i] = tile.Empty
	}
	return meta
}

func newTestLevel(t *testing.T, meta *level.LevelMetadata) *level.Level {
	t.Helper()
	lvl, err := level.NewBaseLevel(meta, level.Config{Ruleset: "lynx"})
	if err != nil {
		t.Fatalf("NewBaseLevel: %v", err)
	}
	if err := InitLevel(lvl); err != nil {
		t.Fatalf("InitLevel: %v", err)
	}
	return lvl
}

func TestIceTurnedDirCorners(t *testing.T) {
	cases := []struct {
		floor tile.ID
		in    tile.Direction
		want  tile.Direction
	}{
		{tile.Ice, tile.DirNorth, tile.DirSouth},
		{tile.Ice, tile.DirEast, tile.DirWest},
		{tile.IceWallNortheast, tile.DirSouth, tile.DirEast},
		{tile.IceWallNortheast, tile.DirWest, tile.DirNorth},
		{tile.IceWallSouthwest, tile.DirNorth, tile.DirWest},
		{tile.IceWallSouthwest, tile.DirEast, tile.DirSouth},
		{tile.IceWallNorthwest, tile.DirSouth, tile.DirWest},
		{tile.IceWallNorthwest, tile.DirEast, tile.DirNorth},
		{tile.IceWallSoutheast, tile.DirNorth, tile.DirEast},
		{tile.IceWallSoutheast, tile.DirWest, tile.DirSouth},
	}
	for _, c := range cases {
		if got := iceTurnedDir(c.floor, c.in); got != c.want {
			t.Errorf("iceTurnedDir(%v, %v) = %v, want %v", c.floor, c.in, got, c.want)
		}
	}
}

func TestSlideForcedDirectionFixedDirections(t *testing.T) {
	s := newState(false)
	cases := map[tile.ID]tile.Direction{
		tile.SlideNorth: tile.DirNorth,
		tile.SlideWest:  tile.DirWest,
		tile.SlideSouth: tile.DirSouth,
		tile.SlideEast:  tile.DirEast,
	}
	for floor, want := range cases {
		if got := slideForcedDirection(s, floor, false); got != want {
			t.Errorf("slideForcedDirection(%v) = %v, want %v", floor, got, want)
		}
	}
}

func TestSlideForcedDirectionRandomAdvances(t *testing.T) {
	s := newState(false)
	s.rffDir = tile.DirNorth
	first := slideForcedDirection(s, tile.SlideRandom, true)
	if first != tile.DirEast {
		t.Fatalf("first random slide = %v, want DirEast (one turn clockwise from North)", first)
	}
	second := slideForcedDirection(s, tile.SlideRandom, true)
	if second != tile.DirSouth {
		t.Fatalf("second random slide = %v, want DirSouth", second)
	}
}

func TestImpedesMoveIntoWalls(t *testing.T) {
	lvl := newTestLevel(t, sampleMetadata())
	s := state(lvl)
	chip := lvl.Actors.Get(actor.ChipIndex)
	if !impedesMoveInto(lvl, tile.Wall, chip, tile.DirNil) {
		t.Error("Wall should impede every actor")
	}
	if impedesMoveInto(lvl, tile.Empty, chip, tile.DirNil) {
		t.Error("Empty floor should never impede")
	}
	_ = s
}

func TestImpedesMoveIntoDiagonalWalls(t *testing.T) {
	bug := &actor.Actor{ID: tile.Bug}
	lvl := newTestLevel(t, sampleMetadata())
	if impedesMoveInto(lvl, tile.WallNorth, bug, tile.DirNorth) {
		t.Error("WallNorth should not impede entry heading north")
	}
	if !impedesMoveInto(lvl, tile.WallNorth, bug, tile.DirSouth) {
		t.Error("WallNorth should impede entry heading south")
	}
}

func TestCanMakeMoveOntoDirtSucceeds(t *testing.T) {
	meta := sampleMetadata()
	lvl := newTestLevel(t, meta)
	s := state(lvl)
	if !canMakeMove(lvl, s, actor.ChipIndex, tile.DirEast, 0) {
		t.Fatal("Chip should be able to walk onto open dirt")
	}
}

func TestCanMakeMoveBlockedByWall(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[1] = tile.Wall
	lvl := newTestLevel(t, meta)
	s := state(lvl)
	if canMakeMove(lvl, s, actor.ChipIndex, tile.DirEast, 0) {
		t.Fatal("Chip should not be able to walk into a wall")
	}
}

func TestEnterTilePicksUpChip(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[1] = tile.ICChip
	meta.ChipsRequired = 1
	lvl := newTestLevel(t, meta)
	s := state(lvl)

	chip := lvl.Actors.Get(actor.ChipIndex)
	chip.Pos = 1
	if enterTile(lvl, s, actor.ChipIndex) != triResSuccess {
		t.Fatal("expected Chip's entry onto the chip tile to succeed")
	}
	if lvl.ChipsLeft != 0 {
		t.Fatalf("ChipsLeft = %d, want 0 after pickup", lvl.ChipsLeft)
	}
	if lvl.Board.TopID(1) == tile.ICChip {
		t.Fatal("chip tile should be consumed after pickup")
	}
}

func TestEnterTileDrownsChipWithoutWaterBoots(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[1] = tile.Water
	lvl := newTestLevel(t, meta)
	s := state(lvl)

	chip := lvl.Actors.Get(actor.ChipIndex)
	chip.Pos = 1
	if enterTile(lvl, s, actor.ChipIndex) != triResDied {
		t.Fatal("expected Chip to drown stepping onto water without boots")
	}
	if chip.IsChip() {
		t.Fatal("Chip's actor slot should no longer read as Chip after drowning")
	}
}

func TestEnterTileWinsOnExit(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[1] = tile.Exit
	lvl := newTestLevel(t, meta)
	s := state(lvl)

	chip := lvl.Actors.Get(actor.ChipIndex)
	chip.Pos = 1
	if enterTile(lvl, s, actor.ChipIndex) != triResSuccess {
		t.Fatal("expected Chip's entry onto the exit to succeed")
	}
	if !s.levelComplete {
		t.Fatal("expected levelComplete after stepping onto the exit")
	}
	if checkForEnding(lvl, s) != level.WinWon {
		t.Fatal("expected WinWon after checkForEnding")
	}
}

func TestActivateTrapReleasesBlock(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[5] = tile.WithDir(tile.Block, tile.DirNorth)
	meta.LayerBottom[5] = tile.Beartrap
	meta.TrapLinks.Add(level.TileConn{From: 10, To: 5})
	lvl := newTestLevel(t, meta)
	s := state(lvl)

	idx := findActor(lvl, 5, true, false)
	if idx == actor.IndexNone {
		t.Fatal("expected a block actor spawned on the trap cell")
	}
	if lvl.Actors.Get(idx).Direction == tile.DirNil {
		t.Fatal("a trapped block should keep its facing, not DirNil, until released")
	}

	activateTrap(lvl, s, 10)
	if lvl.Actors.Get(idx).MoveDecision == tile.DirNil && forcedMove(lvl.Actors.Get(idx)) == tile.DirNil {
		t.Fatal("expected the trapped block to have a move queued after release")
	}
}

func TestFlushToggleWallsFlipsOpenAndClosed(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[3] = tile.SwitchWallOpen
	meta.LayerTop[4] = tile.SwitchWallClosed
	lvl := newTestLevel(t, meta)
	s := state(lvl)

	s.toggleWallsXor = tile.SwitchWallOpen ^ tile.SwitchWallClosed
	flushToggleWalls(lvl, s)
	if lvl.Board.TopID(3) != tile.SwitchWallClosed {
		t.Fatalf("TopID(3) = %v, want SwitchWallClosed", lvl.Board.TopID(3))
	}
	if lvl.Board.TopID(4) != tile.SwitchWallOpen {
		t.Fatalf("TopID(4) = %v, want SwitchWallOpen", lvl.Board.TopID(4))
	}
	if s.toggleWallsXor != 0 {
		t.Fatal("expected toggleWallsXor to disarm itself after flushing")
	}
}

func TestTeleportActorWrapsToOnlyTeleport(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[7] = tile.Teleport
	lvl := newTestLevel(t, meta)
	s := state(lvl)
	_ = s

	chip := lvl.Actors.Get(actor.ChipIndex)
	chip.Pos = 7
	teleportActor(lvl, state(lvl), actor.ChipIndex)
	if chip.Pos != 7 {
		t.Fatalf("Pos = %d, want 7 (the only teleport, wrapping back to itself)", chip.Pos)
	}
}

func TestTickAdvancesCurrentTick(t *testing.T) {
	lvl := newTestLevel(t, sampleMetadata())
	before := lvl.CurrentTick
	Tick(lvl)
	if lvl.CurrentTick != before+1 {
		t.Fatalf("CurrentTick = %d, want %d", lvl.CurrentTick, before+1)
	}
}

func TestTickOutOfTimeEndsInDeath(t *testing.T) {
	meta := sampleMetadata()
	meta.TimeLimit = 1
	lvl := newTestLevel(t, meta)
	lvl.TimeLimit = 1
	lvl.CurrentTick = 1

	Tick(lvl)
	if checkForEnding(lvl, state(lvl)) != level.WinDied {
		t.Fatalf("WinState = %v, want WinDied", lvl.WinState)
	}
}

func TestTickMovesChipOnDirectionalInput(t *testing.T) {
	lvl := newTestLevel(t, sampleMetadata())
	lvl.SetInput(level.GameInput(tile.DirEast))

	start := lvl.Actors.Get(actor.ChipIndex).Pos
	for i := 0; i < 4; i++ {
		Tick(lvl)
	}
	if lvl.Actors.Get(actor.ChipIndex).Pos == start {
		t.Fatal("expected Chip to have moved east after a few ticks of directional input")
	}
}
