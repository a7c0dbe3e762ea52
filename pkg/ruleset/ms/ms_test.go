package ms

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
	lvl, err := level.NewBaseLevel(meta, level.Config{Ruleset: "ms"})
	if err != nil {
		t.Fatalf("NewBaseLevel: %v", err)
	}
	if err := InitLevel(lvl); err != nil {
		t.Fatalf("InitLevel: %v", err)
	}
	return lvl
}

func TestIceWallTurnDirCorners(t *testing.T) {
	cases := []struct {
		floor tile.ID
		in    tile.Direction
		want  tile.Direction
	}{
		{tile.IceWallNortheast, tile.DirSouth, tile.DirEast},
		{tile.IceWallNortheast, tile.DirWest, tile.DirNorth},
		{tile.IceWallNortheast, tile.DirNorth, tile.DirNorth},
		{tile.IceWallSouthwest, tile.DirNorth, tile.DirWest},
		{tile.IceWallSouthwest, tile.DirEast, tile.DirSouth},
		{tile.IceWallNorthwest, tile.DirSouth, tile.DirWest},
		{tile.IceWallNorthwest, tile.DirEast, tile.DirNorth},
		{tile.IceWallSoutheast, tile.DirNorth, tile.DirEast},
		{tile.IceWallSoutheast, tile.DirWest, tile.DirSouth},
	}
	for _, c := range cases {
		if got := iceWallTurnDir(c.floor, c.in); got != c.want {
			t.Errorf("iceWallTurnDir(%v, %v) = %v, want %v", c.floor, c.in, got, c.want)
		}
	}
}

func TestSlideDirFixedDirections(t *testing.T) {
	lvl := newTestLevel(t, sampleMetadata())
	cases := map[tile.ID]tile.Direction{
		tile.SlideNorth: tile.DirNorth,
		tile.SlideWest:  tile.DirWest,
		tile.SlideSouth: tile.DirSouth,
		tile.SlideEast:  tile.DirEast,
	}
	for floor, want := range cases {
		if got := slideDir(lvl, floor); got != want {
			t.Errorf("slideDir(%v) = %v, want %v", floor, got, want)
		}
	}
}

func TestImpedesMoveIntoWalls(t *testing.T) {
	chip := &actor.Actor{ID: tile.Chip}
	if !impedesMoveInto(tile.Wall, chip, tile.DirNil) {
		t.Error("Wall should impede every actor")
	}
	if impedesMoveInto(tile.Empty, chip, tile.DirNil) {
		t.Error("Empty floor should never impede")
	}
	if !impedesMoveInto(tile.Gravel, chip, tile.DirNil) {
		t.Error("Gravel should impede Chip")
	}
	block := &actor.Actor{ID: tile.BlockStatic}
	if impedesMoveInto(tile.Gravel, block, tile.DirNil) {
		t.Error("Gravel should not impede a block")
	}
}

func TestImpedesMoveIntoDiagonalWalls(t *testing.T) {
	bug := &actor.Actor{ID: tile.Bug}
	if impedesMoveInto(tile.WallNorth, bug, tile.DirNorth) {
		t.Error("WallNorth should not impede entry heading north")
	}
	if !impedesMoveInto(tile.WallNorth, bug, tile.DirSouth) {
		t.Error("WallNorth should impede entry heading south")
	}
}

func TestCanMakeMoveOntoDirtSucceeds(t *testing.T) {
	meta := sampleMetadata()
	lvl := newTestLevel(t, meta)
	if !canMakeMove(lvl, actor.ChipIndex, tile.DirEast, 0) {
		t.Fatal("Chip should be able to walk onto open dirt")
	}
}

func TestCanMakeMoveBlockedByWall(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[1] = tile.Wall
	lvl := newTestLevel(t, meta)
	if canMakeMove(lvl, actor.ChipIndex, tile.DirEast, 0) {
		t.Fatal("Chip should not be able to walk into a wall")
	}
}

func TestChipEnterTilePicksUpChip(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[1] = tile.ICChip
	meta.ChipsRequired = 1
	lvl := newTestLevel(t, meta)

	if !advanceMovement(lvl, actor.ChipIndex, tile.DirEast) {
		t.Fatal("expected Chip's move onto the chip tile to succeed")
	}
	if lvl.ChipsLeft != 0 {
		t.Fatalf("ChipsLeft = %d, want 0 after pickup", lvl.ChipsLeft)
	}
	if lvl.Board.TopID(1) == tile.ICChip {
		t.Fatal("chip tile should be consumed after pickup")
	}
}

func TestChipDrownsWithoutWaterBoots(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[1] = tile.Water
	lvl := newTestLevel(t, meta)

	advanceMovement(lvl, actor.ChipIndex, tile.DirEast)
	s := state(lvl)
	if s.chipStatus != level.ChipDrowned {
		t.Fatalf("chipStatus = %v, want ChipDrowned", s.chipStatus)
	}
}

func TestChipWinsOnExit(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerBottom[1] = tile.Exit
	lvl := newTestLevel(t, meta)

	advanceMovement(lvl, actor.ChipIndex, tile.DirEast)
	if !state(lvl).levelComplete {
		t.Fatal("expected levelComplete after stepping onto the exit")
	}
	if checkForEnding(lvl) != level.WinWon {
		t.Fatal("expected WinWon after checkForEnding")
	}
}

func TestSpringTrapReleasesBlock(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[5] = tile.BlockStatic
	meta.LayerBottom[5] = tile.Beartrap
	meta.TrapLinks.Add(level.TileConn{From: 10, To: 5})
	lvl := newTestLevel(t, meta)

	springTrap(lvl, 10)
	idx := blockAt(lvl, 5)
	if lvl.Actors.Get(idx).State&csReleased == 0 {
		t.Fatal("expected block to be released by springTrap")
	}
}

func TestToggleWallsFlipsOpenAndClosed(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[3] = tile.SwitchWallOpen
	meta.LayerTop[4] = tile.SwitchWallClosed
	lvl := newTestLevel(t, meta)

	toggleWalls(lvl)
	if lvl.Board.TopID(3) != tile.SwitchWallClosed {
		t.Fatalf("TopID(3) = %v, want SwitchWallClosed", lvl.Board.TopID(3))
	}
	if lvl.Board.TopID(4) != tile.SwitchWallOpen {
		t.Fatalf("TopID(4) = %v, want SwitchWallOpen", lvl.Board.TopID(4))
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
	if state(lvl).chipStatus != level.ChipOutOfTime {
		t.Fatalf("chipStatus = %v, want ChipOutOfTime", state(lvl).chipStatus)
	}
}
