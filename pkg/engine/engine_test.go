package engine

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
		ChipsRequired: 0,
	}
	for i := range meta.LayerBottom {
		meta.LayerBottom[i] = tile.Dirt
		meta.LayerTop[i] = tile.Empty
	}
	return meta
}

func TestMakeLevelUnknownRulesetErrors(t *testing.T) {
	if _, err := MakeLevel(sampleMetadata(), level.Config{Ruleset: "bogus"}); err == nil {
		t.Fatal("expected an error for an unrecognised ruleset name")
	}
}

func TestMakeLevelMSAndTick(t *testing.T) {
	lvl, err := MakeLevel(sampleMetadata(), level.Config{Ruleset: "ms"})
	if err != nil {
		t.Fatalf("MakeLevel: %v", err)
	}
	if WinState(lvl) != level.WinPlaying {
		t.Fatalf("WinState = %v, want WinPlaying", WinState(lvl))
	}
	if err := Tick(lvl); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if CurrentTick(lvl) != 1 {
		t.Fatalf("CurrentTick = %d, want 1", CurrentTick(lvl))
	}
}

func TestMakeLevelLynxAndTick(t *testing.T) {
	lvl, err := MakeLevel(sampleMetadata(), level.Config{Ruleset: "lynx"})
	if err != nil {
		t.Fatalf("MakeLevel: %v", err)
	}
	if err := Tick(lvl); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if CurrentTick(lvl) != 1 {
		t.Fatalf("CurrentTick = %d, want 1", CurrentTick(lvl))
	}
}

func TestSetInputMovesChip(t *testing.T) {
	lvl, err := MakeLevel(sampleMetadata(), level.Config{Ruleset: "ms"})
	if err != nil {
		t.Fatalf("MakeLevel: %v", err)
	}
	start := ActorAt(lvl, actor.ChipIndex).Pos
	SetInput(lvl, level.GameInput(tile.DirEast))
	for i := 0; i < 4; i++ {
		if err := Tick(lvl); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if ActorAt(lvl, actor.ChipIndex).Pos == start {
		t.Fatal("expected Chip to have moved east after a few ticks of directional input")
	}
}

func TestTileAtReportsLayers(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[5] = tile.Wall
	lvl, err := MakeLevel(meta, level.Config{Ruleset: "ms"})
	if err != nil {
		t.Fatalf("MakeLevel: %v", err)
	}
	top, bottom := TileAt(lvl, 5)
	if top != tile.Wall {
		t.Fatalf("top = %v, want Wall", top)
	}
	if bottom != tile.Dirt {
		t.Fatalf("bottom = %v, want Dirt", bottom)
	}
}

func TestActorsIncludesChipAtSlotZero(t *testing.T) {
	lvl, err := MakeLevel(sampleMetadata(), level.Config{Ruleset: "ms"})
	if err != nil {
		t.Fatalf("MakeLevel: %v", err)
	}
	actors := Actors(lvl)
	if len(actors) == 0 {
		t.Fatal("expected at least one actor slot (Chip)")
	}
	if tile.GetID(actors[0].ID) != tile.Chip {
		t.Fatalf("actors[0].ID = %v, want Chip", actors[0].ID)
	}
}

func TestPlayerInventoryStartsEmpty(t *testing.T) {
	lvl, err := MakeLevel(sampleMetadata(), level.Config{Ruleset: "lynx"})
	if err != nil {
		t.Fatalf("MakeLevel: %v", err)
	}
	inv := PlayerInventory(lvl)
	for _, k := range inv.Keys {
		if k != 0 {
			t.Fatalf("expected no keys at level start, got %v", inv.Keys)
		}
	}
	for _, b := range inv.Boots {
		if b != 0 {
			t.Fatalf("expected no boots at level start, got %v", inv.Boots)
		}
	}
}
