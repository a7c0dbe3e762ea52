package level

import (
	"testing"

	"ccengine/pkg/tile"
)

func sampleMetadata() *LevelMetadata {
	meta := &LevelMetadata{
		Title:         "Test Level",
		LevelNumber:   1,
		TimeLimit:     100,
		ChipsRequired: 1,
	}
	for i := range meta.LayerBottom {
		meta.LayerBottom[i] = tile.Dirt
		meta.LayerTop[i] = tile.Empty
	}
	return meta
}

func TestNewBaseLevelPopulatesBoard(t *testing.T) {
	meta := sampleMetadata()
	meta.LayerTop[0] = tile.Chip

	lvl, err := NewBaseLevel(meta, Config{Ruleset: "ms"})
	if err != nil {
		t.Fatalf("NewBaseLevel: %v", err)
	}
	if lvl.Ruleset != RulesetMS {
		t.Fatalf("Ruleset = %v, want RulesetMS", lvl.Ruleset)
	}
	if lvl.TimeLimit != 100 {
		t.Fatalf("TimeLimit = %d, want 100", lvl.TimeLimit)
	}
	if got := lvl.Board.TopID(0); got != tile.Chip {
		t.Fatalf("TopID(0) = %v, want Chip", got)
	}
	if lvl.WinState != WinPlaying {
		t.Fatalf("WinState = %v, want WinPlaying", lvl.WinState)
	}
}

func TestNewBaseLevelRejectsNilMetadata(t *testing.T) {
	if _, err := NewBaseLevel(nil, Config{}); err == nil {
		t.Fatal("expected error for nil metadata")
	}
}

func TestTimeLimitOverride(t *testing.T) {
	meta := sampleMetadata()
	lvl, err := NewBaseLevel(meta, Config{Ruleset: "ms", TimeLimitOverride: 999})
	if err != nil {
		t.Fatalf("NewBaseLevel: %v", err)
	}
	if lvl.TimeLimit != 999 {
		t.Fatalf("TimeLimit = %d, want override 999", lvl.TimeLimit)
	}
}

func TestKeyInventoryRoundTrip(t *testing.T) {
	lvl := &Level{}
	if lvl.HasKey(tile.KeyBlue) {
		t.Fatal("fresh level should have no keys")
	}
	lvl.GrantKey(tile.KeyBlue)
	if !lvl.HasKey(tile.KeyBlue) {
		t.Fatal("expected KeyBlue after grant")
	}
	lvl.ConsumeKey(tile.KeyBlue)
	if lvl.HasKey(tile.KeyBlue) {
		t.Fatal("expected KeyBlue consumed")
	}
}

func TestBootsInventory(t *testing.T) {
	lvl := &Level{}
	lvl.GrantBoots(tile.BootsFire)
	if !lvl.HasBoots(tile.BootsFire) {
		t.Fatal("expected BootsFire after grant")
	}
	if lvl.HasBoots(tile.BootsIce) {
		t.Fatal("BootsIce should not be granted")
	}
}

func TestGameInputDirectional(t *testing.T) {
	gi := GameInput(tile.DirNorth | tile.DirEast)
	if !gi.IsDirectional() {
		t.Fatal("expected diagonal input to report directional")
	}
	if gi.Direction() != tile.DirNorth|tile.DirEast {
		t.Fatalf("Direction() = %v, want N|E", gi.Direction())
	}
}

func TestGameInputMouseRelativeRoundTrip(t *testing.T) {
	gi := NewMouseRelativeInput(-3, 4)
	if !gi.IsMouseRelative() {
		t.Fatal("expected mouse-relative input")
	}
	dx, dy := gi.MouseOffset()
	if dx != -3 || dy != 4 {
		t.Fatalf("MouseOffset() = (%d, %d), want (-3, 4)", dx, dy)
	}
}

func TestGameInputMouseAbsoluteRoundTrip(t *testing.T) {
	gi := NewMouseAbsoluteInput(500)
	if !gi.IsMouseAbsolute() {
		t.Fatal("expected mouse-absolute input")
	}
	if gi.MousePosition() != 500 {
		t.Fatalf("MousePosition() = %d, want 500", gi.MousePosition())
	}
}

func TestConnListBoundedAt256(t *testing.T) {
	var cl ConnList
	for i := 0; i < 300; i++ {
		cl.Add(TileConn{From: tile.Position(i), To: tile.Position(i + 1)})
	}
	if cl.Len() != maxConnLinks {
		t.Fatalf("Len() = %d, want %d", cl.Len(), maxConnLinks)
	}
}

func TestConnListFind(t *testing.T) {
	var cl ConnList
	cl.Add(TileConn{From: 5, To: 10})
	cl.Add(TileConn{From: 5, To: 20})
	cl.Add(TileConn{From: 6, To: 99})

	got := cl.Find(5)
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Fatalf("Find(5) = %v, want [10 20]", got)
	}
}

func TestConfigRulesetID(t *testing.T) {
	if (Config{Ruleset: "lynx"}).RulesetID() != RulesetLynx {
		t.Fatal("expected lynx to resolve to RulesetLynx")
	}
	if (Config{Ruleset: "bogus"}).RulesetID() != RulesetNone {
		t.Fatal("expected unknown ruleset name to resolve to RulesetNone")
	}
}
