package actor

import (
	"testing"

	"ccengine/pkg/tile"
)

func TestSpawnAssignsStableIndices(t *testing.T) {
	a := NewArena()
	chip := a.Spawn(Actor{ID: tile.Chip})
	block := a.Spawn(Actor{ID: tile.BlockStatic})

	if chip != ChipIndex {
		t.Fatalf("first spawn = %d, want ChipIndex", chip)
	}
	if block != 1 {
		t.Fatalf("second spawn = %d, want 1", block)
	}
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
}

func TestSpawnRespectsCapacity(t *testing.T) {
	a := NewArena()
	for i := 0; i < MaxCreatures; i++ {
		if idx := a.Spawn(Actor{ID: tile.Bug}); idx == IndexNone {
			t.Fatalf("spawn %d unexpectedly failed", i)
		}
	}
	if idx := a.Spawn(Actor{ID: tile.Bug}); idx != IndexNone {
		t.Fatalf("spawn past capacity = %d, want IndexNone", idx)
	}
}

func TestSwapToFrontMaintainsChipInvariant(t *testing.T) {
	a := NewArena()
	a.Spawn(Actor{ID: tile.Tank})
	chipIdx := a.Spawn(Actor{ID: tile.Chip})

	a.SwapToFront(chipIdx)

	if !a.Chip().IsChip() {
		t.Fatal("slot 0 is not Chip after SwapToFront")
	}
	if got := tile.GetID(a.Get(1).ID); got != tile.Tank {
		t.Fatalf("displaced actor at slot 1 = %v, want Tank", got)
	}
}

func TestIsChipAndIsBlock(t *testing.T) {
	chip := Actor{ID: tile.WithDir(tile.Chip, tile.DirNorth)}
	if !chip.IsChip() {
		t.Error("directed Chip tile should report IsChip")
	}
	block := Actor{ID: tile.BlockStatic}
	if !block.IsBlock() {
		t.Error("BlockStatic should report IsBlock")
	}
	tank := Actor{ID: tile.WithDir(tile.Tank, tile.DirEast)}
	if tank.IsChip() || tank.IsBlock() {
		t.Error("Tank should be neither Chip nor Block")
	}
}
