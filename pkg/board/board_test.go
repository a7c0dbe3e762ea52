package board

import (
	"testing"

	"ccengine/pkg/tile"
)

func TestNewBoardIsAllEmpty(t *testing.T) {
	b := New()
	b.Each(func(pos tile.Position, cell *MapCell) {
		if cell.Top.ID != tile.Empty || cell.Bottom.ID != tile.Empty {
			t.Fatalf("cell %d not empty: %+v", pos, cell)
		}
	})
}

func TestCellOutOfRange(t *testing.T) {
	b := New()
	if _, err := b.Cell(-1); err == nil {
		t.Error("expected error for negative position")
	}
	if _, err := b.Cell(tile.Size); err == nil {
		t.Error("expected error for position past the grid")
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	cell := &MapCell{Top: MapTile{ID: tile.Dirt}, Bottom: MapTile{ID: tile.Empty}}
	cell.Push(MapTile{ID: tile.Chip})

	if cell.Top.ID != tile.Chip {
		t.Fatalf("after Push, Top = %v, want Chip", cell.Top.ID)
	}
	if cell.Bottom.ID != tile.Dirt {
		t.Fatalf("after Push, Bottom = %v, want Dirt", cell.Bottom.ID)
	}

	popped := cell.Pop()
	if popped.ID != tile.Chip {
		t.Fatalf("Pop() = %v, want Chip", popped.ID)
	}
	if cell.Top.ID != tile.Dirt {
		t.Fatalf("after Pop, Top = %v, want Dirt", cell.Top.ID)
	}
	if cell.Bottom.ID != tile.Empty {
		t.Fatalf("after Pop, Bottom = %v, want Empty", cell.Bottom.ID)
	}
}

func TestIsBuried(t *testing.T) {
	buried := MapCell{Top: MapTile{ID: tile.Chip}, Bottom: MapTile{ID: tile.Dirt}}
	if !buried.IsBuried() {
		t.Error("expected actor-over-terrain-over-dirt to be reported buried")
	}

	ok := MapCell{Top: MapTile{ID: tile.Dirt}, Bottom: MapTile{ID: tile.Empty}}
	if ok.IsBuried() {
		t.Error("terrain over empty should not be buried")
	}
}

func TestStateBits(t *testing.T) {
	mt := MapTile{ID: tile.Beartrap}
	mt.SetState(MSButtonDownBit | MSMarkerBit)
	if !mt.HasState(MSButtonDownBit) {
		t.Error("expected MSButtonDownBit set")
	}
	mt.ClearState(MSButtonDownBit)
	if mt.HasState(MSButtonDownBit) {
		t.Error("expected MSButtonDownBit cleared")
	}
	if !mt.HasState(MSMarkerBit) {
		t.Error("expected MSMarkerBit to remain set")
	}
}
