package export

import (
	"encoding/json"
	"os"

	"ccengine/pkg/engine"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// Snapshot is a flat, JSON-friendly dump of a Level at the instant it
// was taken: enough to diff two ticks or feed a test fixture without
// reaching back into the engine.
type Snapshot struct {
	Tick        uint32                 `json:"tick"`
	Ruleset     level.RulesetID        `json:"ruleset"`
	WinState    level.WinState         `json:"winState"`
	TimeLimit   uint32                 `json:"timeLimit"`
	ChipsLeft   uint16                 `json:"chipsLeft"`
	StatusFlags uint16                 `json:"statusFlags"`
	SFX         uint32                 `json:"sfx"`
	Inventory   engine.Inventory       `json:"inventory"`
	Actors      []engine.ActorSnapshot `json:"actors"`
	LayerTop    [tile.Size]tile.ID     `json:"layerTop"`
	LayerBottom [tile.Size]tile.ID     `json:"layerBottom"`
}

// ExportSnapshot builds a Snapshot of lvl's current state.
func ExportSnapshot(lvl *level.Level) Snapshot {
	s := Snapshot{
		Tick:        lvl.CurrentTick,
		Ruleset:     lvl.Ruleset,
		WinState:    lvl.Win(),
		TimeLimit:   lvl.TimeLimit,
		ChipsLeft:   lvl.ChipsLeft,
		StatusFlags: lvl.StatusFlags,
		SFX:         lvl.SFX,
		Inventory:   engine.PlayerInventory(lvl),
		Actors:      engine.Actors(lvl),
	}
	for i := range s.LayerTop {
		top, bottom := engine.TileAt(lvl, tile.Position(i))
		s.LayerTop[i] = top
		s.LayerBottom[i] = bottom
	}
	return s
}

// ExportJSON serializes lvl's current state to indented JSON.
func ExportJSON(lvl *level.Level) ([]byte, error) {
	return json.MarshalIndent(ExportSnapshot(lvl), "", "  ")
}

// ExportJSONCompact serializes lvl's current state to compact JSON.
func ExportJSONCompact(lvl *level.Level) ([]byte, error) {
	return json.Marshal(ExportSnapshot(lvl))
}

// SaveJSONToFile writes lvl's current state to path as indented JSON.
func SaveJSONToFile(lvl *level.Level, path string) error {
	data, err := ExportJSON(lvl)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
