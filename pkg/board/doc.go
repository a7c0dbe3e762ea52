// Package board holds the 32x32 two-layer tile grid shared by both
// rulesets: MapCell (a stacked top/bottom MapTile pair) plus the
// ruleset-specific per-tile state bits each MapTile carries.
//
// The grid itself is a flat array indexed by tile.Position, following the
// same bounds-checked get/set shape as a conventional 2D tile-layer editor
// — out-of-range access is a reported error rather than a panic, since a
// malformed level (or an actor pushed off an ill-formed map) must not crash
// the tick loop (see the runtime-anomaly handling in the engine package).
package board
