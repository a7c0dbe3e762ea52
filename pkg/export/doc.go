// Package export renders a Level's current state to formats outside
// callers can inspect without linking the engine: a JSON snapshot for
// tooling and test fixtures, an SVG diagram for eyeballing a tick, and
// a Tiled-compatible TMJ map for loading the board into a generic tile
// editor.
//
// Every exporter reads a *level.Level; none of them mutate it.
package export
