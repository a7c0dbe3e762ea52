// Package contracts defines the core interfaces of the tick engine.
// This is a design document showing expected structure, not executable
// code — it does not import the real pkg/level, pkg/actor, or pkg/tile
// packages, so it can be read on its own as the shape those packages
// settle into.
package contracts

// RulesetID names which ruleset a Level runs under.
type RulesetID uint8

const (
	RulesetNone RulesetID = iota
	RulesetLynx
	RulesetMS
)

// WinState is a Level's outcome as of its most recent Tick.
type WinState int8

const (
	WinDied    WinState = -1
	WinPlaying WinState = 0
	WinWon     WinState = 1
)

// Position is a flattened tile-grid index.
type Position int16

// Direction is a single compass heading, or DirNil for none.
type Direction uint8

// TileID identifies one tile kind on the board.
type TileID uint8

// GameInput is the player's intended move for the next Tick: a
// Direction, or a packed mouse-relative offset.
type GameInput uint16

// Config selects a Ruleset and its optional overrides.
type Config struct {
	Ruleset           string
	PedanticMode      bool
	TimeLimitOverride uint16
	StepParityOverride *int8
}

// LevelMetadata is parsed, static level data: everything a CCL/C2M
// record carries before any actor is wired in.
type LevelMetadata struct {
	Title         string
	LevelNumber   uint16
	TimeLimit     uint16
	ChipsRequired uint16
	LayerTop      []TileID
	LayerBottom   []TileID
}

// Level is the live, mutable play state a Ruleset advances one Tick
// at a time.
type Level struct {
	Ruleset     RulesetID
	CurrentTick uint32
	TimeLimit   uint32
	ChipsLeft   uint16
	WinState    WinState
	StatusFlags uint16
	GameInput   GameInput
}

// ActorIndex names a slot in an Arena's backing array. Index 0 always
// names Chip.
type ActorIndex int32

// Actor is one creature, block, or the player.
type Actor struct {
	Pos       Position
	ID        TileID
	Direction Direction
	Hidden    bool
}

// Ruleset is the contract both MS and Lynx implementations satisfy.
// Determinism is the load-bearing property: same Level + same input
// sequence + same PRNG seed must produce bit-identical actor
// trajectories and win state across runs, platforms, and Go versions.
type Ruleset interface {
	// InitLevel discovers actors from the parsed board, validates tile
	// placement, and leaves the Level ready for Tick. Malformed input
	// sets StatusInvalid/StatusBadTiles on the Level rather than
	// returning an error, except where the board itself cannot be
	// interpreted at all (e.g. more than one Chip where the ruleset
	// requires exactly one and cannot resolve the ambiguity).
	InitLevel(lvl *Level) error

	// Tick advances the level by exactly one game tick: decrement
	// timers, move every actor whose cooldown reached zero in a fixed
	// ruleset-specific order, resolve collisions and tile effects, and
	// update WinState. Never partially applies a tick; never panics on
	// malformed input discovered post-init (Validator.CheckTick surfaces
	// those anomalies separately).
	Tick(lvl *Level)
}

// Engine is the public surface a caller drives. Every method is a
// thin dispatch onto Level and whichever Ruleset owns it; Engine owns
// no state of its own.
type Engine interface {
	// MakeLevel builds a ready-to-tick Level from parsed metadata under
	// cfg. Returns an error only for a config naming no known ruleset,
	// or a board that cannot be represented at all.
	MakeLevel(meta *LevelMetadata, cfg Config) (*Level, error)

	// SetInput records the player's intended move for the next Tick.
	SetInput(lvl *Level, gi GameInput)

	// Tick advances lvl by one game tick.
	Tick(lvl *Level) error

	// WinState reports whether lvl is still playing, has been won, or
	// Chip has died.
	WinState(lvl *Level) WinState
}

// ActorView is one actor's externally visible state at snapshot time.
type ActorView struct {
	Pos       Position
	ID        TileID
	Direction Direction
	Hidden    bool
}

// Snapshot is the read-only view a caller gets back from Engine: a
// copy, never a live reference into engine-owned memory, so a caller
// cannot mutate state between ticks by holding onto one.
type Snapshot interface {
	TileAt(lvl *Level, pos Position) (top, bottom TileID)
	Actors(lvl *Level) []ActorView
	ChipsLeft(lvl *Level) uint16
}

// Arena is the contract the actor package satisfies: a fixed-capacity,
// insertion-ordered store. Index 0 is always Chip; iteration order
// over the remaining slots is itself part of ruleset determinism (the
// move phase visits actors in this order), so Arena must never reorder
// entries except through the ruleset's own explicit calls.
type Arena interface {
	Len() int
	Get(idx ActorIndex) *Actor
	Spawn(a Actor) ActorIndex
	All() []ActorIndex
	SwapToFront(idx ActorIndex)
}

// Report accumulates anomalies found by a Validator.
type Report struct {
	Passed   bool
	Warnings []string
	Errors   []string
}

// Validator observes a Level without owning it. Neither method may
// mutate lvl or influence a Ruleset's Tick; a caller may skip calling
// either without changing engine behavior.
type Validator interface {
	CheckInit(lvl *Level) *Report
	CheckTick(lvl *Level) *Report
}

// Exporter renders a Level to an external format without mutating it.
// SVGOptions and TMJMap are left opaque here; see pkg/export for their
// concrete shapes.
type Exporter interface {
	ExportJSON(lvl *Level) ([]byte, error)
	ExportSVG(lvl *Level, opts SVGOptions) ([]byte, error)
	ExportTMJ(lvl *Level, compress bool) (*TMJMap, error)
}

type SVGOptions struct {
	CellSize int
	Title    string
}

type TMJMap struct {
	Width, Height int
}

// Notes on Contract Design:
//
// 1. Ruleset implementations take no context.Context: a tick is a pure,
//    CPU-bound state transition with no I/O and nothing to cancel.
// 2. Determinism is enforced by construction, not by a runtime check:
//    every random decision goes through the Level's own PRNG, and
//    ruleset packages never read time.Now, os.Getenv, or any other
//    ambient input.
// 3. Engine is the only surface most callers need; Ruleset is what
//    pkg/ruleset/ms and pkg/ruleset/lynx each implement, and pkg/engine
//    is the only package that switches on RulesetID to choose one.
// 4. Validator and Exporter are always optional observers: removing
//    every call to either leaves tick-by-tick behavior unchanged.
