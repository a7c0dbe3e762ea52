package level

import (
	"fmt"

	"ccengine/pkg/actor"
	"ccengine/pkg/board"
	"ccengine/pkg/prng"
	"ccengine/pkg/tile"
)

// Level is the live, mutable state a ruleset's tick function advances.
// It is built once by MakeLevel and thereafter mutated only by a tick
// call; external callers may only read it, or write a new GameInput,
// between ticks.
type Level struct {
	Metadata *LevelMetadata
	Ruleset  RulesetID

	Board *board.Board
	Actors *actor.Arena

	PRNG *prng.PRNG

	TrapLinks   ConnList
	ClonerLinks ConnList

	GameInput  GameInput
	CurrentTick uint32
	TimeLimit   uint32
	ChipsLeft   uint16
	StatusFlags uint16
	SFX         uint32

	PlayerKeys  [4]uint8
	PlayerBoots [4]uint8

	InitStepParity int8
	WinState       WinState
	PedanticMode   bool

	// RulesetState is the ruleset-owned state block (MS or Lynx); only
	// the package matching Ruleset ever type-asserts it. See the package
	// doc comment for why this is opaque here instead of a typed union.
	RulesetState any
}

// keyIndex and bootIndex map tile.ID key/boot colours onto PlayerKeys and
// PlayerBoots array slots, in the reference's declaration order.
func keyIndex(id tile.ID) (int, bool) {
	switch id {
	case tile.KeyRed:
		return 0, true
	case tile.KeyBlue:
		return 1, true
	case tile.KeyYellow:
		return 2, true
	case tile.KeyGreen:
		return 3, true
	default:
		return 0, false
	}
}

func bootIndex(id tile.ID) (int, bool) {
	switch id {
	case tile.BootsIce:
		return 0, true
	case tile.BootsSlide:
		return 1, true
	case tile.BootsFire:
		return 2, true
	case tile.BootsWater:
		return 3, true
	default:
		return 0, false
	}
}

// HasKey reports whether the player holds the given key colour.
func (l *Level) HasKey(id tile.ID) bool {
	idx, ok := keyIndex(id)
	return ok && l.PlayerKeys[idx] > 0
}

// HasBoots reports whether the player holds the given boots.
func (l *Level) HasBoots(id tile.ID) bool {
	idx, ok := bootIndex(id)
	return ok && l.PlayerBoots[idx] > 0
}

// GrantKey adds one of the given key colour to player inventory. MS keys
// are consumed one-at-a-time by doors except the green (master) key,
// which is infinite; rulesets enforce that distinction, not Level.
func (l *Level) GrantKey(id tile.ID) {
	if idx, ok := keyIndex(id); ok {
		l.PlayerKeys[idx]++
	}
}

// ConsumeKey removes one of the given key colour, if held.
func (l *Level) ConsumeKey(id tile.ID) {
	if idx, ok := keyIndex(id); ok && l.PlayerKeys[idx] > 0 {
		l.PlayerKeys[idx]--
	}
}

// GrantBoots marks the given boots as held.
func (l *Level) GrantBoots(id tile.ID) {
	if idx, ok := bootIndex(id); ok {
		l.PlayerBoots[idx] = 1
	}
}

// SetInput records the next tick's player input. Writing GameInput is the
// only mutation a caller may perform between ticks.
func (l *Level) SetInput(gi GameInput) { l.GameInput = gi }

// Win reports the level's current tri-state outcome.
func (l *Level) Win() WinState { return l.WinState }

// NewBaseLevel decompresses LevelMetadata into a fresh Board and Arena,
// common ground shared by both rulesets' init_level before they diverge
// on actor discovery and tile reinterpretation. Ruleset packages call
// this first and then fill in RulesetState themselves.
func NewBaseLevel(meta *LevelMetadata, cfg Config) (*Level, error) {
	if meta == nil {
		return nil, fmt.Errorf("level: nil metadata")
	}

	b := board.New()
	for pos := tile.Position(0); pos < tile.Size; pos++ {
		cell, err := b.Cell(pos)
		if err != nil {
			return nil, fmt.Errorf("level: building board: %w", err)
		}
		cell.Bottom = board.MapTile{ID: meta.LayerBottom[pos]}
		cell.Top = board.MapTile{ID: meta.LayerTop[pos]}
	}

	timeLimit := uint32(meta.TimeLimit)
	if cfg.TimeLimitOverride != 0 {
		timeLimit = uint32(cfg.TimeLimitOverride)
	}

	parity := int8(meta.LevelNumber & 1)
	if cfg.StepParityOverride != nil {
		parity = *cfg.StepParityOverride
	}

	return &Level{
		Metadata:       meta,
		Ruleset:        cfg.RulesetID(),
		Board:          b,
		Actors:         actor.NewArena(),
		PRNG:           prng.NewSeeded(uint64(meta.LevelNumber)),
		TrapLinks:      meta.TrapLinks,
		ClonerLinks:    meta.ClonerLinks,
		TimeLimit:      timeLimit,
		ChipsLeft:      meta.ChipsRequired,
		InitStepParity: parity,
		WinState:       WinPlaying,
		PedanticMode:   cfg.PedanticMode,
	}, nil
}
