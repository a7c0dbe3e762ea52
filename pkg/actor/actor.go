package actor

import "ccengine/pkg/tile"

// MaxCreatures bounds the actor arena: 2*Width*Height, matching the
// reference's MAX_CREATURES. A level can never legitimately need more
// actors than twice its cell count, since each cell holds at most one live
// actor at a time and clone machines cannot outrun that.
const MaxCreatures = 2 * tile.Width * tile.Height

// Index names a slot in an Arena's backing array. IndexNone marks "no
// actor" (teleport search failure, a trap/cloner link with nothing to
// act on, and so on).
type Index int32

// IndexNone is the sentinel empty index.
const IndexNone Index = -1

// ChipIndex is the array slot the player always occupies.
const ChipIndex Index = 0

// Actor is one mobile entity: the player, a block, or a monster.
type Actor struct {
	Pos            tile.Position
	ID             tile.ID
	Direction      tile.Direction
	MoveCooldown   int8 // counts 0..8; the actor moves when this reaches 0
	AnimationFrame int8
	Hidden         bool
	MoveDecision   tile.Direction
	State          uint16 // ruleset-specific state bits (see ms/lynx packages)
}

// IsChip reports whether a is the player.
func (a *Actor) IsChip() bool { return tile.GetID(a.ID) == tile.Chip || tile.GetID(a.ID) == tile.SwimmingChip || tile.GetID(a.ID) == tile.PushingChip }

// IsBlock reports whether a is a pushable block (static or mobile variant).
func (a *Actor) IsBlock() bool { return a.ID == tile.BlockStatic || tile.GetID(a.ID) == tile.Block }

// Arena owns a level's contiguous actor array. Slots are never reclaimed
// within a tick — removing or hiding an actor just marks Hidden, matching
// the reference's "index stability across a tick" invariant that the slip
// list and block list rely on.
type Arena struct {
	actors []Actor
	count  int
}

// NewArena creates an empty arena with capacity for MaxCreatures actors.
func NewArena() *Arena {
	return &Arena{actors: make([]Actor, 0, MaxCreatures)}
}

// Len returns the number of actor slots currently allocated (including
// hidden ones).
func (a *Arena) Len() int { return len(a.actors) }

// Get returns a pointer to the actor at idx. The caller must ensure idx is
// in range; this is the arena's hot-path accessor and does not itself
// bounds-check so a single out-of-range index doesn't mask a logic bug as a
// silent no-op.
func (a *Arena) Get(idx Index) *Actor { return &a.actors[idx] }

// Spawn appends a new actor and returns its index. Returns IndexNone if the
// arena is already at MaxCreatures capacity.
func (a *Arena) Spawn(act Actor) Index {
	if len(a.actors) >= MaxCreatures {
		return IndexNone
	}
	a.actors = append(a.actors, act)
	return Index(len(a.actors) - 1)
}

// All returns every allocated slot's index in array order (first-to-last,
// the MS iteration order). Lynx iterates the same slice in reverse.
func (a *Arena) All() []Index {
	idxs := make([]Index, len(a.actors))
	for i := range idxs {
		idxs[i] = Index(i)
	}
	return idxs
}

// SwapToFront moves the actor at idx into slot 0, swapping whatever
// occupied slot 0 into idx. Used by Lynx level-init, which scans the map in
// reading order and only discovers Chip partway through.
func (a *Arena) SwapToFront(idx Index) {
	if idx == ChipIndex {
		return
	}
	a.actors[ChipIndex], a.actors[idx] = a.actors[idx], a.actors[ChipIndex]
}

// Chip returns the player actor (always slot 0).
func (a *Arena) Chip() *Actor { return &a.actors[ChipIndex] }
