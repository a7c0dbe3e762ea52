// Package lynx implements the "Lynx" ruleset tick function: the
// behavior of the Lynx.exe reference engine, where actors are tracked
// purely through the actor array (board terrain is never overwritten by
// a sprite) and walking order runs last-actor-to-first instead of MS's
// first-to-last.
//
// A Level built by InitLevel stores its private bookkeeping — the
// pedantic-mode flags, the random-force-floor direction, the pending
// toggle-wall flip, Chip's "about to collide" prediction — in
// Level.RulesetState as a *State. As in the ms package, nothing here is
// exported to other packages; the tagged discriminant (Level.Ruleset) is
// the only thing that makes the type assertion in state() safe.
//
// Two functions the reference leaves unwritten (Actor_enter_tile's
// post-move effect table, and clone-machine activation) are completed
// here from scratch, grounded on the sibling ms package's equivalent
// tables and on Actor_teleport/Level_activate_trap's button-wiring
// idiom; see the grounding ledger for the reasoning.
package lynx
