// Package ms implements the "MS" ruleset tick function: the historical
// behavior of the MS-DOS reference engine, slip-list accounting quirks,
// deferred button presses and all.
//
// A Level built by InitLevel stores its private bookkeeping — the slip
// list, the block-lookup cache, Chip's mouse goal — in Level.RulesetState
// as a *State. InitLevel installs that State and Tick recovers it from the
// *level.Level it is given; none of State's fields are exported to other
// packages because the tagged-sum discriminant (Level.Ruleset) is the only
// thing that makes a bare type assertion safe.
package ms
