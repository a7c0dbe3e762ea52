// Package level owns the Level type: the live, mutable game state that a
// ruleset's tick function advances one step at a time, plus the immutable
// LevelMetadata a level is built from and the GameInput a caller feeds it.
//
// # Ruleset state as a tagged sum
//
// The reference implementation overlays MsState and LxState in a C union
// inside Level. Go has no safe equivalent, and the level package
// deliberately does not import the ms/lynx ruleset packages (they import
// level, not the reverse, to keep the tick implementations out of the core
// data model). Level instead stores RulesetState as an opaque value
// alongside a RulesetID discriminant; only the ruleset package that set it
// knows the concrete type and performs the type assertion. This is the
// project's one deliberate escape from static typing, and it exists
// because both ruleset packages would otherwise need to depend on each
// other's private state just to share the Level struct.
//
// # Connection lists
//
// TrapLinks and ClonerLinks are flat (from, to) position pairs, bounded at
// 256 entries as in the reference ConnList — a linear scan is the correct
// data structure here because the links name positions, not actor
// identities, so there is no ownership graph to maintain.
package level
