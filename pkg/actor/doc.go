// Package actor holds the mobile-entity model: the Actor struct itself and
// the Arena that owns a level's fixed-capacity actor array.
//
// The reference implementation references actors by raw pointer, including
// pointer arithmetic for "the last actor in the array". Arena replaces that
// with a fixed-capacity slice plus Index values — int32 offsets, with
// IndexNone as the sentinel for "no actor" — which is both memory-safe and
// trivially comparable/serializable for save-state and determinism-hash
// purposes. Index 0 is always Chip, the player; Arena.SwapToFront enforces
// that invariant after Lynx level-init reorders the array.
package actor
