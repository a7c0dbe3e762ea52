// Package prng implements the 31-bit linear congruential generator shared
// by both rulesets.
//
// # Determinism contract
//
// Every draw advances the same recurrence:
//
//	v = (v*1103515245 + 12345) mod 2^31
//
// random2, random3, random4, Permute3 and Permute4 are all built on exactly
// one call to Next per invocation (Permute3/Permute4 draw once and reuse
// different bit ranges of the same value). Solution replay is bit-exact
// only if every draw — and no speculative ones — happens in this order, so
// none of these helpers may be reordered or memoized.
//
// # Seeding
//
// NewSeeded masks a 64-bit seed down to 31 bits. NewFromTime seeds from
// wall-clock time and then discards five warm-up draws, matching the
// reference implementation's bias-removal step; pass the current time
// explicitly (rather than reading it internally) so the resulting sequence
// is still reproducible by a caller that records the seed it used.
package prng
