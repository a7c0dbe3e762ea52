// Package tws parses the TWS solution-archive format: a little-endian
// container of per-level replay records, each holding a PRNG seed and a
// bit-packed input stream that a ruleset's Tick can play back to
// reproduce a recorded solution tick for tick.
//
// The input stream is encoded as a sequence of variable-length records,
// each naming a direction and a number of nil ticks to hold before it.
// Four record shapes share the stream, discriminated by the low bits of
// their first byte; decodeInputStream implements all four directly off
// format-tws.c rather than via any higher-level abstraction, since the
// bit layouts don't generalize cleanly.
package tws
