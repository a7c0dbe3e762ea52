// Package ccl parses the CCL level-archive format: a little-endian
// container of RLE-compressed two-layer tile fields plus a handful of
// tagged metadata chunks, decoded into level.LevelMetadata values the
// engine can build a Level from.
//
// Two historical quirks in the format are preserved rather than fixed,
// because solution replay for existing archives depends on the byte
// layout this package reproduces exactly: the traps/cloners chunk
// readers compute their record count from the chunk *type* rather than
// its length, and the CCL tile-ID table's actor-direction macros have
// south and east transposed relative to the direction index the rest of
// the engine uses. Both are called out where they're implemented.
package ccl
