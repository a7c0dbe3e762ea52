package prng

// mask31 keeps the generator's state within the 31-bit range the reference
// implementation uses.
const mask31 = 0x7FFFFFFF

// PRNG is the deterministic 31-bit LCG used by both rulesets for monster AI
// and random slide floors. The zero value is not usable; construct one with
// NewSeeded or NewFromTime.
type PRNG struct {
	initialSeed uint64
	value       uint64
}

// NewSeeded creates a PRNG from an explicit 64-bit seed, masked to 31 bits.
func NewSeeded(seed uint64) *PRNG {
	v := seed & mask31
	return &PRNG{initialSeed: v, value: v}
}

// NewFromTime creates a PRNG seeded from an externally supplied "now" value
// (typically the wall-clock time in whatever unit the caller prefers),
// followed by five warm-up draws to remove the low-entropy bias a raw
// timestamp seed would otherwise carry into early draws.
func NewFromTime(now uint64) *PRNG {
	p := NewSeeded(now)
	for i := 0; i < 5; i++ {
		p.Next()
	}
	return p
}

// InitialSeed returns the seed this PRNG was constructed with, before any
// warm-up draws.
func (p *PRNG) InitialSeed() uint64 { return p.initialSeed }

// Next advances the generator and returns the new 31-bit state.
func (p *PRNG) Next() uint64 {
	p.value = (p.value*1103515245 + 12345) & mask31
	return p.value
}

// Random2 returns bit 30, the top bit, of the next 31-bit draw: a value in
// [0,1].
func (p *PRNG) Random2() uint8 {
	return uint8(p.Next() >> 30)
}

// crushTo3 maps a 30-bit value uniformly onto {0,1,2} via the same
// floating-point scaling the reference implementation uses.
func crushTo3(val uint64) uint8 {
	return uint8((3.0 * float64(val&0x3FFFFFFF)) / float64(0x40000000))
}

// crushTo3DifferentBits is crushTo3 but reads the low 28 bits instead of 30,
// so Permute4 can use non-overlapping bit ranges for its three swaps.
func crushTo3DifferentBits(val uint64) uint8 {
	return uint8((3.0 * float64(val&0x0FFFFFFF)) / float64(0x10000000))
}

// Random3 returns the next draw crushed to a value in [0,2], uniformly.
func (p *PRNG) Random3() uint8 {
	return crushTo3(p.Next())
}

// Random4 returns bits [30:29] of the next draw: a value in [0,3].
func (p *PRNG) Random4() uint8 {
	return uint8(p.Next() >> 29)
}

// Permute3 shuffles arr in place using one draw: index 1 is swapped with
// index 0 or 1, then index 2 is swapped with 0, 1, or 2. This yields all 6
// permutations of a 3-element array, weighted by the two-draw construction
// rather than uniformly.
func Permute3[T any](p *PRNG, arr *[3]T) {
	v := p.Next()
	swapIdx := uint8(v >> 30)
	arr[1], arr[swapIdx] = arr[swapIdx], arr[1]
	swapIdx = crushTo3(v)
	arr[2], arr[swapIdx] = arr[swapIdx], arr[2]
}

// Permute4 shuffles arr in place using one draw, reading disjoint bit
// ranges for each of its three swaps so that permute3 and permute4 never
// reuse bits in a way that would correlate their outputs: index 1 swaps
// with 0 or 1; index 2 swaps with 0, 1, or 2 (using bits [27:0] rather than
// [29:0]); index 3 swaps with 0..3 using bits [29:28].
func Permute4[T any](p *PRNG, arr *[4]T) {
	v := p.Next()
	swapIdx := uint8(v >> 30)
	arr[1], arr[swapIdx] = arr[swapIdx], arr[1]
	swapIdx = crushTo3DifferentBits(v)
	arr[2], arr[swapIdx] = arr[swapIdx], arr[2]
	swapIdx = uint8(v>>28) & 3
	arr[3], arr[swapIdx] = arr[swapIdx], arr[3]
}
