// Package prng provides the small deterministic generator used for weight
// initialization.
//
// PCG32 is the 32-bit output, 64-bit state member of the PCG family
// (XSH-RR output function). For a fixed seed the sequence is always the same,
// which makes a network's initial weights reproducible across runs.
//
// PCG32 is not safe for concurrent use.
package prng

// multiplier is the 64-bit LCG multiplier of PCG32.
const multiplier = 6364136223846793005

// PCG32 is a permuted congruential generator with a seed-derived increment.
type PCG32 struct {
	state uint64
	inc   uint64
}

// New returns a generator with zero state whose increment is seed.
//
// The first draw of a zero-state generator is always 0.
func New(seed uint64) *PCG32 {
	return &PCG32{inc: seed}
}

// Next advances the state and returns the next 32-bit value.
func (p *PCG32) Next() uint32 {
	old := p.state
	p.state = old*multiplier + (p.inc | 1)
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uint32 is Next. It lets *PCG32 serve as a generic uint32 source.
func (p *PCG32) Uint32() uint32 {
	return p.Next()
}

// Skip draws and discards k values.
func (p *PCG32) Skip(k int) {
	for ; k > 0; k-- {
		p.Next()
	}
}

// Seed returns the increment the generator was created with.
func (p *PCG32) Seed() uint64 {
	return p.inc
}
