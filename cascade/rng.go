package cascade

import "math/rand"

// defaultSeed is the fixed seed substituted when callers pass seed==0.
// Arbitrary but stable, to keep default runs reproducible.
const defaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultSeed; otherwise the provided seed verbatim.
func NewRand(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultSeed
	}
	return rand.New(rand.NewSource(s))
}

// mix64 applies a SplitMix64-style finalizer for strong bit diffusion,
// so that adjacent stream ids yield uncorrelated seeds.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// DeriveRand creates an independent deterministic stream from base and a
// stream identifier, for per-worker RNGs in parallel sampling. base.Int63()
// is consumed once so repeated derivations with the same stream id still
// diverge. A nil base falls back to the default seed.
func DeriveRand(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(int64(mix64(uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)))))
}
