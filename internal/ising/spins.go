package ising

import "math/rand"

// Spins is a dense spin configuration indexed by graph slot. Every entry is
// exactly +1 or -1.
type Spins []int8

func NewSpins(n int) Spins {
	s := make(Spins, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

// Reset overwrites every slot with an independent fair draw from {-1,+1}.
func (s Spins) Reset(rng *rand.Rand) {
	for i := range s {
		if rng.Int63()&1 == 0 {
			s[i] = -1
		} else {
			s[i] = 1
		}
	}
}

// Flip negates the spin at slot.
func (s Spins) Flip(slot int) { s[slot] = -s[slot] }

// Get returns the spin at slot.
func (s Spins) Get(slot int) int8 { return s[slot] }

// Magnetization returns the signed sum of all spins.
func (s Spins) Magnetization() float64 {
	sum := 0
	for _, v := range s {
		sum += int(v)
	}
	return float64(sum)
}

// MeanSpin returns the magnetization divided by the number of spins.
func (s Spins) MeanSpin() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Magnetization() / float64(len(s))
}

func (s Spins) Clone() Spins {
	c := make(Spins, len(s))
	copy(c, s)
	return c
}
