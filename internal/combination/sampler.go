package combination

import "math/rand/v2"

// Source is the read side of a trait catalog.
type Source interface {
	Categories() []string
	Count(category string) int
	Trait(category string, i int) string
}

// Sampler draws one trait per category, uniformly and independently.
type Sampler struct {
	source     Source
	categories []string
	rng        *rand.Rand
}

// NewSampler creates a sampler over source using rng.
func NewSampler(source Source, rng *rand.Rand) *Sampler {
	return &Sampler{
		source:     source,
		categories: source.Categories(),
		rng:        rng,
	}
}

// NewRand returns a PCG generator for seed. Equal seeds replay equal draws.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Draw samples a combination. If seen already holds it, Draw returns ok == false and
// leaves seen untouched; otherwise the combination is added to seen and returned.
// Draw never checks whether seen already covers every possible combination.
func (s *Sampler) Draw(seen *Set) (c Combination, ok bool) {
	c = make(Combination, len(s.categories))
	for i, category := range s.categories {
		n := s.source.Count(category)
		c[i] = Pair{
			Category: category,
			Trait:    s.source.Trait(category, s.rng.IntN(n)),
		}
	}

	if !seen.Add(c) {
		return nil, false
	}
	return c, true
}
