package mission

import "math/rand"

// countingSource remembers how many values were drawn so a restored tracker
// can replay its generator to the same position.
type countingSource struct {
	src   rand.Source
	seed  int64
	draws uint64
}

func newCountingSource(seed int64, draws uint64) *countingSource {
	s := &countingSource{src: rand.NewSource(seed), seed: seed} //nolint:gosec
	for s.draws < draws {
		s.Int63()
	}
	return s
}

func (s *countingSource) Int63() int64 {
	s.draws++
	return s.src.Int63()
}

func (s *countingSource) Seed(seed int64) {
	s.src.Seed(seed)
	s.seed = seed
	s.draws = 0
}
