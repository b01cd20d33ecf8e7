package quiz

import (
	"math/rand"
	"sort"
)

// DistractorCount is how many wrong options accompany the correct one.
const DistractorCount = 3

// Shuffle permutes xs in place with Fisher–Yates.
func Shuffle(rng *rand.Rand, xs []string) {
	for i := len(xs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// SampleDistinct draws up to n distinct values from candidates uniformly
// without replacement. Values equal to any of exclude are never drawn.
func SampleDistinct(rng *rand.Rand, candidates []string, n int, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	pool := make([]string, 0, len(candidates))
	seen := map[string]bool{}
	for _, c := range candidates {
		if skip[c] || seen[c] {
			continue
		}
		seen[c] = true
		pool = append(pool, c)
	}
	// stable input order keeps seeded draws reproducible
	sort.Strings(pool)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// BuildOptions combines the correct answer with up to DistractorCount
// distractors and shuffles the result.
func BuildOptions(rng *rand.Rand, correct string, candidates []string) []string {
	opts := append(SampleDistinct(rng, candidates, DistractorCount, correct), correct)
	Shuffle(rng, opts)
	return opts
}
