package bank

import "math/rand"

// Sample draws count questions uniformly at random, without replacement,
// from the whole bank. The shuffled order becomes the presentation order.
// If the bank holds fewer than count questions the whole bank is returned.
func Sample(qs []Question, count int) []Question {
	return draw(qs, count)
}

// SampleModule draws like Sample but restricts the pool to one module.
// A pool smaller than count yields the entire pool.
func SampleModule(qs []Question, moduleID, count int) []Question {
	pool := make([]Question, 0, len(qs))
	for _, q := range qs {
		if q.ModuleID == moduleID {
			pool = append(pool, q)
		}
	}
	return draw(pool, count)
}

func draw(pool []Question, count int) []Question {
	if count > len(pool) {
		count = len(pool)
	}
	if count < 0 {
		count = 0
	}
	out := make([]Question, 0, count)
	for _, i := range rand.Perm(len(pool))[:count] {
		out = append(out, pool[i])
	}
	return out
}
