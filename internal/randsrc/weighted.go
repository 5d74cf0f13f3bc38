package randsrc

import "math/rand"

// Weighted pairs a candidate value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Pick draws one value proportionally to the configured weights. Non-positive
// weights are skipped. An empty or all-zero table returns the zero value.
func Pick[T any](r *rand.Rand, items []Weighted[T]) T {
	var zero T
	total := 0.0
	for _, item := range items {
		if item.Weight > 0 {
			total += item.Weight
		}
	}
	if total <= 0 {
		return zero
	}
	target := r.Float64() * total
	for _, item := range items {
		if item.Weight <= 0 {
			continue
		}
		target -= item.Weight
		if target < 0 {
			return item.Value
		}
	}
	return items[len(items)-1].Value
}
