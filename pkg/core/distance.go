package core

import "math"

// Distance returns the Euclidean distance between two individuals in design
// space. Both individuals must have the same number of variables.
func Distance(a, b *Individual) float64 {
	sum := 0.0
	for j := range a.Variables {
		diff := a.Variables[j] - b.Variables[j]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
