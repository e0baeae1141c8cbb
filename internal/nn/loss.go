package nn

import "math"

// BCEWithLogits is the mean binary cross-entropy of sigmoid(logits)
// against labels, computed without forming the sigmoid explicitly.
func BCEWithLogits(logits, labels []float64) float64 {
	if len(logits) == 0 {
		return 0
	}
	var sum float64
	for i, z := range logits {
		sum += math.Max(z, 0) - z*labels[i] + math.Log1p(math.Exp(-math.Abs(z)))
	}
	return sum / float64(len(logits))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
