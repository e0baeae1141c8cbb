// Package metrics scores binary predictions and accumulates the scores
// produced during a training run.
package metrics

import "fmt"

// Confusion counts binary decisions with class 1 as positive.
type Confusion struct {
	TP, FP, TN, FN int
}

// Compare tallies predicted against actual labels. Labels are treated as
// positive when they equal 1.
func Compare(actual []float64, predicted []int) (Confusion, error) {
	if len(actual) != len(predicted) {
		return Confusion{}, fmt.Errorf("%d labels but %d predictions", len(actual), len(predicted))
	}
	var c Confusion
	for i, a := range actual {
		pos := a == 1
		switch {
		case pos && predicted[i] == 1:
			c.TP++
		case pos:
			c.FN++
		case predicted[i] == 1:
			c.FP++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Total is the number of decisions.
func (c Confusion) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

// Accuracy is the fraction of correct decisions.
func (c Confusion) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.Total())
}

// MicroPrecision pools true and false positives over both classes. For
// single-label binary data each error is a false positive for one class and
// a false negative for the other, so the pooled ratio equals accuracy.
func (c Confusion) MicroPrecision() float64 {
	tp := c.TP + c.TN
	fp := c.FP + c.FN
	return ratio(tp, tp+fp)
}

// MicroRecall pools true positives and false negatives over both classes.
func (c Confusion) MicroRecall() float64 {
	tp := c.TP + c.TN
	fn := c.FN + c.FP
	return ratio(tp, tp+fn)
}

// MicroF1 is the harmonic mean of MicroPrecision and MicroRecall.
func (c Confusion) MicroF1() float64 {
	return f1(c.MicroPrecision(), c.MicroRecall())
}

// Precision is the positive-class precision.
func (c Confusion) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// Recall is the positive-class recall.
func (c Confusion) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

// F1 is the positive-class F1.
func (c Confusion) F1() float64 {
	return f1(c.Precision(), c.Recall())
}

// Triple is the micro-averaged score set reported per epoch.
type Triple struct {
	F1, Recall, Precision float64
}

// Micro returns the micro-averaged triple.
func (c Confusion) Micro() Triple {
	return Triple{F1: c.MicroF1(), Recall: c.MicroRecall(), Precision: c.MicroPrecision()}
}

// Zero denominators score 0.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func f1(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
