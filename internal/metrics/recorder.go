package metrics

import (
	"gonum.org/v1/gonum/stat"
)

// Category names which records a score was computed on.
type Category string

const (
	CategoryTrain      Category = "train"
	CategoryValidation Category = "validation"
	CategoryTest       Category = "test"
)

// Score is one recorded metric triple.
type Score struct {
	Fold      int // 1-based; 0 for scores outside cross-validation
	Epoch     int // 1-based; 0 for scores outside an epoch
	Category  Category
	F1        float64
	Recall    float64
	Precision float64
}

// Sink receives every score as it is recorded.
type Sink interface {
	Observe(s Score)
}

// Results is the ordered score accumulator of one run.
type Results []Score

// Recorder appends scores to a Results accumulator, stamping each with the
// current fold and epoch.
type Recorder struct {
	fold, epoch int
	results     Results
	sinks       []Sink
}

// NewRecorder creates an empty recorder forwarding to sinks.
func NewRecorder(sinks ...Sink) *Recorder {
	return &Recorder{sinks: sinks}
}

// At sets the fold and epoch attached to subsequent records.
func (r *Recorder) At(fold, epoch int) {
	r.fold, r.epoch = fold, epoch
}

// Record appends one score. Values are stored as given.
func (r *Recorder) Record(category Category, f1, recall, precision float64) {
	s := Score{
		Fold:      r.fold,
		Epoch:     r.epoch,
		Category:  category,
		F1:        f1,
		Recall:    recall,
		Precision: precision,
	}
	r.results = append(r.results, s)
	for _, sink := range r.sinks {
		sink.Observe(s)
	}
}

// RecordTriple is Record for a Triple.
func (r *Recorder) RecordTriple(category Category, t Triple) {
	r.Record(category, t.F1, t.Recall, t.Precision)
}

// Results returns a copy of everything recorded so far.
func (r *Recorder) Results() Results {
	return append(Results(nil), r.results...)
}

// Filter returns the scores of one category, in record order.
func (rs Results) Filter(category Category) Results {
	var out Results
	for _, s := range rs {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Last returns the final score recorded for a fold and category.
func (rs Results) Last(fold int, category Category) (Score, bool) {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].Fold == fold && rs[i].Category == category {
			return rs[i], true
		}
	}
	return Score{}, false
}

// MeanF1ByEpoch averages F1 across folds for each epoch of a category.
// Index 0 holds epoch 1.
func (rs Results) MeanF1ByEpoch(category Category) []float64 {
	byEpoch := make(map[int][]float64)
	maxEpoch := 0
	for _, s := range rs.Filter(category) {
		if s.Epoch < 1 {
			continue
		}
		byEpoch[s.Epoch] = append(byEpoch[s.Epoch], s.F1)
		if s.Epoch > maxEpoch {
			maxEpoch = s.Epoch
		}
	}
	means := make([]float64, maxEpoch)
	for e := 1; e <= maxEpoch; e++ {
		if vals := byEpoch[e]; len(vals) > 0 {
			means[e-1] = stat.Mean(vals, nil)
		}
	}
	return means
}
