package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	got []Score
}

func (c *captureSink) Observe(s Score) {
	c.got = append(c.got, s)
}

func TestRecorder_Record(t *testing.T) {
	sink := &captureSink{}
	r := NewRecorder(sink)

	r.At(1, 1)
	r.Record(CategoryTrain, 0.8, 0.7, 0.9)
	r.At(1, 2)
	r.RecordTriple(CategoryValidation, Triple{F1: 0.5, Recall: 0.4, Precision: 0.6})

	res := r.Results()
	require.Len(t, res, 2)
	assert.Equal(t, Score{Fold: 1, Epoch: 1, Category: CategoryTrain, F1: 0.8, Recall: 0.7, Precision: 0.9}, res[0])
	assert.Equal(t, 2, res[1].Epoch)
	assert.Equal(t, CategoryValidation, res[1].Category)

	assert.Equal(t, []Score(res), sink.got)
}

func TestRecorder_NoRangeValidation(t *testing.T) {
	r := NewRecorder()
	r.Record(CategoryTest, 1.5, -1, 2)
	res := r.Results()
	require.Len(t, res, 1)
	assert.Equal(t, 1.5, res[0].F1)
}

func TestRecorder_ResultsIsCopy(t *testing.T) {
	r := NewRecorder()
	r.Record(CategoryTrain, 1, 1, 1)
	res := r.Results()
	res[0].F1 = 0
	assert.Equal(t, 1.0, r.Results()[0].F1)
}

func TestResults_Queries(t *testing.T) {
	r := NewRecorder()
	for fold := 1; fold <= 2; fold++ {
		for epoch := 1; epoch <= 3; epoch++ {
			r.At(fold, epoch)
			r.Record(CategoryTrain, float64(epoch)/10+float64(fold)/100, 0, 0)
			r.Record(CategoryValidation, float64(epoch)/20, 0, 0)
		}
	}
	res := r.Results()

	assert.Len(t, res.Filter(CategoryTrain), 6)

	last, ok := res.Last(2, CategoryTrain)
	require.True(t, ok)
	assert.Equal(t, 3, last.Epoch)
	assert.InDelta(t, 0.32, last.F1, 1e-12)

	_, ok = res.Last(3, CategoryTrain)
	assert.False(t, ok)

	means := res.MeanF1ByEpoch(CategoryTrain)
	require.Len(t, means, 3)
	assert.InDelta(t, 0.115, means[0], 1e-12)
	assert.InDelta(t, 0.315, means[2], 1e-12)

	assert.Empty(t, res.MeanF1ByEpoch(CategoryTest))
}
