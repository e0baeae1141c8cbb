// Package evaluate scores a trained classifier on labeled records.
package evaluate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/finprofile-dev/finprofile/internal/dataset"
	"github.com/finprofile-dev/finprofile/internal/metrics"
	"github.com/finprofile-dev/finprofile/internal/model"
)

// Predictor produces one logit per row of x.
type Predictor interface {
	Logits(x mat.Matrix) ([]float64, error)
}

// Report is the outcome of a holdout evaluation.
type Report struct {
	Confusion   metrics.Confusion
	Scores      metrics.Triple
	Accuracy    float64
	Predictions []model.Prediction
}

// Predict classifies every record of ds with the logit > 0 rule.
func Predict(p Predictor, ds *dataset.Dataset) ([]model.Prediction, error) {
	logits, err := p.Logits(ds.Features())
	if err != nil {
		return nil, fmt.Errorf("predicting: %w", err)
	}
	if len(logits) != ds.Len() {
		return nil, fmt.Errorf("predictor returned %d logits for %d records", len(logits), ds.Len())
	}

	labels := ds.Labels()
	preds := make([]model.Prediction, len(logits))
	for i, z := range logits {
		class, label := model.Classify(z)
		preds[i] = model.Prediction{
			Index:     i,
			Logit:     z,
			Predicted: class,
			Actual:    int(labels[i]),
			Label:     label,
		}
	}
	return preds, nil
}

// Score classifies ds and tallies the decisions.
func Score(p Predictor, ds *dataset.Dataset) (metrics.Confusion, error) {
	preds, err := Predict(p, ds)
	if err != nil {
		return metrics.Confusion{}, err
	}
	return compare(ds, preds)
}

// Holdout runs p once over a held-out set. It reads p only.
func Holdout(p Predictor, ds *dataset.Dataset) (*Report, error) {
	preds, err := Predict(p, ds)
	if err != nil {
		return nil, err
	}
	c, err := compare(ds, preds)
	if err != nil {
		return nil, err
	}
	return &Report{
		Confusion:   c,
		Scores:      c.Micro(),
		Accuracy:    c.Accuracy(),
		Predictions: preds,
	}, nil
}

func compare(ds *dataset.Dataset, preds []model.Prediction) (metrics.Confusion, error) {
	predicted := make([]int, len(preds))
	for i, p := range preds {
		predicted[i] = p.Predicted
	}
	return metrics.Compare(ds.Labels(), predicted)
}
