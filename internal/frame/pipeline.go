package frame

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Pipeline turns a raw transactions table into a numeric matrix. It is fit
// once on the training table and then applied unchanged to holdout tables.
type Pipeline struct {
	Drop        []string // columns removed before encoding, e.g. identifiers
	Categorical string   // column to one-hot encode; empty disables encoding

	encoder *OneHot
}

// Fit learns the categories of the categorical column from t.
func (p *Pipeline) Fit(t *Table) error {
	if p.Categorical == "" {
		return nil
	}
	enc, err := FitOneHot(t, p.Categorical)
	if err != nil {
		return err
	}
	p.encoder = enc
	return nil
}

// Transform applies the fitted steps to t.
func (p *Pipeline) Transform(t *Table) (*mat.Dense, *Table, error) {
	if p.Categorical != "" && p.encoder == nil {
		return nil, nil, errors.New("pipeline used before Fit")
	}

	out := t.Drop(p.Drop...)
	if p.encoder != nil {
		var err error
		out, err = p.encoder.Transform(out)
		if err != nil {
			return nil, nil, err
		}
	}

	m, err := Numeric(out)
	if err != nil {
		return nil, nil, fmt.Errorf("coercing table: %w", err)
	}
	return m, out, nil
}

// FitTransform is Fit followed by Transform on the same table.
func (p *Pipeline) FitTransform(t *Table) (*mat.Dense, *Table, error) {
	if err := p.Fit(t); err != nil {
		return nil, nil, err
	}
	return p.Transform(t)
}
