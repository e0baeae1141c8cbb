// Package nn implements the two-layer feed-forward classifier together
// with its loss, optimizer and learning-rate schedule.
package nn

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrShapeMismatch is returned when an input's feature width differs from
// the width the model was built for.
var ErrShapeMismatch = errors.New("feature width does not match model input size")

// MLP is linear(inputs→hidden) → ReLU → linear(hidden→1). The output is a
// single unbounded logit.
type MLP struct {
	W1 *mat.Dense // hidden × inputs
	B1 *mat.Dense // 1 × hidden
	W2 *mat.Dense // 1 × hidden
	B2 *mat.Dense // 1 × 1
}

// Gradients has one matrix per parameter, shaped like the parameter.
type Gradients struct {
	W1, B1, W2, B2 *mat.Dense
}

// NewMLP initialises every layer uniformly in ±1/√fan_in.
func NewMLP(inputs, hidden int, src rand.Source) *MLP {
	m := &MLP{
		W1: mat.NewDense(hidden, inputs, nil),
		B1: mat.NewDense(1, hidden, nil),
		W2: mat.NewDense(1, hidden, nil),
		B2: mat.NewDense(1, 1, nil),
	}
	m.Reset(src)
	return m
}

// Reset draws fresh parameters in place.
func (m *MLP) Reset(src rand.Source) {
	hidden, inputs := m.W1.Dims()
	fill(m.W1, inputs, src)
	fill(m.B1, inputs, src)
	fill(m.W2, hidden, src)
	fill(m.B2, hidden, src)
}

func fill(p *mat.Dense, fanIn int, src rand.Source) {
	bound := 1 / math.Sqrt(float64(fanIn))
	u := distuv.Uniform{Min: -bound, Max: bound, Src: src}
	raw := p.RawMatrix().Data
	for i := range raw {
		raw[i] = u.Rand()
	}
}

// Inputs returns the expected feature width.
func (m *MLP) Inputs() int {
	_, c := m.W1.Dims()
	return c
}

// Hidden returns the hidden layer width.
func (m *MLP) Hidden() int {
	r, _ := m.W1.Dims()
	return r
}

// Params lists the parameters in a fixed order matching Gradients.List.
func (m *MLP) Params() []*mat.Dense {
	return []*mat.Dense{m.W1, m.B1, m.W2, m.B2}
}

// List returns the gradients in Params order.
func (g *Gradients) List() []*mat.Dense {
	return []*mat.Dense{g.W1, g.B1, g.W2, g.B2}
}

// Forward returns the logit for a single feature vector.
func (m *MLP) Forward(x []float64) (float64, error) {
	if len(x) != m.Inputs() {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrShapeMismatch, len(x), m.Inputs())
	}
	logits, err := m.Logits(mat.NewDense(1, len(x), x))
	if err != nil {
		return 0, err
	}
	return logits[0], nil
}

// Logits runs a batch forward pass. Rows of x are records.
func (m *MLP) Logits(x mat.Matrix) ([]float64, error) {
	_, _, out, err := m.forward(x)
	if err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, out), nil
}

// forward returns the pre-activation, activation and output matrices.
func (m *MLP) forward(x mat.Matrix) (z1, a1, out *mat.Dense, err error) {
	n, c := x.Dims()
	if c != m.Inputs() {
		return nil, nil, nil, fmt.Errorf("%w: got %d, want %d", ErrShapeMismatch, c, m.Inputs())
	}
	hidden := m.Hidden()

	z1 = mat.NewDense(n, hidden, nil)
	z1.Mul(x, m.W1.T())
	b1 := m.B1.RawRowView(0)
	z1.Apply(func(_, j int, v float64) float64 { return v + b1[j] }, z1)

	a1 = mat.NewDense(n, hidden, nil)
	a1.Apply(func(_, _ int, v float64) float64 { return math.Max(v, 0) }, z1)

	out = mat.NewDense(n, 1, nil)
	out.Mul(a1, m.W2.T())
	b2 := m.B2.At(0, 0)
	out.Apply(func(_, _ int, v float64) float64 { return v + b2 }, out)
	return z1, a1, out, nil
}

// Backward runs a forward pass over x and returns the mean binary
// cross-entropy-with-logits against y together with its gradients.
func (m *MLP) Backward(x mat.Matrix, y []float64) (float64, *Gradients, error) {
	z1, a1, out, err := m.forward(x)
	if err != nil {
		return 0, nil, err
	}
	n, _ := x.Dims()
	if len(y) != n {
		return 0, nil, fmt.Errorf("%d labels for %d records", len(y), n)
	}
	logits := mat.Col(nil, 0, out)
	loss := BCEWithLogits(logits, y)

	// dL/dlogit for the mean reduction.
	dz := mat.NewDense(n, 1, nil)
	for i, z := range logits {
		dz.Set(i, 0, (sigmoid(z)-y[i])/float64(n))
	}

	g := &Gradients{
		W1: mat.NewDense(m.Hidden(), m.Inputs(), nil),
		B1: mat.NewDense(1, m.Hidden(), nil),
		W2: mat.NewDense(1, m.Hidden(), nil),
		B2: mat.NewDense(1, 1, nil),
	}
	g.W2.Mul(dz.T(), a1)
	g.B2.Set(0, 0, mat.Sum(dz))

	da := mat.NewDense(n, m.Hidden(), nil)
	da.Mul(dz, m.W2)
	da.Apply(func(i, j int, v float64) float64 {
		if z1.At(i, j) > 0 {
			return v
		}
		return 0
	}, da)

	g.W1.Mul(da.T(), x)
	for j := 0; j < m.Hidden(); j++ {
		g.B1.Set(0, j, mat.Sum(da.ColView(j)))
	}
	return loss, g, nil
}
