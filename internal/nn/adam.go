package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Adam is the Adam optimizer with L2 weight decay folded into the
// gradient before the moment updates.
type Adam struct {
	LR          float64
	Beta1       float64
	Beta2       float64
	Eps         float64
	WeightDecay float64

	step int
	m    [][]float64
	v    [][]float64
}

// NewAdam returns an optimizer with the usual β and ε defaults.
func NewAdam(lr, weightDecay float64) *Adam {
	return &Adam{LR: lr, Beta1: 0.9, Beta2: 0.999, Eps: 1e-8, WeightDecay: weightDecay}
}

// LearningRate returns the current step size.
func (a *Adam) LearningRate() float64 { return a.LR }

// SetLearningRate changes the step size for subsequent steps.
func (a *Adam) SetLearningRate(lr float64) { a.LR = lr }

// Reset clears the moment estimates and step count.
func (a *Adam) Reset() {
	a.step = 0
	a.m = nil
	a.v = nil
}

// Step updates model parameters in place from grads.
func (a *Adam) Step(model *MLP, grads *Gradients) {
	params := model.Params()
	gs := grads.List()
	if a.m == nil {
		a.m = make([][]float64, len(params))
		a.v = make([][]float64, len(params))
		for i, p := range params {
			n := len(p.RawMatrix().Data)
			a.m[i] = make([]float64, n)
			a.v[i] = make([]float64, n)
		}
	}

	a.step++
	bc1 := 1 - math.Pow(a.Beta1, float64(a.step))
	bc2 := 1 - math.Pow(a.Beta2, float64(a.step))

	for i, p := range params {
		w := p.RawMatrix().Data
		g := make([]float64, len(w))
		copy(g, rawData(gs[i]))
		if a.WeightDecay != 0 {
			floats.AddScaled(g, a.WeightDecay, w)
		}

		m, v := a.m[i], a.v[i]
		for j, gj := range g {
			m[j] = a.Beta1*m[j] + (1-a.Beta1)*gj
			v[j] = a.Beta2*v[j] + (1-a.Beta2)*gj*gj
			mhat := m[j] / bc1
			vhat := v[j] / bc2
			w[j] -= a.LR * mhat / (math.Sqrt(vhat) + a.Eps)
		}
	}
}

func rawData(d *mat.Dense) []float64 {
	return d.RawMatrix().Data
}
