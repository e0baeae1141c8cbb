package nn

import (
	"fmt"
	"math"
)

// Mode says whether a lower or a higher metric counts as an improvement.
type Mode string

const (
	ModeMin Mode = "min"
	ModeMax Mode = "max"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMin, ModeMax:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown scheduler mode %q (want min or max)", s)
	}
}

// LearningRater is an optimizer whose step size can be changed.
type LearningRater interface {
	LearningRate() float64
	SetLearningRate(lr float64)
}

// Plateau multiplies the learning rate by Factor once the metric has not
// improved by a relative Threshold for more than Patience steps.
type Plateau struct {
	Mode      Mode
	Factor    float64
	Patience  int
	Threshold float64
	MinLR     float64

	opt  LearningRater
	best float64
	bad  int
}

// NewPlateau attaches a scheduler to opt.
func NewPlateau(opt LearningRater, mode Mode, factor float64, patience int) *Plateau {
	p := &Plateau{
		Mode:      mode,
		Factor:    factor,
		Patience:  patience,
		Threshold: 1e-4,
		opt:       opt,
	}
	p.Reset()
	return p
}

// Reset forgets the best metric seen so far.
func (p *Plateau) Reset() {
	p.bad = 0
	if p.Mode == ModeMax {
		p.best = math.Inf(-1)
	} else {
		p.best = math.Inf(1)
	}
}

// Step records one metric observation and reports whether the learning
// rate was reduced.
func (p *Plateau) Step(metric float64) bool {
	if p.improved(metric) {
		p.best = metric
		p.bad = 0
		return false
	}
	p.bad++
	if p.bad <= p.Patience {
		return false
	}
	p.bad = 0

	old := p.opt.LearningRate()
	lr := math.Max(old*p.Factor, p.MinLR)
	if old-lr <= 1e-8 {
		return false
	}
	p.opt.SetLearningRate(lr)
	return true
}

func (p *Plateau) improved(metric float64) bool {
	if p.Mode == ModeMax {
		return metric > p.best*(1+p.Threshold)
	}
	return metric < p.best*(1-p.Threshold)
}
