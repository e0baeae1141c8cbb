// Package train runs k-fold cross-validated training of the classifier.
package train

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/finprofile-dev/finprofile/internal/dataset"
	"github.com/finprofile-dev/finprofile/internal/evaluate"
	"github.com/finprofile-dev/finprofile/internal/fold"
	"github.com/finprofile-dev/finprofile/internal/metrics"
	"github.com/finprofile-dev/finprofile/internal/nn"
	"github.com/finprofile-dev/finprofile/internal/report"
)

// ErrInvalidConfig is wrapped by every hyperparameter validation error.
var ErrInvalidConfig = errors.New("invalid training config")

// Config holds the hyperparameters of one run.
type Config struct {
	Folds        int
	Epochs       int
	BatchSize    int
	Hidden       int
	LearningRate float64
	WeightDecay  float64
	Seed         uint64

	// ReinitPerFold draws fresh parameters and optimizer state at the start
	// of every fold after the first.
	ReinitPerFold bool

	SchedulerMode     nn.Mode
	SchedulerFactor   float64
	SchedulerPatience int

	// LogEvery prints the batch loss every LogEvery steps; 0 disables it.
	LogEvery int
}

// DefaultConfig returns the stock hyperparameters.
func DefaultConfig() Config {
	return Config{
		Folds:             5,
		Epochs:            10,
		BatchSize:         32,
		Hidden:            64,
		LearningRate:      0.001,
		WeightDecay:       0.01,
		Seed:              42,
		ReinitPerFold:     true,
		SchedulerMode:     nn.ModeMax,
		SchedulerFactor:   0.1,
		SchedulerPatience: 10,
		LogEvery:          100,
	}
}

// Validate checks the hyperparameters that do not depend on the data.
func (c Config) Validate() error {
	switch {
	case c.Folds < 2:
		return fmt.Errorf("%w: folds must be at least 2, got %d", ErrInvalidConfig, c.Folds)
	case c.Epochs < 1:
		return fmt.Errorf("%w: epochs must be at least 1, got %d", ErrInvalidConfig, c.Epochs)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch size must be at least 1, got %d", ErrInvalidConfig, c.BatchSize)
	case c.Hidden < 1:
		return fmt.Errorf("%w: hidden size must be at least 1, got %d", ErrInvalidConfig, c.Hidden)
	case c.LearningRate <= 0:
		return fmt.Errorf("%w: learning rate must be positive, got %g", ErrInvalidConfig, c.LearningRate)
	case c.WeightDecay < 0:
		return fmt.Errorf("%w: weight decay must not be negative, got %g", ErrInvalidConfig, c.WeightDecay)
	case c.SchedulerFactor <= 0 || c.SchedulerFactor >= 1:
		return fmt.Errorf("%w: scheduler factor must be in (0, 1), got %g", ErrInvalidConfig, c.SchedulerFactor)
	case c.SchedulerPatience < 0:
		return fmt.Errorf("%w: scheduler patience must not be negative", ErrInvalidConfig)
	case c.LogEvery < 0:
		return fmt.Errorf("%w: log interval must not be negative", ErrInvalidConfig)
	}
	if _, err := nn.ParseMode(string(c.SchedulerMode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Runner owns the model, optimizer and scheduler for one training run.
type Runner struct {
	Config    Config
	Model     *nn.MLP
	Optimizer *nn.Adam
	Scheduler *nn.Plateau
	Recorder  *metrics.Recorder

	out *report.Printer
	src rand.Source
	rng *rand.Rand
}

// Outcome is what a run leaves behind.
type Outcome struct {
	Model   *nn.MLP
	Results metrics.Results
	Splits  []fold.Split
}

// NewRunner builds a runner whose model expects inputs features. Progress
// is written to out; rec may be nil.
func NewRunner(cfg Config, inputs int, out io.Writer, rec *metrics.Recorder) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if inputs < 1 {
		return nil, fmt.Errorf("%w: model needs at least one input, got %d", ErrInvalidConfig, inputs)
	}
	if rec == nil {
		rec = metrics.NewRecorder()
	}

	src := rand.NewPCG(cfg.Seed, 1)
	model := nn.NewMLP(inputs, cfg.Hidden, src)
	opt := nn.NewAdam(cfg.LearningRate, cfg.WeightDecay)
	return &Runner{
		Config:    cfg,
		Model:     model,
		Optimizer: opt,
		Scheduler: nn.NewPlateau(opt, cfg.SchedulerMode, cfg.SchedulerFactor, cfg.SchedulerPatience),
		Recorder:  rec,
		out:       report.NewPrinter(out),
		src:       src,
		rng:       fold.NewRand(cfg.Seed),
	}, nil
}

// Run cross-validates the model on ds. A feature width that differs from
// the model's input size fails with nn.ErrShapeMismatch.
func (r *Runner) Run(ds *dataset.Dataset) (*Outcome, error) {
	if ds.Width() != r.Model.Inputs() {
		return nil, fmt.Errorf("dataset of width %d: %w", ds.Width(), nn.ErrShapeMismatch)
	}
	if r.Config.Folds > ds.Len() {
		return nil, fmt.Errorf("%w: %d folds for %d records", ErrInvalidConfig, r.Config.Folds, ds.Len())
	}

	splits, err := fold.Partition(ds.Len(), r.Config.Folds, r.rng)
	if err != nil {
		return nil, fmt.Errorf("partitioning: %w", err)
	}

	for i, split := range splits {
		if err := r.runFold(i+1, ds, split); err != nil {
			return nil, fmt.Errorf("fold %d: %w", i+1, err)
		}
	}

	return &Outcome{
		Model:   r.Model,
		Results: r.Recorder.Results(),
		Splits:  splits,
	}, nil
}

func (r *Runner) runFold(n int, ds *dataset.Dataset, split fold.Split) error {
	r.out.Fold(n)
	if n > 1 && r.Config.ReinitPerFold {
		r.Model.Reset(r.src)
		r.Optimizer.Reset()
	}

	trainSet, err := ds.Subset(split.Train)
	if err != nil {
		return fmt.Errorf("training subset: %w", err)
	}
	valSet, err := ds.Subset(split.Validation)
	if err != nil {
		return fmt.Errorf("validation subset: %w", err)
	}

	var trainScores, valScores metrics.Triple
	for epoch := 1; epoch <= r.Config.Epochs; epoch++ {
		if err := r.epoch(epoch, trainSet); err != nil {
			return err
		}

		r.Recorder.At(n, epoch)
		if trainScores, err = r.score(metrics.CategoryTrain, trainSet); err != nil {
			return err
		}
		if valScores, err = r.score(metrics.CategoryValidation, valSet); err != nil {
			return err
		}
	}

	r.out.FoldSummary(trainScores, valScores)
	if r.Scheduler.Step(valScores.F1) {
		r.out.LearningRate(r.Optimizer.LearningRate())
	}
	return nil
}

// epoch runs one shuffled pass of mini-batch updates over set.
func (r *Runner) epoch(epoch int, set *dataset.Dataset) error {
	order := r.rng.Perm(set.Len())
	size := r.Config.BatchSize
	steps := (len(order) + size - 1) / size

	for step := 0; step < steps; step++ {
		end := min((step+1)*size, len(order))
		batch, err := set.Subset(order[step*size : end])
		if err != nil {
			return fmt.Errorf("batch %d: %w", step+1, err)
		}

		loss, grads, err := r.Model.Backward(batch.Features(), batch.Labels())
		if err != nil {
			return fmt.Errorf("epoch %d step %d: %w", epoch, step+1, err)
		}
		r.Optimizer.Step(r.Model, grads)

		if r.Config.LogEvery > 0 && (step+1)%r.Config.LogEvery == 0 {
			r.out.Step(epoch, r.Config.Epochs, step+1, steps, loss)
		}
	}
	return nil
}

func (r *Runner) score(category metrics.Category, set *dataset.Dataset) (metrics.Triple, error) {
	c, err := evaluate.Score(r.Model, set)
	if err != nil {
		return metrics.Triple{}, fmt.Errorf("scoring %s set: %w", category, err)
	}
	t := c.Micro()
	r.Recorder.RecordTriple(category, t)
	return t, nil
}
