package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/finprofile-dev/finprofile/internal/metrics"
)

// LearningCurve saves a PNG (or any format plot supports by extension) of
// the mean F1 per epoch for training and validation.
func LearningCurve(results metrics.Results, path string) error {
	train := results.MeanF1ByEpoch(metrics.CategoryTrain)
	validation := results.MeanF1ByEpoch(metrics.CategoryValidation)
	if len(train) == 0 && len(validation) == 0 {
		return errors.New("no epoch scores to plot")
	}

	p := plot.New()
	p.Title.Text = "Cross-validation F1"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Mean F1"
	p.Y.Min = 0
	p.Y.Max = 1

	if err := plotutil.AddLinePoints(p,
		"train", points(train),
		"validation", points(validation),
	); err != nil {
		return fmt.Errorf("adding lines: %w", err)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

func points(means []float64) plotter.XYs {
	pts := make(plotter.XYs, len(means))
	for i, m := range means {
		pts[i].X = float64(i + 1)
		pts[i].Y = m
	}
	return pts
}
