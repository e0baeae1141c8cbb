// Package report renders training progress and evaluation results for a
// terminal, and learning curves as images.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/finprofile-dev/finprofile/internal/metrics"
	"github.com/finprofile-dev/finprofile/internal/model"
)

// Printer writes human-readable progress lines. Write errors are ignored;
// output is best effort.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w. A nil w discards output.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{w: w}
}

// Fold announces the start of fold n (1-based).
func (p *Printer) Fold(n int) {
	fmt.Fprintf(p.w, "Fold %d:\n", n)
}

// Step reports the loss of a mini-batch.
func (p *Printer) Step(epoch, epochs, step, steps int, loss float64) {
	fmt.Fprintf(p.w, "Epoch [%d/%d], Step [%d/%d], Loss: %.4f\n", epoch, epochs, step, steps, loss)
}

// FoldSummary prints the final training and validation scores of a fold.
func (p *Printer) FoldSummary(train, validation metrics.Triple) {
	p.triple("Training", train)
	p.triple("Validation", validation)
}

func (p *Printer) triple(prefix string, t metrics.Triple) {
	fmt.Fprintf(p.w, "%s F1 score: %.4f\n", prefix, t.F1)
	fmt.Fprintf(p.w, "%s recall score: %.4f\n", prefix, t.Recall)
	fmt.Fprintf(p.w, "%s precision score: %.4f\n", prefix, t.Precision)
}

// LearningRate reports a scheduler reduction.
func (p *Printer) LearningRate(lr float64) {
	fmt.Fprintf(p.w, "Reducing learning rate to %.4e\n", lr)
}

// Test prints the holdout scores.
func (p *Printer) Test(t metrics.Triple, accuracy float64) {
	p.triple("Test", t)
	fmt.Fprintf(p.w, "Test accuracy score: %.4f\n", accuracy)
}

// Predictions prints one row per holdout record. names and rows are the
// encoded holdout table; rows may be nil to print only the decisions.
func (p *Printer) Predictions(names []string, rows [][]string, preds []model.Prediction) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(tw, "%s\t", n)
	}
	fmt.Fprintln(tw, "logit\tfuture_transaction")
	for i, pred := range preds {
		if i < len(rows) {
			for _, cell := range rows[i] {
				fmt.Fprintf(tw, "%s\t", cell)
			}
		}
		fmt.Fprintf(tw, "%.4f\t%s\n", pred.Logit, pred.Label)
	}
	return tw.Flush()
}
