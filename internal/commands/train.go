package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/finprofile-dev/finprofile/internal/config"
	"github.com/finprofile-dev/finprofile/internal/dataset"
	"github.com/finprofile-dev/finprofile/internal/evaluate"
	"github.com/finprofile-dev/finprofile/internal/frame"
	"github.com/finprofile-dev/finprofile/internal/metrics"
	"github.com/finprofile-dev/finprofile/internal/report"
	"github.com/finprofile-dev/finprofile/internal/runlog"
	"github.com/finprofile-dev/finprofile/internal/telemetry"
	"github.com/finprofile-dev/finprofile/internal/train"
)

const telemetryTimeout = 5 * time.Second

type trainOptions struct {
	cfgPath    string
	holdout    string
	plot       string
	resultsLog string
}

func newTrainCommand() *cobra.Command {
	var opts trainOptions

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Cross-validate the classifier and evaluate it on the holdout set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, base, err := loadConfig(opts.cfgPath)
			if err != nil {
				return err
			}
			// Flag paths are relative to the working directory, not the config.
			overrides := []struct {
				flag string
				val  string
				dst  *string
			}{
				{"holdout", opts.holdout, &cfg.Data.Test},
				{"plot", opts.plot, &cfg.Output.Plot},
				{"results-log", opts.resultsLog, &cfg.Output.ResultsLog},
			}
			for _, o := range overrides {
				if !cmd.Flags().Changed(o.flag) {
					continue
				}
				if o.val == "" {
					*o.dst = ""
					continue
				}
				abs, err := filepath.Abs(o.val)
				if err != nil {
					return fmt.Errorf("resolving --%s: %w", o.flag, err)
				}
				*o.dst = abs
			}
			return runTrain(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, base)
		},
	}

	cmd.Flags().StringVar(&opts.cfgPath, "config", config.FileName, "project config file")
	cmd.Flags().StringVar(&opts.holdout, "holdout", "", "holdout CSV (default data.test, empty skips evaluation)")
	cmd.Flags().StringVar(&opts.plot, "plot", "", "write the learning curve to this image file")
	cmd.Flags().StringVar(&opts.resultsLog, "results-log", "", "append scores to this CSV (default output.results_log)")

	return cmd
}

func runTrain(ctx context.Context, out, errOut io.Writer, cfg *config.Config, base string) error {
	tc, err := cfg.Train()
	if err != nil {
		return err
	}

	table, err := frame.ReadFile(resolve(base, cfg.Data.Train))
	if err != nil {
		return err
	}
	pipeline := &frame.Pipeline{Drop: cfg.Data.Drop, Categorical: cfg.Data.Categorical}
	m, _, err := pipeline.FitTransform(table)
	if err != nil {
		return fmt.Errorf("preparing training data: %w", err)
	}
	ds, err := dataset.New(m)
	if err != nil {
		return fmt.Errorf("building training dataset: %w", err)
	}

	var sinks []metrics.Sink
	var scoreLog *runlog.Sink
	if cfg.Output.ResultsLog != "" {
		scoreLog = runlog.NewSink(resolve(base, cfg.Output.ResultsLog))
		sinks = append(sinks, scoreLog)
	}
	if cfg.Telemetry.Enabled {
		exp, err := telemetry.NewExporter(ctx, cfg.Telemetry)
		if err != nil {
			fmt.Fprintf(errOut, "warning: telemetry disabled: %v\n", err)
		} else {
			sinks = append(sinks, exp)
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), telemetryTimeout)
				defer cancel()
				if err := exp.Close(closeCtx); err != nil {
					fmt.Fprintf(errOut, "warning: failed to flush telemetry: %v\n", err)
				}
			}()
		}
	}
	rec := metrics.NewRecorder(sinks...)

	runner, err := train.NewRunner(tc, ds.Width(), out, rec)
	if err != nil {
		return err
	}
	outcome, err := runner.Run(ds)
	if err != nil {
		return err
	}

	if cfg.Output.Plot != "" {
		path := resolve(base, cfg.Output.Plot)
		if err := report.LearningCurve(outcome.Results, path); err != nil {
			return fmt.Errorf("writing learning curve: %w", err)
		}
		fmt.Fprintf(out, "Saved learning curve to %s\n", path)
	}

	var holdoutErr error
	if cfg.Data.Test != "" {
		holdoutErr = runHoldout(out, resolve(base, cfg.Data.Test), pipeline, outcome, rec)
	}

	if scoreLog != nil {
		if err := scoreLog.Flush(); err != nil {
			fmt.Fprintf(errOut, "warning: failed to write results log: %v\n", err)
		}
	}
	return holdoutErr
}

func runHoldout(out io.Writer, path string, pipeline *frame.Pipeline, outcome *train.Outcome, rec *metrics.Recorder) error {
	table, err := frame.ReadFile(path)
	if err != nil {
		return err
	}
	m, encoded, err := pipeline.Transform(table)
	if err != nil {
		return fmt.Errorf("preparing holdout data: %w", err)
	}
	ds, err := dataset.New(m)
	if err != nil {
		return fmt.Errorf("building holdout dataset: %w", err)
	}

	rep, err := evaluate.Holdout(outcome.Model, ds)
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", path, err)
	}

	rec.At(0, 0)
	rec.RecordTriple(metrics.CategoryTest, rep.Scores)

	printer := report.NewPrinter(out)
	printer.Test(rep.Scores, rep.Accuracy)

	rows := lo.Map(encoded.Rows, func(row []string, _ int) []string { return row[1:] })
	if err := printer.Predictions(encoded.Header[1:], rows, rep.Predictions); err != nil {
		return fmt.Errorf("printing predictions: %w", err)
	}
	return nil
}
