package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/finprofile-dev/finprofile/internal/config"
	"github.com/finprofile-dev/finprofile/internal/generator"
)

func newGenerateCommand() *cobra.Command {
	var (
		cfgPath   string
		trainRows int
		testRows  int
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic train and test transaction CSVs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, base, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Training.Seed
			}
			return runGenerate(cmd.OutOrStdout(), cfg, base, trainRows, testRows, seed)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", config.FileName, "project config file")
	cmd.Flags().IntVar(&trainRows, "train-rows", 1000, "number of training transactions")
	cmd.Flags().IntVar(&testRows, "test-rows", 200, "number of holdout transactions")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "generator seed (default training.seed)")

	return cmd
}

func runGenerate(out io.Writer, cfg *config.Config, base string, trainRows, testRows int, seed uint64) error {
	if trainRows < 1 {
		return fmt.Errorf("--train-rows must be at least 1, got %d", trainRows)
	}
	if testRows < 0 {
		return fmt.Errorf("--test-rows must not be negative, got %d", testRows)
	}

	gen, err := generator.New(cfg.Generator, seed)
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}

	files := []struct {
		path string
		rows int
	}{
		{resolve(base, cfg.Data.Train), trainRows},
		{resolve(base, cfg.Data.Test), testRows},
	}
	for _, f := range files {
		if f.path == "" || f.rows == 0 {
			continue
		}
		txns, err := gen.Generate(f.rows)
		if err != nil {
			return fmt.Errorf("generating %s: %w", f.path, err)
		}
		if err := generator.WriteFile(f.path, txns); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d transactions to %s\n", len(txns), f.path)
	}
	return nil
}
