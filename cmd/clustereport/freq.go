package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seedtk/clustereport/internal/freq"
	"github.com/seedtk/clustereport/internal/tabio"
)

func newFreqCmd() *cobra.Command {
	var (
		inputFile string
		opts      freq.Options
	)

	cmd := &cobra.Command{
		Use:   "freq <column> <output-file>",
		Short: "Analyze the frequency distribution of correlations",
		Long: `Analyze a column of correlation values to find where high correlations
begin to occur with abnormal frequency. The range is divided into
buckets and the observed frequency of each bucket is compared with the
cumulative frequency expected from a normal distribution.

The range minimum and maximum should be the theoretical limits of the
measure, not the observed ones.`,
		Example: `  clustereport freq corr freq.tbl < correlations.tbl
  clustereport freq --input correlations.tbl --buckets 50 corr freq.tbl`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r *tabio.Reader
			var err error
			if inputFile == "" {
				logger.Info("correlations will be read from the standard input")
				r, err = tabio.NewReaderFrom(os.Stdin)
			} else {
				logger.Info("reading correlations", zap.String("file", inputFile))
				r, err = tabio.NewReader(inputFile)
			}
			if err != nil {
				return err
			}
			defer r.Close()

			a, err := freq.Analyze(r, args[0], opts, logger)
			if err != nil {
				return err
			}
			logger.Info("distribution computed",
				zap.Float64("mean", a.Mean),
				zap.Float64("stddev", a.StdDev))

			w, err := tabio.NewWriter(args[1], "limit", "expected", "actual")
			if err != nil {
				return err
			}
			a.Write(w)
			if err := w.Close(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%d observations, %d errors, mean %.4f, stddev %.4f\n",
				a.Count, a.Errors, a.Mean, a.StdDev)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	cmd.Flags().IntVarP(&opts.Buckets, "buckets", "q", 100, "Number of buckets in which to divide the range")
	cmd.Flags().Float64Var(&opts.Min, "min", -1.0, "Minimum of the input range")
	cmd.Flags().Float64Var(&opts.Max, "max", 1.0, "Maximum of the input range")
	cmd.Flags().BoolVar(&opts.Midpoint, "midpoint", false, "Force the expected mean to the range midpoint")

	return cmd
}
