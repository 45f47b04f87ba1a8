package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/seedtk/clustereport/internal/cluster"
	"github.com/seedtk/clustereport/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		format     string
		outputFile string
		cfg        report.Config
	)

	cmd := &cobra.Command{
		Use:   "report <cluster-file>",
		Short: "Generate a cluster report",
		Long: `Generate a report from a saved cluster file. The report format selects
what each cluster member is joined with: "features" and "genome" use a
reference genome, "samples" queries NCBI for SRA sample metadata, and
"tabular", "raw", and "indented" are plain dumps.`,
		Example: `  clustereport report --format tabular clusters.tbl
  clustereport report --format features --genome genome.json --groups groups.tbl clusters.tbl
  clustereport report --format samples -o report.html clusters.tbl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := report.ParseType(format)
			if err != nil {
				return fmt.Errorf("valid formats are %s: %w", typeNames(), err)
			}
			if cfg.BatchSize == 0 {
				cfg.BatchSize = viper.GetInt("batch_size")
			}
			if cfg.NcbiBaseURL == "" {
				cfg.NcbiBaseURL = viper.GetString("ncbi_base_url")
			}

			group, err := cluster.Load(args[0])
			if err != nil {
				return err
			}
			logger.Info("cluster file loaded",
				zap.String("file", args[0]),
				zap.Int("clusters", len(group.Clusters)))

			out := os.Stdout
			if outputFile != "" {
				out, err = os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer out.Close()
			}

			r, err := report.New(typ, &cfg, out)
			if err != nil {
				return err
			}
			if lr, ok := r.(interface{ SetLogger(*zap.Logger) }); ok {
				lr.SetLogger(logger)
			}
			return report.Run(r, group)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tabular", "Report format: "+typeNames())
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&cfg.GenomeFile, "genome", "", "Reference genome file (JSON or DuckDB)")
	cmd.Flags().StringVar(&cfg.GroupFile, "groups", "", "Feature grouping file")
	cmd.Flags().StringVar(&cfg.Method, "method", "COMPLETE", "Clustering method name for the title")
	cmd.Flags().Float64Var(&cfg.MinSimilarity, "min-similarity", 0.9, "Clustering similarity threshold for the title")
	cmd.Flags().StringVar(&cfg.TitlePrefix, "title-prefix", "", "Prefix for the report title")
	cmd.Flags().IntVar(&cfg.MaxSize, "max-size", 0, "Maximum cluster size (0 = unlimited)")
	cmd.Flags().IntVar(&cfg.BatchSize, "batch-size", 0, "Batch size for NCBI queries")
	cmd.Flags().StringVar(&cfg.SubFile, "sub-file", "", "Output file for subsystem ID mappings")

	return cmd
}

func typeNames() string {
	names := make([]string, 0, len(report.Types()))
	for _, t := range report.Types() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
