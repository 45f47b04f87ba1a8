package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/seedtk/clustereport/internal/cluster"
	"github.com/seedtk/clustereport/internal/genome"
)

// genomeReporter produces a tab report of feature clusters annotated from
// a reference genome. Subsystem names are translated to short identifiers
// through a registry that is persisted at close time when a mapping file
// is configured.
type genomeReporter struct {
	out     *bufio.Writer
	subFile string
	genome  *genome.Genome
	subMap  *genome.SubsystemRegistry
	tracker displayTracker
	logger  *zap.Logger
}

func newGenomeReporter(cfg *Config, out io.Writer) (*genomeReporter, error) {
	if cfg.GenomeFile == "" {
		return nil, fmt.Errorf("%w: reference genome file is required for report type genome", ErrConfig)
	}
	g, err := genome.Load(cfg.GenomeFile)
	if err != nil {
		return nil, fmt.Errorf("load genome: %w", err)
	}
	return &genomeReporter{
		out:     bufio.NewWriter(out),
		subFile: cfg.SubFile,
		genome:  g,
		subMap:  genome.NewSubsystemRegistry(),
		logger:  zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for progress messages.
func (r *genomeReporter) SetLogger(l *zap.Logger) {
	r.logger = l
}

func (r *genomeReporter) ScanGroup(group *cluster.Group) error {
	return nil
}

func (r *genomeReporter) WriteHeader() error {
	r.tracker.reset()
	_, err := fmt.Fprintln(r.out, "cluster\tfid\tgene\tsubsystems\tfunction")
	return err
}

func (r *genomeReporter) WriteCluster(cl *cluster.Cluster) error {
	clID, ok := r.tracker.next(cl)
	if !ok {
		return nil
	}
	for _, fid := range cl.Members {
		var gene string
		function := "** not found **"
		var subsystems []string
		if feat := r.genome.Feature(fid); feat != nil {
			gene = feat.Gene
			function = feat.Function
			for _, name := range feat.Subsystems {
				subsystems = append(subsystems, r.subMap.IDFor(name))
			}
			sort.Strings(subsystems)
		}
		_, err := fmt.Fprintf(r.out, "%s\t%s\t%s\t%s\t%s\n",
			clID, fid, gene, strings.Join(subsystems, ","), function)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *genomeReporter) Close() error {
	if err := r.out.Flush(); err != nil {
		return err
	}
	if r.subFile != "" {
		r.logger.Info("writing subsystem mapping", zap.String("file", r.subFile))
		if err := r.subMap.Save(r.subFile); err != nil {
			return err
		}
	}
	return nil
}
