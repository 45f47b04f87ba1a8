package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/seedtk/clustereport/internal/cluster"
	"github.com/seedtk/clustereport/internal/counter"
	"github.com/seedtk/clustereport/internal/genome"
	"github.com/seedtk/clustereport/internal/groups"
)

// featuresReporter produces the analytical document report: each cluster
// member is joined with its genome annotation and its regulon, operon,
// modulon, and subsystem assignments from the grouping file.
type featuresReporter struct {
	*htmlReporter
	genome *genome.Genome
	groups *groups.Map
}

var featuresColumns = []string{"fid", "gene", "bNum", "regulon", "operon",
	"modulons", "subsystems", "function"}

func newFeaturesReporter(cfg *Config, out io.Writer) (*featuresReporter, error) {
	if cfg.GenomeFile == "" {
		return nil, fmt.Errorf("%w: genome file is required for report type features", ErrConfig)
	}
	if cfg.GroupFile == "" {
		return nil, fmt.Errorf("%w: group file is required for report type features", ErrConfig)
	}
	g, err := genome.Load(cfg.GenomeFile)
	if err != nil {
		return nil, fmt.Errorf("load genome: %w", err)
	}
	groupMap, err := groups.Load(cfg.GroupFile, func(fid string) bool {
		return g.Feature(fid) != nil
	})
	if err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	r := &featuresReporter{
		htmlReporter: newHTMLReporter(cfg, out),
		genome:       g,
		groups:       groupMap,
	}
	r.tabler = r
	return r, nil
}

func (r *featuresReporter) formatClusterTable(cl *cluster.Cluster) *htmlTable {
	// One count map per grouping dimension, scoped to this cluster.
	modCounters := counter.New()
	opCounters := counter.New()
	regCounters := counter.New()
	subCounters := counter.New()

	table := newTable(featuresColumns...)
	for _, fid := range cl.Members {
		var gene, bNum, function string
		if feat := r.genome.Feature(fid); feat != nil {
			gene = feat.Gene
			bNum = feat.BNumber
			function = feat.Function
		}
		fg := r.groups.Get(fid)
		if fg == nil {
			fg = &groups.FeatureGroups{}
		}
		regulon := ""
		if fg.Regulon > 0 {
			regulon = fmt.Sprintf("AR%d", fg.Regulon)
			regCounters.Count(regulon)
		}
		if fg.Operon != "" {
			opCounters.Count(fg.Operon)
		}
		for _, mod := range fg.Modulons {
			modCounters.Count(mod)
		}
		for _, sub := range fg.Subsystems {
			subCounters.Count(sub)
		}
		table.addRow(htmlRow{
			{Text: fid},
			{Text: gene},
			{Text: bNum},
			{Text: regulon},
			{Text: fg.Operon},
			{Text: strings.Join(fg.Modulons, ", ")},
			{Text: strings.Join(fg.Subsystems, ", "), Big: true},
			{Text: function, Big: true},
		})
	}
	r.addEvidence("modulon", "modulons", modCounters)
	r.addEvidence("operon", "operons", opCounters)
	r.addEvidence("regulon", "regulons", regCounters)
	r.addEvidence("subsystem", "subsystems", subCounters)
	return table
}

func (r *featuresReporter) addNotes() {
	r.addNote(fmt.Sprintf("%d features in %d subsystems.",
		r.groups.SubsystemFeatures, r.groups.DistinctSubsystems()))
	r.addNote(fmt.Sprintf("%d features in %d operons.",
		r.groups.OperonFeatures, r.groups.DistinctOperons()))
	r.addNote(fmt.Sprintf("%d features in %d regulons.",
		r.groups.RegulonFeatures, r.groups.RegulonCount()))
	r.addNote(fmt.Sprintf("%d features in %d modulons.",
		r.groups.ModulonFeatures, r.groups.DistinctModulons()))
}
