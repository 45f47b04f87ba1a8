package report

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/seedtk/clustereport/internal/cluster"
	"github.com/seedtk/clustereport/internal/counter"
	"github.com/seedtk/clustereport/internal/ncbi"
)

// Link formats for the sample report cells.
const (
	sraTermURL = "https://www.ncbi.nlm.nih.gov/sra/?term=%s"
	projectURL = "https://trace.ncbi.nlm.nih.gov/Traces/sra/?study=%s"
	pubmedURL  = "https://pubmed.ncbi.nlm.nih.gov/%s/"
)

// sampleSource fetches batched SRA metadata. It is satisfied by
// *ncbi.Connection and stubbed in tests.
type sampleSource interface {
	Fetch(q *ncbi.ListQuery) ([]ncbi.ExperimentPackage, error)
}

// sampleInfo is the cached metadata derived from one SRA record, shared by
// every run accession in the record's run set.
type sampleInfo struct {
	title     string
	titleHref string
	expText   string
	expHref   string
	projectID string
	pubmed    string
}

// newSampleInfo extracts the report fields from one SRA record.
func newSampleInfo(pkg *ncbi.ExperimentPackage) *sampleInfo {
	info := &sampleInfo{title: "invalid"}
	if accession := pkg.Experiment.Accession; accession != "" {
		expHref := fmt.Sprintf(sraTermURL, accession)
		title := pkg.Experiment.Title
		if title == "" {
			title = accession
		}
		info.title = title
		info.titleHref = expHref
		// The experiment page is the default link target; an explicit
		// URL link on the record overrides it.
		info.expText = accession
		info.expHref = expHref
	}
	if len(pkg.Experiment.Links) > 0 {
		link := pkg.Experiment.Links[0]
		info.expText = link.Label
		info.expHref = link.URL
	}
	info.projectID = pkg.Study.PrimaryID
	info.pubmed = pkg.Study.Pubmed()
	return info
}

// samplesReporter produces the document report for clusters of SRA
// samples, enriched with metadata fetched from NCBI during the pre-scan.
type samplesReporter struct {
	*htmlReporter
	source    sampleSource
	batchSize int
	samples   map[string]*sampleInfo

	// Report-wide group counts for the closing summary.
	projectCounts *counter.CountMap
	pubmedCounts  *counter.CountMap
}

var samplesColumns = []string{"sample_id", "experiment", "project", "pubmed", "title"}

func newSamplesReporter(cfg *Config, out io.Writer) (*samplesReporter, error) {
	conn := ncbi.NewConnection()
	if cfg.NcbiBaseURL != "" {
		conn.SetBaseURL(cfg.NcbiBaseURL)
	}
	return newSamplesReporterWithSource(cfg, out, conn), nil
}

func newSamplesReporterWithSource(cfg *Config, out io.Writer, source sampleSource) *samplesReporter {
	r := &samplesReporter{
		htmlReporter:  newHTMLReporter(cfg, out),
		source:        source,
		batchSize:     cfg.batchSize(),
		samples:       make(map[string]*sampleInfo),
		projectCounts: counter.New(),
		pubmedCounts:  counter.New(),
	}
	r.tabler = r
	return r
}

// ScanGroup fetches metadata for every sample in the group, in batches
// bounded by the configured batch size, and fills the sample cache before
// any cluster is formatted. A failed batch is fatal for the report.
func (r *samplesReporter) ScanGroup(group *cluster.Group) error {
	r.logger.Info("scanning cluster group for sample data from NCBI")
	q := ncbi.NewListQuery("sra")
	for _, sample := range group.Members() {
		if q.Size() >= r.batchSize {
			if err := r.runQuery(q); err != nil {
				return err
			}
		}
		q.Add(sample)
	}
	return r.runQuery(q)
}

// runQuery runs one batch and caches a sampleInfo for every run accession
// found. Later accessions overwrite earlier ones.
func (r *samplesReporter) runQuery(q *ncbi.ListQuery) error {
	packages, err := r.source.Fetch(q)
	if err != nil {
		return fmt.Errorf("fetch sample metadata: %w", err)
	}
	count := 0
	for i := range packages {
		info := newSampleInfo(&packages[i])
		for _, run := range packages[i].RunSet.Runs {
			if run.Accession != "" {
				r.samples[run.Accession] = info
				count++
			}
		}
	}
	r.logger.Info("sample batch cached", zap.Int("samples", count))
	return nil
}

func (r *samplesReporter) formatClusterTable(cl *cluster.Cluster) *htmlTable {
	projCounts := counter.New()
	paperCounts := counter.New()
	badSamples := 0

	table := newTable(samplesColumns...)
	for _, member := range cl.Members {
		row := htmlRow{{Text: member}}
		info := r.samples[member]
		if info == nil {
			// The sample is no longer in NCBI. Not an error; the row
			// says so and the report goes on.
			badSamples++
			row = append(row, htmlCell{Text: "not found", Em: true},
				htmlCell{}, htmlCell{}, htmlCell{})
		} else {
			row = append(row, htmlCell{Text: info.expText, Href: info.expHref})
			row = append(row, groupCell(info.projectID, projectURL, projCounts))
			row = append(row, groupCell(info.pubmed, pubmedURL, paperCounts))
			titleCell := htmlCell{Text: info.title, Href: info.titleHref, Big: true}
			if info.titleHref == "" {
				titleCell.Em = true
			}
			row = append(row, titleCell)
		}
		table.addRow(row)
	}
	if badSamples > 0 {
		r.addEvidenceNote(fmt.Sprintf("%d samples are no longer in NCBI.", badSamples))
	}
	r.projectCounts.Accumulate(projCounts)
	r.addEvidence("project", "projects", projCounts)
	r.pubmedCounts.Accumulate(paperCounts)
	r.addEvidence("pubmed paper", "pubmed papers", paperCounts)
	return table
}

// groupCell builds the cell for one group id, counting the id when
// present. A missing id renders as an empty cell.
func groupCell(groupID, linkFormat string, counts *counter.CountMap) htmlCell {
	if groupID == "" {
		return htmlCell{}
	}
	counts.Count(groupID)
	return htmlCell{Text: groupID, Href: fmt.Sprintf(linkFormat, groupID)}
}

func (r *samplesReporter) addNotes() {
	r.addCountNote(r.projectCounts, "projects")
	r.addCountNote(r.pubmedCounts, "pubmed papers")
}

// addCountNote summarizes one report-wide group dimension.
func (r *samplesReporter) addCountNote(groupCounts *counter.CountMap, groupName string) {
	best, ok := groupCounts.Best()
	if !ok {
		return
	}
	r.addNote(fmt.Sprintf("%d samples found in %d %s. Biggest was %s.",
		groupCounts.Sum(), groupCounts.Len(), groupName, best.Key))
}
