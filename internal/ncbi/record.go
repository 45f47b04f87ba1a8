package ncbi

// The SRA EFetch response is an EXPERIMENT_PACKAGE_SET envelope with one
// EXPERIMENT_PACKAGE per experiment. Only the fields the reports consume
// are mapped; everything else in the record is ignored by the decoder.

type experimentPackageSet struct {
	Packages []ExperimentPackage `xml:"EXPERIMENT_PACKAGE"`
}

// ExperimentPackage is one hierarchical SRA record.
type ExperimentPackage struct {
	Experiment Experiment `xml:"EXPERIMENT"`
	Study      Study      `xml:"STUDY"`
	RunSet     RunSet     `xml:"RUN_SET"`
}

// Experiment describes the sequencing experiment itself.
type Experiment struct {
	Accession string    `xml:"accession,attr"`
	Title     string    `xml:"TITLE"`
	Links     []URLLink `xml:"EXPERIMENT_LINKS>EXPERIMENT_LINK>URL_LINK"`
}

// Study describes the project the experiment belongs to.
type Study struct {
	Accession string      `xml:"accession,attr"`
	PrimaryID string      `xml:"IDENTIFIERS>PRIMARY_ID"`
	Links     []StudyLink `xml:"STUDY_LINKS>STUDY_LINK"`
}

// StudyLink is a cross-reference from a study to an external database.
type StudyLink struct {
	XrefDB string `xml:"XREF_LINK>DB"`
	XrefID string `xml:"XREF_LINK>ID"`
}

// URLLink is a labeled hyperlink attached to an experiment.
type URLLink struct {
	Label string `xml:"LABEL"`
	URL   string `xml:"URL"`
}

// RunSet enumerates the runs (externally visible sample accessions) that
// map to one experiment record.
type RunSet struct {
	Runs []Run `xml:"RUN"`
}

// Run is a single sequencing run.
type Run struct {
	Accession string `xml:"accession,attr"`
}

// Pubmed returns the pubmed id cross-referenced by the study, or an empty
// string when the study has no pubmed link.
func (s *Study) Pubmed() string {
	for _, link := range s.Links {
		if link.XrefDB == "pubmed" {
			return link.XrefID
		}
	}
	return ""
}
