package report

import (
	"fmt"
	"io"

	"github.com/seedtk/clustereport/internal/cluster"
)

// Reporter formats a cluster group for output. The lifecycle is strict:
// ScanGroup once, WriteHeader once, WriteCluster once per cluster in the
// order supplied by the caller, then Close.
type Reporter interface {
	// ScanGroup is the bulk pre-fetch hook, called before any output.
	// Reporters that need no external bulk step do nothing here.
	ScanGroup(group *cluster.Group) error
	// WriteHeader emits the report preamble and resets running counters.
	WriteHeader() error
	// WriteCluster formats one cluster. Trivial clusters (size <= 1) are
	// skipped and do not consume a display identifier.
	WriteCluster(cl *cluster.Cluster) error
	// Close emits the summary, flushes output, and releases resources.
	Close() error
}

// Type names a report output format. The set is closed: a new output
// format means a new Type and a new reporter, not changes to an existing
// one.
type Type string

// The supported report types.
const (
	TypeIndented Type = "indented"
	TypeRaw      Type = "raw"
	TypeTabular  Type = "tabular"
	TypeGenome   Type = "genome"
	TypeFeatures Type = "features"
	TypeSamples  Type = "samples"
)

// Types lists every supported report type.
func Types() []Type {
	return []Type{TypeIndented, TypeRaw, TypeTabular, TypeGenome, TypeFeatures, TypeSamples}
}

// ParseType validates a report type name.
func ParseType(name string) (Type, error) {
	for _, t := range Types() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown report type %q", ErrConfig, name)
}

// New creates a reporter of the given type writing to out.
func New(t Type, cfg *Config, out io.Writer) (Reporter, error) {
	switch t {
	case TypeIndented:
		return newIndentedReporter(out), nil
	case TypeRaw:
		return newRawReporter(out), nil
	case TypeTabular:
		return newTabularReporter(out), nil
	case TypeGenome:
		return newGenomeReporter(cfg, out)
	case TypeFeatures:
		return newFeaturesReporter(cfg, out)
	case TypeSamples:
		return newSamplesReporter(cfg, out)
	default:
		return nil, fmt.Errorf("%w: unknown report type %q", ErrConfig, t)
	}
}

// Run drives the full report lifecycle over a cluster group.
func Run(r Reporter, group *cluster.Group) error {
	if err := r.ScanGroup(group); err != nil {
		return fmt.Errorf("scan cluster group: %w", err)
	}
	if err := r.WriteHeader(); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, cl := range group.Clusters {
		if err := r.WriteCluster(cl); err != nil {
			return fmt.Errorf("write cluster %s: %w", cl.ID, err)
		}
	}
	if err := r.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// displayTracker assigns the sequential CL1, CL2, ... display identifiers
// shared by every report type. Trivial clusters consume no identifier and
// update no counters.
type displayTracker struct {
	clNum      int
	nonTrivial int
	coverage   int
}

// reset clears the tracker for a new report.
func (t *displayTracker) reset() {
	t.clNum = 0
	t.nonTrivial = 0
	t.coverage = 0
}

// next returns the display identifier for a cluster. The second return is
// false for trivial clusters, which must be skipped.
func (t *displayTracker) next(cl *cluster.Cluster) (string, bool) {
	if cl.Size() <= 1 {
		return "", false
	}
	t.clNum++
	t.nonTrivial++
	t.coverage += cl.Size()
	return fmt.Sprintf("CL%d", t.clNum), true
}
