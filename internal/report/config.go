// Package report implements the cluster report engine: a shared lifecycle
// driven once per cluster group, with one reporter strategy per output
// format.
package report

import "errors"

// ErrConfig marks construction-time configuration failures, such as a
// report type missing a required input file. It is distinct from run-time
// I/O errors so callers can tell a bad invocation from a bad run.
var ErrConfig = errors.New("invalid report configuration")

// DefaultBatchSize bounds remote metadata queries when the configuration
// does not set a batch size.
const DefaultBatchSize = 200

// Config carries the report parameters supplied by the command processor.
// Reporters read it at construction and never modify it.
type Config struct {
	// GenomeFile is the reference genome path. Required by the genome and
	// features report types.
	GenomeFile string
	// GroupFile is the feature grouping file path. Required by the
	// features report type.
	GroupFile string
	// Method names the clustering method used upstream.
	Method string
	// MinSimilarity is the clustering similarity threshold.
	MinSimilarity float64
	// TitlePrefix, when set, is prepended to the report title.
	TitlePrefix string
	// MaxSize is the maximum allowed cluster size, zero for unlimited.
	MaxSize int
	// BatchSize bounds remote metadata queries, zero for the default.
	BatchSize int
	// SubFile, when set, receives the subsystem identifier mapping at
	// close time.
	SubFile string
	// NcbiBaseURL overrides the NCBI E-utilities endpoint. Empty selects
	// the production service.
	NcbiBaseURL string
}

// batchSize returns the effective remote query batch size.
func (c *Config) batchSize() int {
	if c.BatchSize > 0 {
		return c.BatchSize
	}
	return DefaultBatchSize
}
