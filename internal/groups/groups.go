// Package groups reads the feature grouping file that assigns regulons,
// operons, modulons, and subsystems to genome features.
package groups

import (
	"fmt"
	"strings"

	"github.com/seedtk/clustereport/internal/tabio"
)

// Grouping file column layout.
const (
	colFeatureID  = 0
	colModulons   = 1
	colRegulon    = 2
	colOperon     = 3
	colSubsystems = 4
)

// FeatureGroups holds the group assignments for one feature. A regulon of
// zero means unassigned; empty slices and strings mean the same for the
// other dimensions.
type FeatureGroups struct {
	Regulon    int
	Operon     string
	Modulons   []string
	Subsystems []string
}

// Map holds the grouping assignments for all features, plus the tallies of
// features assigned to each dimension used for report summary notes.
type Map struct {
	features map[string]*FeatureGroups

	// Number of features with each dimension assigned.
	OperonFeatures    int
	ModulonFeatures   int
	RegulonFeatures   int
	SubsystemFeatures int
}

// Load reads a grouping file. When keep is non-nil, rows whose feature id
// fails the filter are skipped, so callers can restrict the map to the
// features of a reference genome.
func Load(path string, keep func(fid string) bool) (*Map, error) {
	r, err := tabio.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("open group file: %w", err)
	}
	defer r.Close()

	m := &Map{features: make(map[string]*FeatureGroups)}
	for {
		line, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read group file: %w", err)
		}
		if line == nil {
			break
		}
		fid := line.Get(colFeatureID)
		if fid == "" || (keep != nil && !keep(fid)) {
			continue
		}
		fg := &FeatureGroups{}
		regulon, err := line.GetInt(colRegulon)
		if err != nil {
			return nil, fmt.Errorf("group file feature %s: %w", fid, err)
		}
		if regulon > 0 {
			fg.Regulon = regulon
			m.RegulonFeatures++
		}
		if operon := strings.TrimSpace(line.Get(colOperon)); operon != "" {
			fg.Operon = operon
			m.OperonFeatures++
		}
		if modulons := splitList(line.Get(colModulons)); len(modulons) > 0 {
			fg.Modulons = modulons
			m.ModulonFeatures++
		}
		if subsystems := splitList(line.Get(colSubsystems)); len(subsystems) > 0 {
			fg.Subsystems = subsystems
			m.SubsystemFeatures++
		}
		m.features[fid] = fg
	}
	return m, nil
}

// splitList splits a comma-separated cell, dropping blank entries.
func splitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(cell, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// Get returns the groups for a feature, or nil when the feature has none.
func (m *Map) Get(fid string) *FeatureGroups {
	return m.features[fid]
}

// DistinctOperons returns the number of distinct operon labels observed.
func (m *Map) DistinctOperons() int {
	seen := make(map[string]struct{})
	for _, fg := range m.features {
		if fg.Operon != "" {
			seen[fg.Operon] = struct{}{}
		}
	}
	return len(seen)
}

// DistinctModulons returns the number of distinct modulon labels observed.
func (m *Map) DistinctModulons() int {
	seen := make(map[string]struct{})
	for _, fg := range m.features {
		for _, mod := range fg.Modulons {
			seen[mod] = struct{}{}
		}
	}
	return len(seen)
}

// DistinctSubsystems returns the number of distinct subsystem labels observed.
func (m *Map) DistinctSubsystems() int {
	seen := make(map[string]struct{})
	for _, fg := range m.features {
		for _, sub := range fg.Subsystems {
			seen[sub] = struct{}{}
		}
	}
	return len(seen)
}

// RegulonCount returns the number of regulons, computed as the maximum
// regulon index plus one, or zero when no feature has a regulon.
func (m *Map) RegulonCount() int {
	max := -1
	for _, fg := range m.features {
		if fg.Regulon > max {
			max = fg.Regulon
		}
	}
	if max < 0 || m.RegulonFeatures == 0 {
		return 0
	}
	return max + 1
}
