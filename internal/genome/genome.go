// Package genome provides the reference genome model used to annotate
// cluster members, with loaders for JSON exchange files and DuckDB
// feature databases.
package genome

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Feature is one genome feature (a peg) with its annotation data.
type Feature struct {
	ID         string
	Gene       string
	BNumber    string
	Function   string
	Subsystems []string
}

// Genome is a reference genome: an id, a name, and a feature map.
type Genome struct {
	ID       string
	Name     string
	features map[string]*Feature
}

// New creates an empty genome.
func New(id, name string) *Genome {
	return &Genome{ID: id, Name: name, features: make(map[string]*Feature)}
}

// AddFeature adds a feature to the genome.
func (g *Genome) AddFeature(f *Feature) {
	g.features[f.ID] = f
}

// Feature returns the feature with the given id, or nil when the genome
// does not contain it.
func (g *Genome) Feature(id string) *Feature {
	return g.features[id]
}

// Features returns all features in the genome, in no particular order.
func (g *Genome) Features() []*Feature {
	result := make([]*Feature, 0, len(g.features))
	for _, f := range g.features {
		result = append(result, f)
	}
	return result
}

// FeatureCount returns the number of features in the genome.
func (g *Genome) FeatureCount() int {
	return len(g.features)
}

// Load reads a genome from the given path, choosing the loader by file
// extension: .duckdb and .db open as DuckDB feature databases, everything
// else parses as a JSON exchange file.
func Load(path string) (*Genome, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".db":
		return LoadDuckDB(path)
	default:
		return LoadJSON(path)
	}
}

// String identifies the genome in log messages.
func (g *Genome) String() string {
	if g.Name == "" {
		return g.ID
	}
	return fmt.Sprintf("%s (%s)", g.ID, g.Name)
}
