package genome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGenomeJSON = `{
  "id": "511145.183",
  "name": "Escherichia coli K-12 MG1655",
  "features": [
    {
      "id": "fig|511145.183.peg.1",
      "gene": "thrA",
      "b_number": "b0002",
      "function": "Aspartokinase / homoserine dehydrogenase",
      "subsystems": ["Threonine biosynthesis", "Amino acid metabolism"]
    },
    {
      "id": "fig|511145.183.peg.2",
      "gene": "thrB",
      "b_number": "b0003",
      "function": "Homoserine kinase"
    },
    {"gene": "ignored, no id"}
  ]
}`

func writeTestGenome(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genome.json")
	require.NoError(t, os.WriteFile(path, []byte(testGenomeJSON), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	g, err := LoadJSON(writeTestGenome(t))
	require.NoError(t, err)

	assert.Equal(t, "511145.183", g.ID)
	assert.Equal(t, 2, g.FeatureCount())

	f := g.Feature("fig|511145.183.peg.1")
	require.NotNil(t, f)
	assert.Equal(t, "thrA", f.Gene)
	assert.Equal(t, "b0002", f.BNumber)
	assert.Len(t, f.Subsystems, 2)

	f = g.Feature("fig|511145.183.peg.2")
	require.NotNil(t, f)
	assert.Empty(t, f.Subsystems)

	assert.Nil(t, g.Feature("fig|511145.183.peg.99"))
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	// A JSON path goes through the JSON loader.
	g, err := Load(writeTestGenome(t))
	require.NoError(t, err)
	assert.Equal(t, "Escherichia coli K-12 MG1655", g.Name)
}

func TestSubsystemRegistry(t *testing.T) {
	r := NewSubsystemRegistry()
	assert.Equal(t, "SS1", r.IDFor("Threonine biosynthesis"))
	assert.Equal(t, "SS2", r.IDFor("Histidine degradation"))
	// Repeats reuse the original identifier.
	assert.Equal(t, "SS1", r.IDFor("Threonine biosynthesis"))
	assert.Equal(t, "SS3", r.IDFor("Flagellar motility"))
	assert.Equal(t, 3, r.Len())

	assert.Equal(t, "Histidine degradation", r.Name("SS2"))
	assert.Equal(t, "", r.Name("SS9"))
	assert.Equal(t, "", r.Name("bogus"))
}

func TestSubsystemRegistry_Deterministic(t *testing.T) {
	names := []string{"alpha", "beta", "alpha", "gamma", "beta"}
	a := NewSubsystemRegistry()
	b := NewSubsystemRegistry()
	for _, n := range names {
		a.IDFor(n)
		b.IDFor(n)
	}
	for _, n := range names {
		assert.Equal(t, a.IDFor(n), b.IDFor(n))
	}
}

func TestSubsystemRegistry_Save(t *testing.T) {
	r := NewSubsystemRegistry()
	r.IDFor("alpha")
	r.IDFor("beta")

	path := filepath.Join(t.TempDir(), "submap.tbl")
	require.NoError(t, r.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "subsystem_id\tsubsystem_name\nSS1\talpha\nSS2\tbeta\n", string(data))
}
