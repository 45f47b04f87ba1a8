package freq

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedtk/clustereport/internal/tabio"
)

func analyzeInput(t *testing.T, input string, opts Options) (*Analysis, error) {
	t.Helper()
	r, err := tabio.NewReaderFrom(strings.NewReader(input))
	require.NoError(t, err)
	return Analyze(r, "corr", opts, nil)
}

func TestAnalyze_Buckets(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id\tcorr\n")
	// Four values in [-1,1): two in the top bucket, one each in two others.
	for i, v := range []float64{-0.95, 0.05, 0.92, 0.97} {
		fmt.Fprintf(&sb, "r%d\t%g\n", i, v)
	}
	a, err := analyzeInput(t, sb.String(), Options{Buckets: 10, Min: -1, Max: 1})
	require.NoError(t, err)

	assert.Equal(t, 4, a.Count)
	assert.Zero(t, a.Errors)
	require.Len(t, a.Actual, 10)
	assert.InDelta(t, 0.25, a.Actual[0], 1e-9) // -0.95
	assert.InDelta(t, 0.25, a.Actual[5], 1e-9) // 0.05
	assert.InDelta(t, 0.5, a.Actual[9], 1e-9)  // 0.92 and 0.97
	assert.InDelta(t, 1.0, a.Limits[9], 1e-9)

	// The actual fractions total 1.
	total := 0.0
	for _, f := range a.Actual {
		total += f
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestAnalyze_BoundaryValueFallsInLowerBucket(t *testing.T) {
	// -0.8 sits exactly on the first bucket's limit and belongs to it.
	input := "corr\n-0.8\n-0.8\n"
	a, err := analyzeInput(t, input, Options{Buckets: 10, Min: -1, Max: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a.Actual[0], 1e-9)
}

func TestAnalyze_MaxValueCountsInTopBucket(t *testing.T) {
	input := "corr\n1.0\n0.0\n"
	a, err := analyzeInput(t, input, Options{Buckets: 10, Min: -1, Max: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Count)
	assert.InDelta(t, 0.5, a.Actual[9], 1e-9)
}

func TestAnalyze_RejectsBadValues(t *testing.T) {
	input := "corr\n0.5\nNaN\n+Inf\n7.5\nnot-a-number\n"
	a, err := analyzeInput(t, input, Options{Buckets: 10, Min: -1, Max: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Count)
	assert.Equal(t, 4, a.Errors)
}

func TestAnalyze_ExpectedMassSumsToRange(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("corr\n")
	for i := -40; i <= 40; i++ {
		fmt.Fprintf(&sb, "%g\n", float64(i)/50)
	}
	a, err := analyzeInput(t, sb.String(), Options{Buckets: 20, Min: -1, Max: 1, Midpoint: true})
	require.NoError(t, err)

	// With a midpoint-forced mean the expected distribution is symmetric.
	assert.InDelta(t, a.Expected[0], a.Expected[19], 1e-9)
	assert.InDelta(t, 0.0, a.Mean, 1e-9)
	assert.Greater(t, a.StdDev, 0.0)
}

func TestAnalyze_Validation(t *testing.T) {
	_, err := analyzeInput(t, "corr\n0.5\n", Options{Buckets: 5, Min: -1, Max: 1})
	assert.ErrorContains(t, err, "bucket count")

	_, err = analyzeInput(t, "corr\n0.5\n", Options{Buckets: 10, Min: 1, Max: -1})
	assert.ErrorContains(t, err, "range maximum")

	_, err = analyzeInput(t, "other\n0.5\n", Options{Buckets: 10, Min: -1, Max: 1})
	assert.Error(t, err)
}

func TestAnalysis_Write(t *testing.T) {
	a, err := analyzeInput(t, "corr\n0.1\n0.2\n", Options{Buckets: 10, Min: 0, Max: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := tabio.NewWriterTo(&buf, "limit", "expected", "actual")
	a.Write(w)
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "limit\texpected\tactual", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.1000\t"))
}