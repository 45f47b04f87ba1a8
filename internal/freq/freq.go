// Package freq analyzes the frequency distribution of a correlation
// column, comparing the observed bucket frequencies against a normal
// distribution to show where high correlations become abnormally common.
package freq

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/seedtk/clustereport/internal/tabio"
)

// Options controls the analysis.
type Options struct {
	// Buckets is the number of buckets the range is divided into. Must be
	// at least 10.
	Buckets int
	// Min and Max bound the theoretical input range, not the observed one.
	Min float64
	Max float64
	// Midpoint forces the expected distribution's mean to the midpoint of
	// the range instead of the observed mean.
	Midpoint bool
}

// Analysis is the result of bucketing one correlation column.
type Analysis struct {
	// Limits[i] is the upper bound of bucket i; bucket i holds values in
	// (Limits[i-1], Limits[i]].
	Limits []float64
	// Expected[i] is the normal-distribution probability mass for bucket i.
	Expected []float64
	// Actual[i] is the observed fraction of values in bucket i.
	Actual []float64
	// Count and Errors tally usable and rejected observations.
	Count  int
	Errors int
	// Mean and StdDev describe the observed values.
	Mean   float64
	StdDev float64
}

// Analyze buckets the named column of a tab-delimited input. Non-finite
// and out-of-range values are counted as errors and skipped, never fatal.
func Analyze(r *tabio.Reader, column string, opts Options, logger *zap.Logger) (*Analysis, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Buckets < 10 {
		return nil, fmt.Errorf("bucket count must be 10 or more")
	}
	if opts.Max <= opts.Min {
		return nil, fmt.Errorf("range maximum must be greater than the minimum")
	}
	colIdx, err := r.FieldIndex(column)
	if err != nil {
		return nil, err
	}

	width := (opts.Max - opts.Min) / float64(opts.Buckets)
	a := &Analysis{
		Limits:   make([]float64, opts.Buckets),
		Expected: make([]float64, opts.Buckets),
		Actual:   make([]float64, opts.Buckets),
	}
	buckets := make([]int, opts.Buckets)
	// Multiplying here keeps roundoff from accumulating across limits.
	for i := range a.Limits {
		a.Limits[i] = float64(i+1)*width + opts.Min
	}

	// Welford running statistics.
	var mean, m2 float64
	for {
		line, err := r.Next()
		if err != nil {
			return nil, err
		}
		if line == nil {
			break
		}
		value, err := line.GetFloat(colIdx)
		if err != nil || !isFinite(value) {
			a.Errors++
			continue
		}
		if value < opts.Min || value > opts.Max {
			logger.Warn("value out of range", zap.Float64("value", value))
			a.Errors++
			continue
		}
		idx := int((value - opts.Min) / width)
		// Buckets are upper-inclusive, so a value sitting exactly on a
		// limit belongs to the bucket below it.
		if idx >= opts.Buckets {
			idx = opts.Buckets - 1
		} else if idx > 0 && value <= a.Limits[idx-1] {
			idx--
		}
		buckets[idx]++
		a.Count++
		if a.Count%5000 == 0 {
			logger.Info("observations processed", zap.Int("count", a.Count))
		}
		delta := value - mean
		mean += delta / float64(a.Count)
		m2 += delta * (value - mean)
	}
	logger.Info("input complete", zap.Int("observations", a.Count), zap.Int("errors", a.Errors))
	if a.Count == 0 {
		return nil, fmt.Errorf("no usable observations in column %q", column)
	}

	a.Mean = mean
	if a.Count > 1 {
		a.StdDev = math.Sqrt(m2 / float64(a.Count-1))
	}
	usableMean := a.Mean
	if opts.Midpoint {
		usableMean = (opts.Max + opts.Min) / 2
	}

	obsCount := float64(a.Count)
	oldExpected := normalCDF(opts.Min, usableMean, a.StdDev)
	for i := range buckets {
		newExpected := normalCDF(a.Limits[i], usableMean, a.StdDev)
		a.Expected[i] = newExpected - oldExpected
		a.Actual[i] = float64(buckets[i]) / obsCount
		oldExpected = newExpected
	}
	return a, nil
}

// Write emits the bucket table as tab-delimited limit/expected/actual rows.
func (a *Analysis) Write(w *tabio.Writer) {
	for i := range a.Limits {
		w.WriteRecord(
			fmt.Sprintf("%.4f", a.Limits[i]),
			fmt.Sprintf("%.6f", a.Expected[i]),
			fmt.Sprintf("%.6f", a.Actual[i]),
		)
	}
}

// normalCDF is the cumulative probability of a normal distribution at x.
func normalCDF(x, mean, stdDev float64) float64 {
	if stdDev == 0 {
		if x < mean {
			return 0
		}
		return 1
	}
	return 0.5 * (1 + math.Erf((x-mean)/(stdDev*math.Sqrt2)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
