package stats

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Reporter is used to report the results of a conversion run
type Reporter interface {
	ReportMetrics(*Metrics) error
	Initialize() error
}

func average(samples []float64) float64 {
	total := float64(0)
	for _, x := range samples {
		total += x
	}
	return total / float64(len(samples))
}

// Metrics holds the basic metrics returned by the conversion engine
type Metrics struct {
	Elapsed time.Duration
	// Files is the number of input files converted successfully.
	Files int
	// RRSets is the number of sample files written.
	RRSets int
	// Failures is the number of input files that failed to convert.
	Failures int
	// Durations contain per input file conversion time
	Durations []float64
}

// FilesPerSecond returns the number of input files handled in one second.
func (m *Metrics) FilesPerSecond() (q float64) {
	e := m.Elapsed
	return float64(m.Files+m.Failures) / e.Seconds()
}

// DurationStats stores conversion time statistics
type DurationStats struct {
	Min     float64
	Max     float64
	Mean    float64
	Median  float64
	Lowerq  float64
	Upperq  float64
	Average float64
}

func newDurationStats() *DurationStats {
	return &DurationStats{0, 0, 0, 0, 0, 0, 0}
}

// AggregateDurations aggregates per file conversion time metrics
func (m *Metrics) AggregateDurations() *DurationStats {
	d := newDurationStats()
	sort.Float64s(m.Durations)
	if len(m.Durations) > 0 {
		d.Min = stat.Quantile(0.0, stat.Empirical, m.Durations, nil)
		d.Max = stat.Quantile(1.0, stat.Empirical, m.Durations, nil)
		d.Mean = stat.Mean(m.Durations, nil)
		d.Median = stat.Quantile(0.5, stat.Empirical, m.Durations, nil)
		d.Upperq = stat.Quantile(0.75, stat.Empirical, m.Durations, nil)
		d.Lowerq = stat.Quantile(0.25, stat.Empirical, m.Durations, nil)
		d.Average = average(m.Durations)
	}
	return d
}
