/*
Copyright (c) Meta Platforms, Inc. and affiliates.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/facebook/dns/samplegen/stats"
)

// JSONStatsReporter is a reporter that reports to stdout in json format
type JSONStatsReporter struct {
	// Out defaults to os.Stdout when nil
	Out io.Writer
}

type jsonPrintableMetrics struct {
	// Elapsed is the elapsed time duration
	Elapsed time.Duration
	// Files is the number of input files converted successfully.
	Files int
	// RRSets is the number of sample files written.
	RRSets int
	// Failures is the number of input files that failed to convert.
	Failures int
	Min      float64
	Max      float64
	Mean     float64
	Median   float64
	Lowerq   float64
	Upperq   float64
	Average  float64
}

// Initialize does nothing, just to meet the interface requirements
func (r *JSONStatsReporter) Initialize() error {
	return nil
}

// ReportMetrics sends metric to stdout as json
func (r *JSONStatsReporter) ReportMetrics(metrics *stats.Metrics) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	aggregated := metrics.AggregateDurations()
	return json.NewEncoder(out).Encode(jsonPrintableMetrics{
		Elapsed:  metrics.Elapsed,
		Files:    metrics.Files,
		RRSets:   metrics.RRSets,
		Failures: metrics.Failures,
		Min:      aggregated.Min,
		Max:      aggregated.Max,
		Mean:     aggregated.Mean,
		Median:   aggregated.Median,
		Lowerq:   aggregated.Lowerq,
		Upperq:   aggregated.Upperq,
		Average:  aggregated.Average,
	})
}
