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
	"github.com/facebook/dns/samplegen/stats"

	log "github.com/sirupsen/logrus"
)

// LogStatsReporter is a reporter that reports to log
type LogStatsReporter struct{}

// Initialize does nothing, just to meet the interface requirements
func (r *LogStatsReporter) Initialize() error {
	return nil
}

// ReportMetrics sends metric to log
func (r *LogStatsReporter) ReportMetrics(metrics *stats.Metrics) error {
	aggregated := metrics.AggregateDurations()
	log.Infof(
		`Conversion Time Data:(ok/failed: %v/%v) Max: %v Min: %v Mean: %v Median: %v Upper Quartile: %v Lower Quartile: %v`,
		metrics.Files, metrics.Failures, toTime(aggregated.Max), toTime(aggregated.Min), toTime(aggregated.Mean),
		toTime(aggregated.Median), toTime(aggregated.Upperq), toTime(aggregated.Lowerq),
	)
	log.Infof("Input files: Converted: %v Failed: %v", metrics.Files, metrics.Failures)
	log.Infof("Sample files written: %v", metrics.RRSets)
	log.Infof("Elapsed: %v", metrics.Elapsed)
	return nil
}
