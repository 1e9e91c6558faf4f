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
	"net/http"

	"github.com/facebook/dns/samplegen/stats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	log "github.com/sirupsen/logrus"
)

// PrometheusMetricsReporter exports conversion run metrics as gauges
type PrometheusMetricsReporter struct {
	Addr                string
	registry            *prometheus.Registry
	filesGauge          prometheus.Gauge
	failedGauge         prometheus.Gauge
	rrsetsGauge         prometheus.Gauge
	maxDurationGauge    prometheus.Gauge
	meanDurationGauge   prometheus.Gauge
	medianDurationGauge prometheus.Gauge
	minDurationGauge    prometheus.Gauge
	avgDurationGauge    prometheus.Gauge
}

// Initialize sets up the gauges and starts the prometheus http server.
// The gauges exist once Initialize returns, so ReportMetrics is safe to
// call right away; only the http server runs in the background.
func (r *PrometheusMetricsReporter) Initialize() error {
	r.registry = prometheus.NewRegistry()
	r.filesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "files_converted",
		Help:      "Number of input files converted",
	})
	r.failedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "files_failed",
		Help:      "Number of input files that failed to convert",
	})
	r.rrsetsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "rrsets_written",
		Help:      "Number of wire-format sample files written",
	})
	r.maxDurationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "duration_max",
		Help:      "Max per file conversion time in nanoseconds",
	})
	r.meanDurationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "duration_mean",
		Help:      "Mean per file conversion time in nanoseconds",
	})
	r.medianDurationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "duration_median",
		Help:      "Median per file conversion time in nanoseconds",
	})
	r.minDurationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "duration_min",
		Help:      "Min per file conversion time in nanoseconds",
	})
	r.avgDurationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dns_samplegen",
		Name:      "duration_avg",
		Help:      "Average per file conversion time in nanoseconds",
	})

	r.registry.MustRegister(r.filesGauge)
	r.registry.MustRegister(r.failedGauge)
	r.registry.MustRegister(r.rrsetsGauge)
	r.registry.MustRegister(r.maxDurationGauge)
	r.registry.MustRegister(r.meanDurationGauge)
	r.registry.MustRegister(r.medianDurationGauge)
	r.registry.MustRegister(r.minDurationGauge)
	r.registry.MustRegister(r.avgDurationGauge)

	log.Infof("Starting prometheus metrics server at %q\n", r.Addr)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		r.registry,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics to support exemplars.
			EnableOpenMetrics: true,
		},
	))
	go func() {
		if err := http.ListenAndServe(r.Addr, mux); err != nil {
			log.Errorf("prometheus metrics server stopped: %v", err)
		}
	}()
	return nil
}

// ReportMetrics sets the gauges to the values of the last run
func (r *PrometheusMetricsReporter) ReportMetrics(metrics *stats.Metrics) error {
	aggregated := metrics.AggregateDurations()
	r.filesGauge.Set(float64(metrics.Files))
	r.failedGauge.Set(float64(metrics.Failures))
	r.rrsetsGauge.Set(float64(metrics.RRSets))
	r.avgDurationGauge.Set(aggregated.Average)
	r.maxDurationGauge.Set(aggregated.Max)
	r.meanDurationGauge.Set(aggregated.Mean)
	r.medianDurationGauge.Set(aggregated.Median)
	r.minDurationGauge.Set(aggregated.Min)
	return nil
}
