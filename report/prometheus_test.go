package report

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/facebook/dns/samplegen/stats"

	dto "github.com/prometheus/client_model/go"
)

func TestReportMetrics(t *testing.T) {
	metrics := &stats.Metrics{Elapsed: 100 * time.Second, Files: 4, RRSets: 9, Failures: 1, Durations: []float64{1, 2, 3}}
	r := &PrometheusMetricsReporter{Addr: ":0"}
	require.NoError(t, r.Initialize())
	r.ReportMetrics(metrics)
	requireMetricRegisteredAndHasExpectedValue(t, r.registry, "dns_samplegen_files_converted", 4)
	requireMetricRegisteredAndHasExpectedValue(t, r.registry, "dns_samplegen_files_failed", 1)
	requireMetricRegisteredAndHasExpectedValue(t, r.registry, "dns_samplegen_rrsets_written", 9)
	requireMetricRegisteredAndHasExpectedValue(t, r.registry, "dns_samplegen_duration_max", 3)
	requireMetricRegisteredAndHasExpectedValue(t, r.registry, "dns_samplegen_duration_min", 1)
	requireMetricRegisteredAndHasExpectedValue(t, r.registry, "dns_samplegen_duration_avg", 2)
}

// Watch mode reports as soon as the first conversion finishes, so the
// gauges have to be usable the moment Initialize returns.
func TestReportMetricsRightAfterInitialize(t *testing.T) {
	r := &PrometheusMetricsReporter{Addr: ":0"}
	require.NoError(t, r.Initialize())
	require.NotPanics(t, func() {
		require.NoError(t, r.ReportMetrics(&stats.Metrics{Elapsed: time.Second}))
	})
	requireMetricRegisteredAndHasExpectedValue(t, r.registry, "dns_samplegen_files_converted", 0)
}

func requireMetricRegisteredAndHasExpectedValue(t *testing.T, registry *prometheus.Registry, metricKey string, expectedValue float64) {
	metrics, err := registry.Gather()
	require.Nil(t, err)
	require.NotNil(t, metrics)
	found := false
	for _, metric := range metrics {
		if metric.GetName() == metricKey {
			found = true
			require.Equal(t, metric.GetType(), dto.MetricType_GAUGE)
			rawmetric := metric.GetMetric()[0]
			require.Equal(t, *rawmetric.Gauge.Value, expectedValue)
			break
		}
	}
	require.True(t, found)
}
