package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/facebook/dns/samplegen/stats"

	"github.com/stretchr/testify/require"
)

func TestJSONReportMetrics(t *testing.T) {
	metrics := &stats.Metrics{Elapsed: 2 * time.Second, Files: 3, RRSets: 7, Failures: 1, Durations: []float64{10, 20, 30, 40}}
	var out bytes.Buffer
	r := &JSONStatsReporter{Out: &out}
	require.NoError(t, r.Initialize())
	require.NoError(t, r.ReportMetrics(metrics))

	var decoded jsonPrintableMetrics
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, 2*time.Second, decoded.Elapsed)
	require.Equal(t, 3, decoded.Files)
	require.Equal(t, 7, decoded.RRSets)
	require.Equal(t, 1, decoded.Failures)
	require.Equal(t, float64(10), decoded.Min)
	require.Equal(t, float64(40), decoded.Max)
	require.Equal(t, float64(25), decoded.Average)
}
