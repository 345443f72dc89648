package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSPARQL("ok", time.Second)
		m.CountPubMedBatch("error")
		m.CountHTTPRequest("/health", 200)
	})
}

func TestMetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSPARQL("ok", 120*time.Millisecond)
	m.CountPubMedBatch("ok")
	m.CountPubMedBatch("ok")
	m.CountHTTPRequest("/concepts", 200)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PubMedBatches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/concepts", "200")))

	n, err := testutil.GatherAndCount(reg, "rhea_beacon_sparql_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
