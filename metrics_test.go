package goToken

import (
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goToken/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricIssueSuccess)

	assert.Zero(t, m.Value(MetricIssueSuccess))
	assert.Empty(t, m.Snapshot().Counters)
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricIssueSuccess)
	m.Inc(MetricIssueSuccess)
	m.Inc(MetricIssueSuccess)

	assert.EqualValues(t, 3, m.Value(MetricIssueSuccess))
}

func TestMetricsIgnoresUnknownID(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(metricIDCount + 1)
	assert.Zero(t, m.Value(metricIDCount+1))
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricValidateSuccess)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, goroutines*perG, m.Value(MetricValidateSuccess))
}

func TestMetricsLatencyHistogramBuckets(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	for _, d := range []time.Duration{
		5 * time.Microsecond,
		20 * time.Microsecond,
		40 * time.Microsecond,
		80 * time.Microsecond,
		200 * time.Microsecond,
		900 * time.Microsecond,
		3 * time.Millisecond,
		time.Second,
	} {
		m.Observe(MetricValidateLatency, d)
	}
	// only the validate histogram exists
	m.Observe(MetricIssueSuccess, time.Microsecond)

	snap := m.Snapshot()
	assert.Equal(t, []uint64{1, 1, 1, 1, 1, 1, 1, 1}, snap.Histograms[MetricValidateLatency])
	assert.NotContains(t, snap.Counters, MetricValidateLatency)
}

func TestMetricsLatencyRequiresFlag(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricValidateLatency, time.Microsecond)
	assert.False(t, m.LatencyEnabled())
	assert.NotContains(t, m.Snapshot().Histograms, MetricValidateLatency)
}

func TestEveryRejectionKindHasACounter(t *testing.T) {
	seen := map[MetricID]bool{}
	for _, k := range jwt.Kinds() {
		id, ok := RejectionMetric(k)
		require.True(t, ok, "kind %s has no counter", k)
		require.False(t, seen[id], "counter reused for %s", k)
		seen[id] = true
	}
	_, ok := RejectionMetric(KindNone)
	assert.False(t, ok)
}
