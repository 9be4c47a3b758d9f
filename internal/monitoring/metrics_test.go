package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementCacheMiss()
	m.RecordAnnotatorCall(true)
	m.RecordAnnotatorCall(false)
	m.IncrementAnalyses()
	m.IncrementRateLimitIPBlock()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.InDelta(t, 50.0, stats["error_rate_percent"], 1e-9)
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(2), stats["cache_misses"])
	assert.InDelta(t, 100.0/3.0, stats["cache_hit_rate_percent"].(float64), 1e-9)
	assert.Equal(t, int64(2), stats["annotator_calls"])
	assert.Equal(t, int64(1), stats["annotator_errors"])
	assert.Equal(t, int64(1), stats["analyses_completed"])
	assert.Equal(t, int64(1), stats["rate_limit_ip_blocks"])
}

func TestMetrics_Percentiles(t *testing.T) {
	m := NewMetrics()

	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(95))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}

	p50 := m.GetPercentileResponseTime(50)
	p99 := m.GetPercentileResponseTime(99)
	assert.True(t, p50 >= 45*time.Millisecond && p50 <= 55*time.Millisecond)
	assert.True(t, p99 >= 95*time.Millisecond)
	assert.True(t, p99 >= p50)
}

func TestMetrics_StatusDistribution(t *testing.T) {
	m := NewMetrics()

	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(429)

	dist := m.GetStatusCodeDistribution()
	assert.Equal(t, int64(2), dist[200])
	assert.Equal(t, int64(1), dist[429])
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.RecordResponseTime(time.Second)
	m.RecordRequestByStatus(500)

	m.Reset()

	stats := m.GetStats()
	assert.Equal(t, int64(0), stats["total_requests"])
	assert.Empty(t, m.GetStatusCodeDistribution())
	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(50))
}
