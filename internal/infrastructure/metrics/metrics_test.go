package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locus-portfolio/locus-backend/internal/application/services/cache"
)

func TestKeyKind(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "folder:work/locus", want: "folder"},
		{key: "collection:photography", want: "collection"},
		{key: "plain", want: "other"},
		{key: ":x", want: "other"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyKind(tt.key))
		})
	}
}

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordLookup("folder:a", cache.LookupHit)
	m.RecordLookup("folder:b", cache.LookupHit)
	m.RecordLookup("collection:photography", cache.LookupMiss)
	m.ObserveAPICall("search", 10*time.Millisecond, nil)
	m.ObserveAPICall("search", 10*time.Millisecond, errors.New("boom"))
	m.ObserveHTTPRequest("GET", "/api/health", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("folder", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("collection", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiErrors.WithLabelValues("search")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/health", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.apiDuration))
}

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	second.RecordLookup("folder:a", cache.LookupMiss)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.cacheRequests.WithLabelValues("folder", "miss")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLookup("folder:a", cache.LookupHit)
		m.ObserveAPICall("search", time.Second, nil)
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
	})
}
