package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ prometheus.Collector = (*PoolStatsCollector)(nil)

func describeAll(c *PoolStatsCollector) []*prometheus.Desc {
	ch := make(chan *prometheus.Desc, 20)
	c.Describe(ch)
	close(ch)

	descs := make([]*prometheus.Desc, 0, 20)
	for d := range ch {
		descs = append(descs, d)
	}
	return descs
}

func TestPoolStatsCollectorDescribe(t *testing.T) {
	// Describe works with a nil pool; only Collect touches pool.Stat().
	c := NewPoolStatsCollector(nil, "test-service")
	require.NotNil(t, c)

	descs := describeAll(c)
	assert.Len(t, descs, 12)
}

func TestPoolStatsCollectorDescriptorNames(t *testing.T) {
	c := NewPoolStatsCollector(nil, "test-service")
	descs := describeAll(c)

	expected := []string{
		"db_pool_acquired_connections",
		"db_pool_idle_connections",
		"db_pool_total_connections",
		"db_pool_max_connections",
		"db_pool_constructing_connections",
		"db_pool_acquire_count_total",
		"db_pool_acquire_duration_seconds_total",
		"db_pool_canceled_acquire_count_total",
		"db_pool_empty_acquire_count_total",
		"db_pool_new_connections_total",
		"db_pool_max_lifetime_destroy_total",
		"db_pool_max_idle_destroy_total",
	}

	for _, name := range expected {
		found := false
		for _, d := range descs {
			if strings.Contains(d.String(), name) {
				found = true
				break
			}
		}
		assert.True(t, found, "expected descriptor %q", name)
	}
}
