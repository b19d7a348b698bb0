package cache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordHitsAndMisses(t *testing.T) {
	reg := prometheus.NewRegistry()
	cc := NewConnectionCache(16, time.Hour, time.Hour, WithMetrics(reg))

	certPEM, _ := generateCertPEM(t, "metrics.example.com")
	ref := "data:" + certPEM
	_, err := cc.Fetch(CertFamily, ref, nil)
	require.NoError(t, err)
	_, err = cc.Fetch(CertFamily, ref, nil)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	require.True(t, found["sslcache_hits_total"])
	require.True(t, found["sslcache_misses_total"])
}

func TestNoopMetricsNeverPanics(t *testing.T) {
	var m metricsSink = noopMetrics{}
	m.incHit(CertFamily)
	m.incMiss(CertFamily)
	m.incEvict(CertFamily)
	m.incCreate(CertFamily)
	m.incInherit(CertFamily)
	m.setEntries(CertFamily, 5)
}
