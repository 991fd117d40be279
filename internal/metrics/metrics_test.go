package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordExtraction(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordExtraction(3400, 48000)
	})
}

func TestRecordJoin(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name       string
		joined     int
		mismatched int
	}{
		{
			name:       "all joined",
			joined:     48000,
			mismatched: 0,
		},
		{
			name:       "some mismatches",
			joined:     47990,
			mismatched: 10,
		},
		{
			name:       "empty run",
			joined:     0,
			mismatched: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordJoin(tt.joined, tt.mismatched)
			})
		})
	}
}

func TestRecordStageDuration(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordStageDuration("extract", 12.5)
		RecordStageDuration("pace", 0.8)
		RecordStageDuration("roi", 1.2)
	})
}

func TestRecordRunOutcome(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRunOutcome("success")
		RecordRunOutcome("failure")
	})
}

func TestUpdatePedigreeCacheSize(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdatePedigreeCacheSize(1200)
		UpdatePedigreeCacheSize(0)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordJoin(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordJoin(48000, 10)
	}
}
