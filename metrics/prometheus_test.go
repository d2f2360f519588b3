package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"imagesgallery/metrics"
)

func TestPrometheus(t *testing.T) {
	registry := metrics.NewPrometheus()
	gallery := registry.WithPrefix("gallery").WithPrefix("http")
	gallery.Counter("requests", metrics.Labels{"status": "ok"}).Inc()
	gallery.Counter("requests", metrics.Labels{"status": "ok"}).Add(2)
	gallery.Counter("requests", metrics.Labels{"status": "not_found"}).Inc()
	gallery.Gauge("in.flight", nil).Set(4)
	gallery.Histogram("duration_seconds", nil, []float64{0.1, 1}).Observe(0.5)

	families, err := registry.Gatherer().Gather()
	assert.Nil(t, err)

	values := make(map[string][]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.Counter != nil:
				values[family.GetName()] = append(values[family.GetName()], metric.GetCounter().GetValue())
			case metric.Gauge != nil:
				values[family.GetName()] = append(values[family.GetName()], metric.GetGauge().GetValue())
			case metric.Histogram != nil:
				values[family.GetName()] = append(values[family.GetName()], float64(metric.GetHistogram().GetSampleCount()))
			}
		}
	}

	assert.Equal(t, map[string][]float64{
		"gallery_http_requests":         {1, 3},
		"gallery_http_in_flight":        {4},
		"gallery_http_duration_seconds": {1},
	}, values)
}

func TestDummy(t *testing.T) {
	registry := metrics.Dummy.WithPrefix("gallery")
	registry.Counter("requests", nil).Inc()
	registry.Gauge("in_flight", nil).Dec()
	registry.Histogram("duration_seconds", nil, nil).Observe(1)
}
