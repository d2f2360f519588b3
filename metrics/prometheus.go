package metrics

import (
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus lazily registers collectors on first use.
// Collectors with the same name must always be requested with the same label names.
type Prometheus struct {
	prefix   string
	registry *prometheus.Registry
	entries  map[string]prometheus.Collector
	mu       *sync.Mutex
}

func NewPrometheus() Prometheus {
	return Prometheus{
		registry: prometheus.NewRegistry(),
		entries:  make(map[string]prometheus.Collector),
		mu:       new(sync.Mutex),
	}
}

func (p Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p Prometheus) Gatherer() prometheus.Gatherer {
	return p.registry
}

func (p Prometheus) WithPrefix(prefix string) Registry {
	if p.prefix != "" {
		p.prefix += "_" + prefix
	} else {
		p.prefix = prefix
	}

	return p
}

func (p Prometheus) Counter(name string, labels Labels) Counter {
	collector := p.collector(name, func(name string) prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name}, labels.Keys())
	})

	return collector.(*prometheus.CounterVec).With(prometheus.Labels(labels))
}

func (p Prometheus) Gauge(name string, labels Labels) Gauge {
	collector := p.collector(name, func(name string) prometheus.Collector {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name}, labels.Keys())
	})

	return collector.(*prometheus.GaugeVec).With(prometheus.Labels(labels))
}

func (p Prometheus) Histogram(name string, labels Labels, buckets []float64) Histogram {
	collector := p.collector(name, func(name string) prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Buckets: buckets}, labels.Keys())
	})

	return collector.(*prometheus.HistogramVec).With(prometheus.Labels(labels))
}

func (p Prometheus) collector(name string, create func(name string) prometheus.Collector) prometheus.Collector {
	if p.prefix != "" {
		name = p.prefix + "_" + name
	}

	name = strings.ReplaceAll(name, ".", "_")
	p.mu.Lock()
	defer p.mu.Unlock()
	if collector, ok := p.entries[name]; ok {
		return collector
	}

	collector := create(name)
	p.registry.MustRegister(collector)
	p.entries[name] = collector
	return collector
}
