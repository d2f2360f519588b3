package metrics

var Dummy Registry = dummy{}

type dummy struct{}

func (dummy) WithPrefix(prefix string) Registry { return Dummy }

func (dummy) Counter(name string, labels Labels) Counter { return dummyMetric{} }

func (dummy) Gauge(name string, labels Labels) Gauge { return dummyMetric{} }

func (dummy) Histogram(name string, labels Labels, buckets []float64) Histogram {
	return dummyMetric{}
}

type dummyMetric struct{}

func (dummyMetric) Set(float64) {}

func (dummyMetric) Inc() {}

func (dummyMetric) Dec() {}

func (dummyMetric) Add(float64) {}

func (dummyMetric) Sub(float64) {}

func (dummyMetric) Observe(float64) {}
