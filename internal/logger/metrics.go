package logger

import (
	"sort"
	"sync"
	"time"
)

// Metrics tracks counters, gauges and timings for one process. All methods
// are safe for concurrent use.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

// TimingStats summarises the durations recorded under one name.
type TimingStats struct {
	Count   int
	Total   time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Snapshot is a point-in-time copy of a Metrics.
type Snapshot struct {
	Counters map[string]int64
	Gauges   map[string]float64
	Timings  map[string]TimingStats
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter adds one to the named counter.
func (m *Metrics) IncrCounter(name string) {
	m.AddCounter(name, 1)
}

// AddCounter adds n to the named counter.
func (m *Metrics) AddCounter(name string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += n
}

// SetGauge overwrites the named gauge.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming appends one duration measurement.
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], d)
}

// Snapshot returns a deep copy with timing statistics computed.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Gauges:   make(map[string]float64, len(m.gauges)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}
	for k, v := range m.counters {
		s.Counters[k] = v
	}
	for k, v := range m.gauges {
		s.Gauges[k] = v
	}
	for name, ds := range m.timings {
		if len(ds) == 0 {
			continue
		}
		st := TimingStats{Count: len(ds), Min: ds[0], Max: ds[0]}
		for _, d := range ds {
			st.Total += d
			st.Min = min(st.Min, d)
			st.Max = max(st.Max, d)
		}
		st.Average = st.Total / time.Duration(len(ds))
		s.Timings[name] = st
	}
	return s
}

// Log writes the snapshot to l at debug level, one entry per metric.
func (m *Metrics) Log(l *Logger) {
	s := m.Snapshot()

	for _, name := range sortedKeys(s.Counters) {
		l.Debug("counter", Fields{"name": name, "value": s.Counters[name]})
	}
	for _, name := range sortedKeys(s.Gauges) {
		l.Debug("gauge", Fields{"name": name, "value": s.Gauges[name]})
	}
	for _, name := range sortedKeys(s.Timings) {
		st := s.Timings[name]
		l.Debug("timing", Fields{
			"name":    name,
			"count":   st.Count,
			"average": st.Average.String(),
			"min":     st.Min.String(),
			"max":     st.Max.String(),
		})
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IncrCounter increments a counter on the default tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// AddCounter adds to a counter on the default tracker.
func AddCounter(name string, n int64) {
	defaultMetrics.AddCounter(name, n)
}

// SetGauge sets a gauge on the default tracker.
func SetGauge(name string, value float64) {
	defaultMetrics.SetGauge(name, value)
}

// RecordTiming records a duration on the default tracker.
func RecordTiming(name string, d time.Duration) {
	defaultMetrics.RecordTiming(name, d)
}

// DefaultMetrics returns the process-wide tracker behind the package-level
// functions.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}

// LogMetrics writes the default tracker to the default logger.
func LogMetrics() {
	defaultMetrics.Log(Default())
}
