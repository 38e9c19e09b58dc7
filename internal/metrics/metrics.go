package metrics

import (
	"sort"
	"sync"
	"time"
)

const (
	TaskProbe = "probe"
	TaskFetch = "fetch"
)

const maxSamples = 1000

type Metrics struct {
	mutex            sync.RWMutex
	runs             map[string]int64
	failures         map[string]int64
	durations        map[string][]time.Duration
	statusCodes      map[string]map[int]int64
	healthy          bool
	indicatorChanges int64
	lastPostCount    int
	staleDiscarded   int64
	lastRefresh      time.Time
	startTime        time.Time
}

type Snapshot struct {
	Uptime           time.Duration          `json:"uptime"`
	Healthy          bool                   `json:"healthy"`
	IndicatorChanges int64                  `json:"indicator_changes"`
	LastPostCount    int                    `json:"last_post_count"`
	LastRefresh      time.Time              `json:"last_refresh"`
	StaleDiscarded   int64                  `json:"stale_discarded"`
	Tasks            map[string]TaskMetrics `json:"tasks"`
}

type TaskMetrics struct {
	Runs        int64         `json:"runs"`
	Failures    int64         `json:"failures"`
	AvgDuration time.Duration `json:"avg_duration"`
	P50Duration time.Duration `json:"p50_duration"`
	P95Duration time.Duration `json:"p95_duration"`
	P99Duration time.Duration `json:"p99_duration"`
	StatusCodes map[int]int64 `json:"status_codes"`
}

// RecordRun counts one completed task run. A zero statusCode means no
// response was received.
func (m *Metrics) RecordRun(task string, duration time.Duration, statusCode int, failed bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.runs[task]++
	if failed {
		m.failures[task]++
	}

	m.durations[task] = append(m.durations[task], duration)
	if len(m.durations[task]) > maxSamples {
		m.durations[task] = m.durations[task][1:]
	}

	if statusCode != 0 {
		if m.statusCodes[task] == nil {
			m.statusCodes[task] = make(map[int]int64)
		}
		m.statusCodes[task][statusCode]++
	}
}

// RecordRefresh stores the size of the last rendered post list.
func (m *Metrics) RecordRefresh(posts int, at time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.lastPostCount = posts
	m.lastRefresh = at
}

func (m *Metrics) UpdateIndicator(healthy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.healthy = healthy
	m.indicatorChanges++
}

func (m *Metrics) IncrementStaleDiscarded() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.staleDiscarded++
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:           time.Since(m.startTime),
		Healthy:          m.healthy,
		IndicatorChanges: m.indicatorChanges,
		LastPostCount:    m.lastPostCount,
		LastRefresh:      m.lastRefresh,
		StaleDiscarded:   m.staleDiscarded,
		Tasks:            make(map[string]TaskMetrics),
	}

	for task, runs := range m.runs {
		tm := TaskMetrics{
			Runs:        runs,
			Failures:    m.failures[task],
			StatusCodes: make(map[int]int64),
		}
		for code, n := range m.statusCodes[task] {
			tm.StatusCodes[code] = n
		}

		durations := m.durations[task]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			tm.AvgDuration = average(sorted)
			tm.P50Duration = percentile(sorted, 0.50)
			tm.P95Duration = percentile(sorted, 0.95)
			tm.P99Duration = percentile(sorted, 0.99)
		}

		snap.Tasks[task] = tm
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		runs:        make(map[string]int64),
		failures:    make(map[string]int64),
		durations:   make(map[string][]time.Duration),
		statusCodes: make(map[string]map[int]int64),
		startTime:   time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
