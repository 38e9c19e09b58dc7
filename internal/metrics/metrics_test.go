package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/feed-dashboard/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("RecordRun", func() {
		It("should count runs and failures per task", func() {
			m.RecordRun(metrics.TaskProbe, 10*time.Millisecond, 200, false)
			m.RecordRun(metrics.TaskProbe, 20*time.Millisecond, 500, true)
			m.RecordRun(metrics.TaskFetch, 30*time.Millisecond, 0, true)

			snap := m.Snapshot()
			Expect(snap.Tasks[metrics.TaskProbe].Runs).To(Equal(int64(2)))
			Expect(snap.Tasks[metrics.TaskProbe].Failures).To(Equal(int64(1)))
			Expect(snap.Tasks[metrics.TaskFetch].Runs).To(Equal(int64(1)))
			Expect(snap.Tasks[metrics.TaskFetch].Failures).To(Equal(int64(1)))
		})

		It("should track status codes and skip missing responses", func() {
			m.RecordRun(metrics.TaskFetch, time.Millisecond, 200, false)
			m.RecordRun(metrics.TaskFetch, time.Millisecond, 200, false)
			m.RecordRun(metrics.TaskFetch, time.Millisecond, 503, true)
			m.RecordRun(metrics.TaskFetch, time.Millisecond, 0, true)

			codes := m.Snapshot().Tasks[metrics.TaskFetch].StatusCodes
			Expect(codes).To(Equal(map[int]int64{200: 2, 503: 1}))
		})

		It("should compute duration percentiles", func() {
			for i := 1; i <= 100; i++ {
				m.RecordRun(metrics.TaskProbe, time.Duration(i)*time.Millisecond, 200, false)
			}

			task := m.Snapshot().Tasks[metrics.TaskProbe]
			Expect(task.P50Duration).To(Equal(51 * time.Millisecond))
			Expect(task.P95Duration).To(Equal(96 * time.Millisecond))
			Expect(task.P99Duration).To(Equal(100 * time.Millisecond))
			Expect(task.AvgDuration).To(Equal(50500 * time.Microsecond))
		})

		It("should keep a bounded number of samples", func() {
			for i := 0; i < 1500; i++ {
				m.RecordRun(metrics.TaskFetch, time.Second, 200, false)
			}
			m.RecordRun(metrics.TaskFetch, 3*time.Second, 200, false)

			task := m.Snapshot().Tasks[metrics.TaskFetch]
			Expect(task.Runs).To(Equal(int64(1501)))
			Expect(task.P99Duration).To(Equal(time.Second))
		})
	})

	Describe("dashboard state", func() {
		It("should record refreshes, indicator changes and stale discards", func() {
			at := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
			m.RecordRefresh(17, at)
			m.UpdateIndicator(true)
			m.UpdateIndicator(false)
			m.IncrementStaleDiscarded()

			snap := m.Snapshot()
			Expect(snap.LastPostCount).To(Equal(17))
			Expect(snap.LastRefresh).To(Equal(at))
			Expect(snap.Healthy).To(BeFalse())
			Expect(snap.IndicatorChanges).To(Equal(int64(2)))
			Expect(snap.StaleDiscarded).To(Equal(int64(1)))
		})

		It("should report uptime", func() {
			Expect(m.Snapshot().Uptime).To(BeNumerically(">=", 0))
		})
	})
})
