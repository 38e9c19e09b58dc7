package poller_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/feed-dashboard/internal/poller"
	"github.com/angeloszaimis/feed-dashboard/pkg/logger"
)

func counting(name string, counter *atomic.Int32) poller.Task {
	return poller.Task{
		Name: name,
		Run: func(ctx context.Context) {
			counter.Add(1)
		},
	}
}

var _ = Describe("Poller", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cancel()
	})

	It("should run every task immediately", func() {
		var probes, fetches atomic.Int32
		p := poller.New(time.Hour, logger.Discard(), counting("probe", &probes), counting("fetch", &fetches))

		go p.Run(ctx)

		Eventually(probes.Load).Should(Equal(int32(1)))
		Eventually(fetches.Load).Should(Equal(int32(1)))
	})

	It("should run again on every tick", func() {
		var runs atomic.Int32
		p := poller.New(20*time.Millisecond, logger.Discard(), counting("probe", &runs))

		go p.Run(ctx)

		Eventually(runs.Load).Should(BeNumerically(">=", 3))
	})

	It("should not wait for a slow run before the next tick", func() {
		var started atomic.Int32
		release := make(chan struct{})
		slow := poller.Task{
			Name: "fetch",
			Run: func(ctx context.Context) {
				started.Add(1)
				<-release
			},
		}
		p := poller.New(20*time.Millisecond, logger.Discard(), slow)

		done := make(chan error, 1)
		go func() { done <- p.Run(ctx) }()

		Eventually(started.Load).Should(BeNumerically(">=", 2))
		close(release)
		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("should keep ticking after a task panics", func() {
		var runs atomic.Int32
		faulty := poller.Task{
			Name: "fetch",
			Run: func(ctx context.Context) {
				runs.Add(1)
				panic("boom")
			},
		}
		p := poller.New(20*time.Millisecond, logger.Discard(), faulty)

		go p.Run(ctx)

		Eventually(runs.Load).Should(BeNumerically(">=", 2))
	})

	It("should stop when the context is cancelled and wait for in-flight runs", func() {
		var finished atomic.Bool
		task := poller.Task{
			Name: "probe",
			Run: func(ctx context.Context) {
				time.Sleep(50 * time.Millisecond)
				finished.Store(true)
			},
		}
		p := poller.New(time.Hour, logger.Discard(), task)

		done := make(chan error, 1)
		go func() { done <- p.Run(ctx) }()
		time.Sleep(10 * time.Millisecond)
		cancel()

		Eventually(done).Should(Receive(BeNil()))
		Expect(finished.Load()).To(BeTrue())
	})

	Describe("RunOnce", func() {
		It("should run each task once and wait", func() {
			var probes, fetches atomic.Int32
			p := poller.New(time.Hour, logger.Discard(), counting("probe", &probes), counting("fetch", &fetches))

			p.RunOnce(ctx)

			Expect(probes.Load()).To(Equal(int32(1)))
			Expect(fetches.Load()).To(Equal(int32(1)))
		})
	})
})
