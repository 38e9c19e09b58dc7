// Package metrics collects runtime metrics for the dashboard's polling tasks.
//
// Tasks emit events on a buffered channel; a collector goroutine folds them
// into per-task counters:
//   - runs and failures for the status probe and the feed fetch
//   - latency with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//   - indicator transitions, last post count and discarded stale results
//
// Emit never blocks: when the buffer is full the event is dropped.
//
//	collector := metrics.NewCollector(100, logger)
//	collector.Start(ctx)
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventFetchCompleted,
//		Task:       metrics.TaskFetch,
//		Duration:   120 * time.Millisecond,
//		StatusCode: 200,
//		Posts:      42,
//	})
//	snapshot := collector.Snapshot()
package metrics
