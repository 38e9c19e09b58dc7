// Package prober implements the status check task: a HEAD request against
// the feed endpoint that flips the shared indicator healthy or unhealthy.
package prober
