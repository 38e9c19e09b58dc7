// Package indicator holds the dashboard's two-valued liveness signal. One
// State is shared by the status prober and the feed renderer; whichever
// finishes last decides the value.
package indicator

import "sync"

const (
	ClassHealthy   = "bg-green-500"
	ClassUnhealthy = "bg-red-500"
)

// State is a mutex-guarded healthy/unhealthy flag.
type State struct {
	mutex    sync.RWMutex
	healthy  bool
	onChange func(healthy bool)

	// notifyMutex serializes Set so callbacks arrive in transition order.
	notifyMutex sync.Mutex
}

// New returns an indicator in the unhealthy state.
func New() *State {
	return &State{}
}

// Healthy reports the current value.
func (s *State) Healthy() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.healthy
}

// OnChange registers fn to be called after every transition. It must be
// set before the state is shared. fn may read the state but must not call
// Set.
func (s *State) OnChange(fn func(healthy bool)) {
	s.onChange = fn
}

// Set updates the value and reports whether it changed.
func (s *State) Set(healthy bool) (changed bool) {
	s.notifyMutex.Lock()
	defer s.notifyMutex.Unlock()

	s.mutex.Lock()
	if s.healthy == healthy {
		s.mutex.Unlock()
		return false
	}
	s.healthy = healthy
	s.mutex.Unlock()

	if s.onChange != nil {
		s.onChange(healthy)
	}
	return true
}

// Class returns the CSS class rendered on the status dot.
func (s *State) Class() string {
	if s.Healthy() {
		return ClassHealthy
	}
	return ClassUnhealthy
}

// String returns "healthy" or "unhealthy".
func (s *State) String() string {
	if s.Healthy() {
		return "healthy"
	}
	return "unhealthy"
}
