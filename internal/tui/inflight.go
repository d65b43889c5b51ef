package tui

import "github.com/google/uuid"

// loadingState is the lifecycle of a screen's current request
type loadingState int

const (
	stateIdle loadingState = iota
	stateLoading
	stateSubmitting
	stateError
)

// requestTracker remembers the latest request issued under each key.
//
// A screen calls begin before issuing a request and finish when the result
// arrives. Results from superseded requests report false and are dropped, so
// the request issued last wins regardless of the order responses arrive in.
// busy lets a screen refuse a second submit while one is outstanding.
type requestTracker struct {
	latest map[string]string
}

func newRequestTracker() requestTracker {
	return requestTracker{latest: make(map[string]string)}
}

func (r requestTracker) begin(key string) string {
	id := uuid.New().String()
	r.latest[key] = id
	return id
}

func (r requestTracker) busy(key string) bool {
	_, ok := r.latest[key]
	return ok
}

func (r requestTracker) finish(key, id string) bool {
	if r.latest[key] != id {
		return false
	}
	delete(r.latest, key)
	return true
}
