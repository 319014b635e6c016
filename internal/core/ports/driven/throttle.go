package driven

import "context"

// Throttle paces calls against rate-limited external services. It is a
// global policy for a service, not a per-item one: adapters share a
// single Throttle across a batch.
//
// Tests inject a no-op implementation; production tunes the interval
// independently of business logic.
type Throttle interface {
	// Wait blocks until the next call is allowed or the context is
	// cancelled.
	Wait(ctx context.Context) error
}
