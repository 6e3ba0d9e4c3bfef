// Package delivery defines the contract every transport-facing server
// implements so the entrypoints can start them uniformly.
package delivery

import "context"

// Delivery is a long-running server (HTTP API, worker, subscriber). Serve
// blocks until the server stops or fails; shutdown is driven by fx lifecycle
// hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
