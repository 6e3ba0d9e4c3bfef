package service

import "context"

// CapabilityChecker reports which user-granted capabilities the engine
// currently holds. A missing capability is never an error, it gates a no-op
// branch: the reconciler consults background location access before any
// register call, and the dispatcher consults notification access before any
// dispatch.
type CapabilityChecker interface {
	HasForegroundLocationAccess(ctx context.Context) bool
	HasBackgroundLocationAccess(ctx context.Context) bool
	HasNotificationAccess(ctx context.Context) bool
}
