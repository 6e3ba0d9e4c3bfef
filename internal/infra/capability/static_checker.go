// Package capability provides the engine-side view of user-granted
// capabilities.
package capability

import (
	"context"

	"geocue/config"
	"geocue/internal/domain/service"
)

// staticChecker reports capabilities from configuration. It mirrors the
// consent state of the device side; a capability the operator has not granted
// gates the matching engine branch into a no-op.
type staticChecker struct {
	foregroundLocation bool
	backgroundLocation bool
	notifications      bool
}

// NewStaticChecker creates a config-backed capability checker. A nil config
// grants nothing.
func NewStaticChecker(cfg *config.CapabilitiesConfig) service.CapabilityChecker {
	if cfg == nil {
		return &staticChecker{}
	}

	return &staticChecker{
		foregroundLocation: cfg.ForegroundLocation,
		backgroundLocation: cfg.BackgroundLocation,
		notifications:      cfg.Notifications,
	}
}

func (c *staticChecker) HasForegroundLocationAccess(_ context.Context) bool {
	return c.foregroundLocation
}

func (c *staticChecker) HasBackgroundLocationAccess(_ context.Context) bool {
	return c.backgroundLocation
}

func (c *staticChecker) HasNotificationAccess(_ context.Context) bool {
	return c.notifications
}
