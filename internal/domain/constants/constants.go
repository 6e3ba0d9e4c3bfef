// Package constants holds engine-wide constants shared across layers.
package constants

import "time"

// Deployment environment names.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Event source providers for inbound raw events.
const (
	EventSourceProviderLocal  = "local"
	EventSourceProviderGoogle = "google"
)

const (
	// DwellDelay is the minimum loitering delay the monitoring backend must
	// observe before raising a DWELL event. It is passed explicitly on every
	// registration, never left to a backend default.
	DwellDelay = 30 * time.Second

	// ThrottleWindow is the minimum time between two dispatched notifications
	// for the same (region, transition type) pair.
	ThrottleWindow = 60 * time.Second

	// RetentionDays is the age beyond which history records become eligible
	// for deletion.
	RetentionDays = 7
)
