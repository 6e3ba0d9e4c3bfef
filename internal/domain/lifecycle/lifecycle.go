// Package lifecycle holds shared shutdown defaults for fx-managed components.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and connections.
const DefaultTimeout = 10 * time.Second
