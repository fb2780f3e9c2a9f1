// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as connectivity pings
// during startup.
const DefaultTimeout = 10 * time.Second
