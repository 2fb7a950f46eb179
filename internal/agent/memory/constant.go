package memory

import "time"

const (
	DefaultMaxHistory = 10
	DefaultMaxUsers   = 10000
	DefaultIdleTTL    = 30 * time.Minute
)
