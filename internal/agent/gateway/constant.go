package gateway

import "time"

const (
	DefaultTimeout     = 30 * time.Second
	DefaultTemperature = 0.7
)
