// Package broker opens short-lived connections to tenant backends using credentials loaded
// from the vault. Every handle is owned by the operation that opened it and must be closed
// on every path; WithHandle does that for the caller.
package broker

import "time"

// Config bounds the resources a single tenant operation may use.
type Config struct {
	ConnectTimeout  time.Duration
	QueryTimeout    time.Duration
	MaxConns        int32
	MaxConnIdleTime time.Duration
}

// DefaultConfig returns the default tenant connection limits.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:  5 * time.Second,
		QueryTimeout:    10 * time.Second,
		MaxConns:        10,
		MaxConnIdleTime: 30 * time.Second,
	}
}
