package network

import "time"

// Config holds spectator server configuration
type Config struct {
	// Address to bind; empty disables the server
	Address string

	// Connection limits
	MaxPeers int

	// Interval is the minimum wall-clock gap between two published snapshots
	Interval time.Duration

	// Timing
	WriteTimeout time.Duration
	PingInterval time.Duration
	ReadTimeout  time.Duration

	// Buffer sizes
	SendQueueSize int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:       "",
		MaxPeers:      16,
		Interval:      250 * time.Millisecond,
		WriteTimeout:  5 * time.Second,
		PingInterval:  10 * time.Second,
		ReadTimeout:   30 * time.Second,
		SendQueueSize: 16,
	}
}
