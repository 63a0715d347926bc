// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// Default pacing, 10 instructions per frame at 60 frames per second
// runs programs at 600 instructions per second.
const (
	DefaultTicksPerFrame   = 10
	DefaultFramesPerSecond = 60

	// DefaultHeadlessFrames limits a headless run to 10 seconds of
	// emulated time when no frame limit is given.
	DefaultHeadlessFrames = 600
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
