package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	TaskWait          time.Duration // Timeout for a single Proxmox task to finish
	Step              time.Duration // Timeout for a single remote install step
	PollInterval      time.Duration // Interval between readiness polls
	PollMaxAttempts   int           // Maximum number of readiness polls
	RetryMaxAttempts  int           // Maximum number of API retry attempts
	RetryInitialDelay time.Duration // Initial delay between API retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - PVE_TIMEOUT_TASK (default: 5m)
//   - PVE_TIMEOUT_STEP (default: 10m)
//   - PVE_POLL_INTERVAL (default: 3s)
//   - PVE_POLL_MAX_ATTEMPTS (default: 40)
//   - PVE_RETRY_MAX_ATTEMPTS (default: 5)
//   - PVE_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		TaskWait:          parseDuration("PVE_TIMEOUT_TASK", 5*time.Minute),
		Step:              parseDuration("PVE_TIMEOUT_STEP", 10*time.Minute),
		PollInterval:      parseDuration("PVE_POLL_INTERVAL", 3*time.Second),
		PollMaxAttempts:   parseInt("PVE_POLL_MAX_ATTEMPTS", 40),
		RetryMaxAttempts:  parseInt("PVE_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("PVE_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
