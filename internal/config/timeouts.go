package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	TaskWait          time.Duration // Deadline for all asynchronous tasks of a run
	TaskPollInterval  time.Duration // Interval between task status polls
	HTTP              time.Duration // Per-request HTTP timeout
	RetryMaxAttempts  int           // Maximum number of HTTP attempts
	RetryInitialDelay time.Duration // Initial delay between HTTP retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - LABCTL_TIMEOUT_TASK_WAIT (default: 30m)
//   - LABCTL_TASK_POLL_INTERVAL (default: 1s)
//   - LABCTL_TIMEOUT_HTTP (default: 60s)
//   - LABCTL_RETRY_MAX_ATTEMPTS (default: 3)
//   - LABCTL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		TaskWait:          parseDuration("LABCTL_TIMEOUT_TASK_WAIT", 30*time.Minute),
		TaskPollInterval:  parseDuration("LABCTL_TASK_POLL_INTERVAL", 1*time.Second),
		HTTP:              parseDuration("LABCTL_TIMEOUT_HTTP", 60*time.Second),
		RetryMaxAttempts:  parseInt("LABCTL_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("LABCTL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a positive duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses a positive integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return defaultVal
	}

	return i
}
