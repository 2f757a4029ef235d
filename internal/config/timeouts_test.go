package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	for _, key := range []string{
		"LABCTL_TIMEOUT_TASK_WAIT",
		"LABCTL_TASK_POLL_INTERVAL",
		"LABCTL_TIMEOUT_HTTP",
		"LABCTL_RETRY_MAX_ATTEMPTS",
		"LABCTL_RETRY_INITIAL_DELAY",
	} {
		t.Setenv(key, "")
	}

	timeouts := LoadTimeouts()

	assert.Equal(t, 30*time.Minute, timeouts.TaskWait)
	assert.Equal(t, time.Second, timeouts.TaskPollInterval)
	assert.Equal(t, 60*time.Second, timeouts.HTTP)
	assert.Equal(t, 3, timeouts.RetryMaxAttempts)
	assert.Equal(t, time.Second, timeouts.RetryInitialDelay)
}

func TestLoadTimeouts_FromEnv(t *testing.T) {
	t.Setenv("LABCTL_TIMEOUT_TASK_WAIT", "5m")
	t.Setenv("LABCTL_TASK_POLL_INTERVAL", "250ms")
	t.Setenv("LABCTL_TIMEOUT_HTTP", "10s")
	t.Setenv("LABCTL_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("LABCTL_RETRY_INITIAL_DELAY", "2s")

	timeouts := LoadTimeouts()

	assert.Equal(t, 5*time.Minute, timeouts.TaskWait)
	assert.Equal(t, 250*time.Millisecond, timeouts.TaskPollInterval)
	assert.Equal(t, 10*time.Second, timeouts.HTTP)
	assert.Equal(t, 7, timeouts.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, timeouts.RetryInitialDelay)
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("LABCTL_TIMEOUT_TASK_WAIT", "soon")
	t.Setenv("LABCTL_TASK_POLL_INTERVAL", "-1s")
	t.Setenv("LABCTL_TIMEOUT_HTTP", "")
	t.Setenv("LABCTL_RETRY_MAX_ATTEMPTS", "many")
	t.Setenv("LABCTL_RETRY_INITIAL_DELAY", "0s")

	timeouts := LoadTimeouts()

	assert.Equal(t, 30*time.Minute, timeouts.TaskWait)
	assert.Equal(t, time.Second, timeouts.TaskPollInterval)
	assert.Equal(t, 60*time.Second, timeouts.HTTP)
	assert.Equal(t, 3, timeouts.RetryMaxAttempts)
	assert.Equal(t, time.Second, timeouts.RetryInitialDelay)
}
