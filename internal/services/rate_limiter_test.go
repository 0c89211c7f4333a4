package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsUpToThreshold(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		require.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, 60)
}

func TestRateLimiterIdentitiesAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	allowed, _ := rl.Allow("10.0.0.1")
	require.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1")
	require.False(t, allowed)

	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)

	allowed, _ := rl.Allow("10.0.0.1")
	require.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1")
	require.False(t, allowed)

	time.Sleep(60 * time.Millisecond)

	// After the window elapses the count resets to 1
	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.False(t, allowed)
}

func TestRateLimiterSweepExpired(t *testing.T) {
	rl := NewRateLimiter(10, 20*time.Millisecond)

	for i := 0; i < 4; i++ {
		rl.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Equal(t, 4, rl.Stats()["tracked_identities"])

	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, 4, rl.SweepExpired())
	assert.Equal(t, 0, rl.Stats()["tracked_identities"])
}

func TestRateLimiterRetryAfterShrinks(t *testing.T) {
	rl := NewRateLimiter(1, 2*time.Second)

	rl.Allow("10.0.0.1")
	_, first := rl.Allow("10.0.0.1")

	time.Sleep(1100 * time.Millisecond)
	allowed, second := rl.Allow("10.0.0.1")

	require.False(t, allowed)
	assert.LessOrEqual(t, second, first)
}
