package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(configs []EndpointConfig) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: configs,
	}
}

func TestLimiter_BurstThenLimited(t *testing.T) {
	limiter := NewLimiter(testConfig([]EndpointConfig{
		{Path: "/workflows/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
	}))
	defer limiter.Stop()

	allowed, info := limiter.Allow("1.2.3.4", "/workflows/abc/generate", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 10, info.Limit)

	allowed, _ = limiter.Allow("1.2.3.4", "/workflows/abc/generate", "POST")
	assert.True(t, allowed)

	allowed, info = limiter.Allow("1.2.3.4", "/workflows/abc/generate", "POST")
	assert.False(t, allowed, "burst of 2 exhausted")
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	limiter := NewLimiter(testConfig([]EndpointConfig{
		{Path: "/workflows/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	}))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.1.1.1", "/workflows/abc/generate", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.1.1.1", "/workflows/abc/generate", "POST")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("2.2.2.2", "/workflows/abc/generate", "POST")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/workflows", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig([]EndpointConfig{
		{Path: "/workflows/", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
	})
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["10.0.0.2"] = true

	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/workflows/abc/generate", "POST")
		assert.True(t, allowed, "whitelisted clients are never limited")
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/employees", "GET")
	assert.False(t, allowed, "blacklisted clients are always rejected")
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(testConfig(DefaultEndpointConfigs()))
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/employees", Method: "POST", Limit: 100},
		{Path: "/employees/", Method: "POST", Limit: 60},
	}

	exact := MatchEndpoint("/employees", "POST", configs)
	require.NotNil(t, exact)
	assert.Equal(t, 100, exact.Limit)

	prefix := MatchEndpoint("/employees/abc/analyze", "POST", configs)
	require.NotNil(t, prefix)
	assert.Equal(t, 60, prefix.Limit)

	assert.Nil(t, MatchEndpoint("/workflows", "GET", configs))

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Zero(t, health.Limit)
}
