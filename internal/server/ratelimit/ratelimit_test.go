package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	l.now = clock.now
	return l, clock
}

func TestLimiter_AnalyzeBurstThenDeny(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		ok, info := l.Allow("10.0.0.1", AnalyzePath, "POST")
		require.True(t, ok, "request %d", i+1)
		assert.Equal(t, 30, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	ok, info := l.Allow("10.0.0.1", AnalyzePath, "POST")
	assert.False(t, ok)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, 2*time.Minute)

	// 30 per hour refills one token every two minutes.
	clock.advance(3 * time.Minute)
	ok, _ = l.Allow("10.0.0.1", AnalyzePath, "POST")
	assert.True(t, ok)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(DefaultConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow("a", AnalyzePath, "POST")
	}
	ok, _ := l.Allow("a", AnalyzePath, "POST")
	assert.False(t, ok)

	ok, _ = l.Allow("b", AnalyzePath, "POST")
	assert.True(t, ok)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(DefaultConfig())
	defer l.Stop()

	for i := 0; i < 1000; i++ {
		ok, info := l.Allow("a", "/health", "GET")
		require.True(t, ok)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLimit = 3
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("a", "/other", "GET")
		require.True(t, ok)
	}
	ok, _ := l.Allow("a", "/other", "GET")
	assert.False(t, ok)
}

func TestLimiter_Lists(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Whitelist = map[string]bool{"trusted": true}
	cfg.Blacklist = map[string]bool{"blocked": true}
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("trusted", AnalyzePath, "POST")
		require.True(t, ok)
	}
	ok, _ := l.Allow("blocked", "/health", "GET")
	assert.False(t, ok)
}

func TestLimiter_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("a", AnalyzePath, "POST")
		require.True(t, ok)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig())
	defer l.Stop()

	l.Allow("a", AnalyzePath, "POST")
	clock.advance(2 * time.Hour)
	l.Allow("b", AnalyzePath, "POST")
	l.evictIdle(time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestMatchEndpoint(t *testing.T) {
	endpoints := []EndpointConfig{
		{Path: "/files/", Method: "GET", Limit: 5},
		{Path: "/files/special", Method: "GET", Limit: 1},
	}

	assert.Equal(t, 1, MatchEndpoint("/files/special", "GET", endpoints).Limit)
	assert.Equal(t, 5, MatchEndpoint("/files/other", "GET", endpoints).Limit)
	assert.Nil(t, MatchEndpoint("/files/other", "POST", endpoints))
	assert.Nil(t, MatchEndpoint("/elsewhere", "GET", endpoints))
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_ANALYZE_LIMIT", "60")
	t.Setenv("RATE_LIMIT_ANALYZE_BURST", "10")
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, ::1")

	cfg := LoadConfig()
	ep := MatchEndpoint(AnalyzePath, "POST", cfg.Endpoints)
	require.NotNil(t, ep)
	assert.Equal(t, 60, ep.Limit)
	assert.Equal(t, 10, ep.Burst)
	assert.Equal(t, time.Hour, ep.Window)
	assert.True(t, cfg.Whitelist["::1"])
}
