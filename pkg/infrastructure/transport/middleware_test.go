package transport

import (
	"fmt"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestIPRateLimiterBounds(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(rate.Every(time.Hour), 1, nil)
	limiter.maxEntries = 3
	limiter.now = func() time.Time { return clock }

	t.Run("Table never grows past the cap", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			clock = clock.Add(time.Second)
			assert.True(t, limiter.allow(fmt.Sprintf("10.0.0.%d", i)))
		}
		assert.Len(t, limiter.limiters, 3)
		assert.Contains(t, limiter.limiters, "10.0.0.9")
		assert.NotContains(t, limiter.limiters, "10.0.0.0")
	})

	t.Run("Recently seen clients keep their bucket", func(t *testing.T) {
		clock = clock.Add(time.Second)
		assert.False(t, limiter.allow("10.0.0.9"))
		require.Len(t, limiter.limiters, 3)
	})

	t.Run("Idle clients are purged", func(t *testing.T) {
		clock = clock.Add(limiterIdleTTL + limiterPurgeInterval)
		assert.True(t, limiter.allow("10.0.1.1"))
		assert.Len(t, limiter.limiters, 1)
	})
}

func TestClientIP(t *testing.T) {
	proxies := trustedProxies{netip.MustParsePrefix("10.0.0.0/8"), netip.MustParsePrefix("::1/128")}

	tests := []struct {
		name         string
		remoteAddr   string
		forwardedFor string
		want         string
	}{
		{"Untrusted peer", "203.0.113.5:443", "198.51.100.1", "203.0.113.5"},
		{"Trusted peer without header", "10.1.2.3:443", "", "10.1.2.3"},
		{"Trusted peer with client", "10.1.2.3:443", "198.51.100.1", "198.51.100.1"},
		{"Chain of proxies", "10.1.2.3:443", "198.51.100.1, 10.9.9.9", "198.51.100.1"},
		{"Garbage hop stops the walk", "10.1.2.3:443", "198.51.100.1, not-an-ip", "10.1.2.3"},
		{"IPv6 loopback proxy", "[::1]:443", "2001:db8::1", "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			assert.Equal(t, tt.want, proxies.clientIP(req))
		})
	}
}
