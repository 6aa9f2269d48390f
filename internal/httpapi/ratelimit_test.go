package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/userorders/internal/config"
)

func TestClientLimiter(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		l, err := newClientLimiter(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1})
		require.NoError(t, err)
		assert.Nil(t, l)
		for i := 0; i < 10; i++ {
			assert.True(t, l.allow("ip:10.0.0.1", time.Now()))
		}
	})

	t.Run("RefillsOverTime", func(t *testing.T) {
		l, err := newClientLimiter(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1, MaxClients: 4})
		require.NoError(t, err)

		now := time.Now()
		assert.True(t, l.allow("ip:10.0.0.1", now))
		assert.False(t, l.allow("ip:10.0.0.1", now))
		assert.True(t, l.allow("ip:10.0.0.1", now.Add(time.Second)))
	})

	t.Run("EvictsLeastRecentClient", func(t *testing.T) {
		l, err := newClientLimiter(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1, MaxClients: 2})
		require.NoError(t, err)

		now := time.Now()
		assert.True(t, l.allow("a", now))
		assert.True(t, l.allow("b", now))
		assert.True(t, l.allow("c", now)) // evicts a
		assert.Equal(t, 2, l.clients.Len())
		assert.True(t, l.allow("a", now), "evicted client starts with a fresh bucket")
	})
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "ip:192.0.2.1"},
		{"[2001:db8::1]:443", "ip:2001:db8::1"},
		{"no-port", "ip:no-port"},
		{"", "ip:unknown"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = tt.remote
		assert.Equal(t, tt.want, clientKey(req), tt.remote)
	}
}
