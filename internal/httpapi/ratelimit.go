package httpapi

import (
	"net"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/dshills/userorders/internal/config"
)

// clientLimiter applies a token bucket per client key. The set of buckets
// is bounded by an LRU so idle clients are evicted instead of swept.
type clientLimiter struct {
	limit   rate.Limit
	burst   int
	clients *lru.Cache[string, *rate.Limiter]
}

// newClientLimiter returns nil when limiting is disabled; a nil limiter
// allows everything.
func newClientLimiter(cfg config.RateLimitConfig) (*clientLimiter, error) {
	if !cfg.Enabled || cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil, nil
	}
	size := cfg.MaxClients
	if size <= 0 {
		size = 10000
	}
	clients, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	return &clientLimiter{
		limit:   rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		clients: clients,
	}, nil
}

// allow reports whether one token can be consumed for key at now
func (l *clientLimiter) allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	limiter, ok := l.clients.Get(key)
	if !ok {
		fresh := rate.NewLimiter(l.limit, l.burst)
		// Another request for the same key may have won the race.
		if prev, found, _ := l.clients.PeekOrAdd(key, fresh); found {
			limiter = prev
		} else {
			limiter = fresh
		}
	}
	return limiter.AllowN(now, 1)
}

func clientKey(r *http.Request) string {
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return "ip:unknown"
	}
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return "ip:" + remote
	}
	if strings.TrimSpace(host) == "" {
		return "ip:unknown"
	}
	return "ip:" + host
}
