package fetch

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// hostLimiter spaces requests per host so concurrent fetches against one
// site still respect the configured delay.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

func newHostLimiter(delay time.Duration) *hostLimiter {
	return &hostLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// wait blocks until a request to the URL's host is permitted.
func (l *hostLimiter) wait(ctx context.Context, rawURL string) error {
	if l.delay <= 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return l.limiterFor(u.Host).Wait(ctx)
}

func (l *hostLimiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Every(l.delay), 1)
	l.limiters[host] = lim
	return lim
}
