package server

import (
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"time"
)

type limiterBucket struct {
	ticker  *time.Ticker
	tickets chan struct{}
}

// limiter paces requests per client host bucket and rejects them
// once too many are waiting in the same bucket.
type limiter struct {
	buckets         []limiterBucket
	tooManyRequests http.Handler
}

func newLimiter(buckets int, period time.Duration, maxConcurrent int, tooManyRequests http.Handler) *limiter {
	b := make([]limiterBucket, buckets)
	for i := range buckets {
		b[i] = limiterBucket{
			ticker:  time.NewTicker(period),
			tickets: make(chan struct{}, maxConcurrent),
		}
	}

	return &limiter{
		buckets:         b,
		tooManyRequests: tooManyRequests,
	}
}

func (l *limiter) stop() {
	for _, b := range l.buckets {
		b.ticker.Stop()
	}
}

func (l *limiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var bucket int
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			h := fnv.New64()
			io.WriteString(h, host)
			bucket = int(h.Sum64() % uint64(len(l.buckets)))
		}

		select {
		case l.buckets[bucket].tickets <- struct{}{}:
			defer func() { <-l.buckets[bucket].tickets }()

			select {
			case <-l.buckets[bucket].ticker.C:
			case <-r.Context().Done():
				return
			}
			next.ServeHTTP(w, r)

		default:
			l.tooManyRequests.ServeHTTP(w, r)
		}
	})
}
