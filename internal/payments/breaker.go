package payments

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerProvider trips after repeated provider failures so checkout
// requests fail fast instead of piling up on a degraded payment API.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[*Session]
}

func NewBreakerProvider(inner Provider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:    "payment-sessions",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerProvider{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[*Session](settings),
	}
}

func (p *BreakerProvider) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	return p.cb.Execute(func() (*Session, error) {
		return p.inner.CreateSession(ctx, params)
	})
}
