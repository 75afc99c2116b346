package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TokenProvider supplies a valid bearer token for the banking gateway.
// Abstracted behind an interface so refresh logic is testable and no token
// lives in package-level state.
type TokenProvider interface {
	// Token returns a token that is valid at the time of the call.
	Token(ctx context.Context) (string, error)
}

// RefreshFunc fetches a fresh token and reports how long it remains valid.
type RefreshFunc func(ctx context.Context) (token string, expiresIn time.Duration, err error)

// CachingProvider caches the last token and refreshes it through the
// configured func once it is within the expiry margin.
type CachingProvider struct {
	refresh RefreshFunc
	margin  time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewCachingProvider creates a CachingProvider. margin is how long before
// actual expiry a token is already treated as stale.
func NewCachingProvider(refresh RefreshFunc, margin time.Duration) *CachingProvider {
	return &CachingProvider{refresh: refresh, margin: margin}
}

// Make sure we conform to the interface
var _ TokenProvider = (*CachingProvider)(nil)

// Token returns the cached token, refreshing it first if it is missing or
// inside the expiry margin. Only one caller refreshes at a time.
func (p *CachingProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Add(p.margin).Before(p.expiresAt) {
		return p.token, nil
	}

	token, expiresIn, err := p.refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to refresh gateway token: %w", err)
	}

	p.token = token
	p.expiresAt = time.Now().Add(expiresIn)
	return token, nil
}
