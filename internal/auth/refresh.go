package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"fitcoach/internal/logging"
)

// RefreshBuffer is how long before expiry a token is already treated as
// expired.
const RefreshBuffer = 60 * time.Second

// TokenStore persists refreshed tokens. *store.Store implements it.
type TokenStore interface {
	UpdateTokens(ctx context.Context, accessToken, refreshToken string, expiresAt time.Time) error
}

// TokenSource hands out a valid Strava token, refreshing it shortly
// before expiry and writing each new token back to the store.
type TokenSource struct {
	mu     sync.Mutex
	ctx    context.Context
	config *oauth2.Config
	token  *oauth2.Token
	store  TokenStore
	logger *zap.Logger
	now    func() time.Time
}

// NewTokenSource wraps token. ctx bounds refresh requests.
func NewTokenSource(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, st TokenStore, logger *zap.Logger) *TokenSource {
	return &TokenSource{
		ctx:    ctx,
		config: cfg,
		token:  token,
		store:  st,
		logger: logging.OrNop(logger).Named("auth"),
		now:    time.Now,
	}
}

// Token implements oauth2.TokenSource.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if !ts.expiredLocked() {
		return ts.token, nil
	}

	// A past expiry forces the oauth2 source to refresh instead of
	// applying its own, shorter buffer. A zero expiry would mean never.
	stale := *ts.token
	stale.Expiry = time.Unix(1, 0)
	fresh, err := ts.config.TokenSource(ts.ctx, &stale).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing strava token: %w", err)
	}

	if ts.store != nil {
		if err := ts.store.UpdateTokens(ts.ctx, fresh.AccessToken, fresh.RefreshToken, fresh.Expiry); err != nil {
			return nil, fmt.Errorf("saving refreshed token: %w", err)
		}
	}
	ts.logger.Info("strava token refreshed", zap.Time("expires_at", fresh.Expiry))

	ts.token = fresh
	return fresh, nil
}

// IsExpired reports whether the next Token call will refresh.
func (ts *TokenSource) IsExpired() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.expiredLocked()
}

func (ts *TokenSource) expiredLocked() bool {
	return ts.token.Expiry.Sub(ts.now()) <= RefreshBuffer
}
