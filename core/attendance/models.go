package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoLiveToken is returned by discovery when no unexpired token exists.
	ErrNoLiveToken = errors.New("no live attendance token")
)

// Token is one check-in token. Tokens are immutable once minted: they are
// never updated or deleted, they simply fall out of the live window.
type Token struct {
	ID        int       `json:"id" db:"id"`
	Value     string    `json:"token" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"` // UTC
}

// Live reports whether the token is still valid at the given instant.
// The boundary is strict: a token expiring exactly now is dead.
func (t Token) Live(now time.Time) bool {
	return t.ExpiresAt.After(now)
}

type Repository interface {
	// LatestLive returns the most recently created token with ExpiresAt > now,
	// or ErrNoLiveToken.
	LatestLive(ctx context.Context, now time.Time) (Token, error)
	CreateToken(ctx context.Context, tok Token) (Token, error)
}
