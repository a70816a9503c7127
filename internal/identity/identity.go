package identity

import (
	"context"
	"errors"
	"fmt"

	"clubsphere_backend/internal/config"
)

// ErrInvalidToken is returned for missing, malformed, expired or unverifiable tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the verified caller.
type Identity struct {
	UID   string
	Email string
}

// Verifier validates a bearer token and returns the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Chain tries each verifier in order and returns the first successful result.
type Chain []Verifier

func (c Chain) Verify(ctx context.Context, token string) (*Identity, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: no verifier configured", ErrInvalidToken)
	}
	var errs []error
	for _, v := range c {
		id, err := v.Verify(ctx, token)
		if err == nil {
			return id, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// FromConfig builds the verifier chain for the configured credentials. The
// identity provider is tried first; the HS256 verifier covers local tokens.
func FromConfig(ctx context.Context, cfg config.AuthConfig) (Verifier, error) {
	var chain Chain
	if cfg.FirebaseServiceKey != "" {
		fb, err := NewFirebaseVerifier(ctx, cfg.FirebaseServiceKey)
		if err != nil {
			return nil, err
		}
		chain = append(chain, fb)
	}
	if cfg.JWTSecret != "" {
		chain = append(chain, NewJWTVerifier(cfg.JWTSecret))
	}
	if len(chain) == 0 {
		return nil, errors.New("no identity verifier configured")
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}
