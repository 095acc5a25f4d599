package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Verifier turns a raw bearer token into an identity.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (string, error)
}

type oidcVerifier struct {
	verifier   *oidc.IDTokenVerifier
	emailClaim string
}

// NewOIDC discovers the issuer's signing keys and returns a Verifier that accepts
// ID tokens issued for the configured client. The identity is the configured email
// claim, falling back to the token subject.
func NewOIDC(ctx context.Context, cfg *Config) (Verifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("discover issuer %s: %w", cfg.Issuer, err)
	}

	return &oidcVerifier{
		verifier:   provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		emailClaim: cfg.EmailClaim,
	}, nil
}

func (v *oidcVerifier) Verify(ctx context.Context, rawToken string) (string, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return "", fmt.Errorf("%w: decode claims: %v", ErrUnauthenticated, err)
	}

	if email, ok := claims[v.emailClaim].(string); ok && email != "" {
		return email, nil
	}
	if token.Subject != "" {
		return token.Subject, nil
	}
	return "", fmt.Errorf("%w: token has no %s or subject", ErrUnauthenticated, v.emailClaim)
}
