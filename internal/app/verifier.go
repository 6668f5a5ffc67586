package app

import (
	"context"
	"fmt"

	"bookshelf/internal/config"
	"bookshelf/internal/identity"
)

// NewVerifier builds the identity verifier named by cfg.AuthProvider.
func NewVerifier(ctx context.Context, cfg config.Config) (identity.Verifier, error) {
	switch cfg.AuthProvider {
	case config.ProviderFirebase:
		v, err := identity.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return v, nil
	case config.ProviderJWT:
		return identity.NewJWTVerifier(cfg.JWTSecret), nil
	}
	return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
}
