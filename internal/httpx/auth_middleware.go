package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// TokenVerifier decouples the middleware from the identity package.
type TokenVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// AuthMiddleware rejects requests without a verifiable bearer token before
// the wrapped handler runs.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized access", nil)
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil || identity == "" {
				log.Debug().Err(err).Str("request_id", RequestIDFrom(r)).Msg("token rejected")
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized access", nil)
				return
			}

			recordIdentity(w, identity)
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// bearerToken extracts the credential from an Authorization header. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
