package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	identity string
	err      error
	calls    int
	got      string
}

func (s *stubVerifier) Verify(_ context.Context, credential string) (string, error) {
	s.calls++
	s.got = credential
	return s.identity, s.err
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		verifier       *stubVerifier
		expectedStatus int
		expectedCalls  int
	}{
		{
			name:           "missing header",
			verifier:       &stubVerifier{identity: "u@x.com"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			verifier:       &stubVerifier{identity: "u@x.com"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty bearer",
			header:         "Bearer ",
			verifier:       &stubVerifier{identity: "u@x.com"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "rejected token",
			header:         "Bearer bad",
			verifier:       &stubVerifier{err: errors.New("expired")},
			expectedStatus: http.StatusUnauthorized,
			expectedCalls:  1,
		},
		{
			name:           "verified",
			header:         "Bearer good",
			verifier:       &stubVerifier{identity: "u@x.com"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "lowercase scheme",
			header:         "bearer good",
			verifier:       &stubVerifier{identity: "u@x.com"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "uppercase scheme",
			header:         "BEARER good",
			verifier:       &stubVerifier{identity: "u@x.com"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "scheme without token",
			header:         "Bearer",
			verifier:       &stubVerifier{identity: "u@x.com"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			var identity string
			handler := AuthMiddleware(tt.verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				identity = IdentityFrom(r)
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest(http.MethodPost, "/books", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, tt.verifier.calls)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, reached)
				assert.Equal(t, "u@x.com", identity)
				assert.Equal(t, "good", tt.verifier.got)
			} else {
				assert.False(t, reached, "next handler must not run")
			}
		})
	}
}
