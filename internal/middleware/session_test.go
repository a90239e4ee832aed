package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

type stubChecker struct {
	live map[string]bool
}

func (s *stubChecker) Exists(ctx context.Context, sid string) (bool, error) {
	return s.live[sid], nil
}

func TestSessionMiddleware(t *testing.T) {
	checker := &stubChecker{live: map[string]bool{"live-sid": true}}
	auth := NewSessionAuth("test-secret", checker)
	userID := uuid.New()

	validToken, err := auth.GenerateSessionToken("live-sid", userID, "Alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	revokedToken, err := auth.GenerateSessionToken("dead-sid", userID, "Alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	otherAuth := NewSessionAuth("other-secret", checker)
	forgedToken, err := otherAuth.GenerateSessionToken("live-sid", userID, "Alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	var gotIdentity bool
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		gotIdentity = identity.UserID == userID && identity.Name == "Alice" && identity.SessionID == "live-sid"
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		cookie   string
		expected int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"wrong signing key", forgedToken, http.StatusUnauthorized},
		{"revoked session", revokedToken, http.StatusUnauthorized},
		{"valid session", validToken, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tc.cookie})
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.expected {
				t.Errorf("Expected status %d, got %d", tc.expected, rr.Code)
			}
		})
	}

	if !gotIdentity {
		t.Error("Valid session did not attach the expected identity to context")
	}
}
