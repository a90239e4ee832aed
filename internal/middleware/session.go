package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"voicebot-backend/internal/models"
)

type contextKey string

const IdentityKey contextKey = "identity"

// SessionCookieName is the browser cookie carrying the signed session token.
const SessionCookieName = "voicebot_session"

// SessionChecker reports whether a session record is still live on the
// server side. Logout deletes the record, which revokes the cookie.
type SessionChecker interface {
	Exists(ctx context.Context, sid string) (bool, error)
}

type SessionAuth struct {
	Secret   []byte
	sessions SessionChecker
}

func NewSessionAuth(secret string, sessions SessionChecker) *SessionAuth {
	return &SessionAuth{Secret: []byte(secret), sessions: sessions}
}

// GenerateSessionToken creates the signed cookie value for a session.
// The token itself expires in 7 days; the server-side record can be
// deleted earlier.
func (s *SessionAuth) GenerateSessionToken(sid string, userID uuid.UUID, name string) (string, error) {
	claims := jwt.MapClaims{
		"sid":     sid,
		"user_id": userID.String(),
		"name":    name,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Middleware validates the session cookie and attaches the authenticated
// identity to the request context.
func (s *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", r)
			return
		}

		// Parse and verify
		token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.Secret, nil
		})
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid session", r)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid session claims", r)
			return
		}

		sid, ok := claims["sid"].(string)
		if !ok || sid == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid session ID", r)
			return
		}

		userIDStr, ok := claims["user_id"].(string)
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid user ID in session", r)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid user ID format", r)
			return
		}

		name, _ := claims["name"].(string)

		// Reject sessions revoked by logout
		alive, err := s.sessions.Exists(r.Context(), sid)
		if err != nil || !alive {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Session expired", r)
			return
		}

		identity := models.Identity{UserID: userID, Name: name, SessionID: sid}
		ctx := context.WithValue(r.Context(), IdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity extracts the authenticated identity from request context
func GetIdentity(ctx context.Context) models.Identity {
	id, _ := ctx.Value(IdentityKey).(models.Identity)
	return id
}

func writeError(w http.ResponseWriter, status int, code, message string, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": requestID,
		},
	})
}
