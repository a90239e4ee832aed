package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"voicebot-backend/internal/middleware"
	"voicebot-backend/internal/models"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakeSessionRecorder struct {
	live map[string]uuid.UUID
}

func newFakeSessionRecorder() *fakeSessionRecorder {
	return &fakeSessionRecorder{live: make(map[string]uuid.UUID)}
}

func (f *fakeSessionRecorder) Create(ctx context.Context, sid string, userID uuid.UUID) error {
	f.live[sid] = userID
	return nil
}

func (f *fakeSessionRecorder) Delete(ctx context.Context, sid string) error {
	delete(f.live, sid)
	return nil
}

func (f *fakeSessionRecorder) Exists(ctx context.Context, sid string) (bool, error) {
	_, ok := f.live[sid]
	return ok, nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeSessionRecorder) {
	users := newFakeUserStore()
	sessions := newFakeSessionRecorder()
	sessionAuth := middleware.NewSessionAuth("test-secret", sessions)
	return NewAuthService(users, sessions, sessionAuth), users, sessions
}

func TestRegisterThenLogin(t *testing.T) {
	svc, users, sessions := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "StrongPass123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Plaintext must never be stored
	stored := users.byEmail["test@example.com"]
	if stored.PasswordHash == "StrongPass123" {
		t.Fatal("Password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("StrongPass123")); err != nil {
		t.Fatalf("Stored hash does not verify: %v", err)
	}

	loggedIn, token, err := svc.Login(ctx, models.LoginRequest{
		Email:    "test@example.com",
		Password: "StrongPass123",
	})
	if err != nil {
		t.Fatalf("Login after register failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Logged-in user mismatch: %s vs %s", loggedIn.ID, user.ID)
	}
	if token == "" {
		t.Error("Expected a session token")
	}
	if len(sessions.live) != 1 {
		t.Errorf("Expected 1 live session, got %d", len(sessions.live))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing name", models.RegisterRequest{Email: "a@b.com", Password: "pw123456"}},
		{"missing email", models.RegisterRequest{Name: "A", Password: "pw123456"}},
		{"bad email", models.RegisterRequest{Name: "A", Email: "not-an-email", Password: "pw123456"}},
		{"missing password", models.RegisterRequest{Name: "A", Email: "a@b.com"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	req := models.RegisterRequest{Name: "First", Email: "dup@example.com", Password: "pw123456"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	req.Name = "Second"
	_, err := svc.Register(ctx, req)
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}

	if users.byEmail["dup@example.com"].Name != "First" {
		t.Error("Duplicate registration must not replace the existing account")
	}
	if len(users.byEmail) != 1 {
		t.Errorf("Expected 1 account, got %d", len(users.byEmail))
	}
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterRequest{
		Name: "Test", Email: "known@example.com", Password: "correct-pw1",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, unknownErr := svc.Login(ctx, models.LoginRequest{Email: "unknown@example.com", Password: "whatever1"})
	_, _, wrongPwErr := svc.Login(ctx, models.LoginRequest{Email: "known@example.com", Password: "wrong-pw1"})

	var u1, u2 *UnauthorizedError
	if !errors.As(unknownErr, &u1) || !errors.As(wrongPwErr, &u2) {
		t.Fatalf("Expected UnauthorizedError for both, got %v and %v", unknownErr, wrongPwErr)
	}
	if u1.Message != u2.Message {
		t.Errorf("Unknown-email and wrong-password messages must match: %q vs %q", u1.Message, u2.Message)
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterRequest{
		Name: "Test", Email: "bye@example.com", Password: "pw123456",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, models.LoginRequest{Email: "bye@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	var sid string
	for s := range sessions.live {
		sid = s
	}

	if err := svc.Logout(ctx, sid); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if len(sessions.live) != 0 {
		t.Errorf("Expected session to be deleted, %d remain", len(sessions.live))
	}
}
