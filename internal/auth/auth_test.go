package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/db"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewService(database)
}

func TestEnsureAdminWithConfiguredPassword(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	generated, err := svc.EnsureAdmin(ctx, "admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if generated != "" {
		t.Errorf("unexpected generated password %q", generated)
	}

	u, err := svc.Authenticate(ctx, "admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.Username != "admin" {
		t.Errorf("username = %q", u.Username)
	}

	if _, err := svc.Authenticate(ctx, "admin", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: %v", err)
	}
}

func TestEnsureAdminGeneratesPasswordOnce(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	generated, err := svc.EnsureAdmin(ctx, "admin", "")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if len(generated) != 20 {
		t.Fatalf("generated password %q", generated)
	}
	if _, err := svc.Authenticate(ctx, "admin", generated); err != nil {
		t.Errorf("generated password rejected: %v", err)
	}

	again, err := svc.EnsureAdmin(ctx, "admin", "")
	if err != nil {
		t.Fatalf("second EnsureAdmin: %v", err)
	}
	if again != "" {
		t.Error("second call created another admin")
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "editor", "pw")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token, err := svc.StartSession(ctx, u.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length %d", len(token))
	}

	got, err := svc.Session(ctx, token)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("session user %d, want %d", got.ID, u.ID)
	}

	if _, err := svc.Session(ctx, "bogus"); !errors.Is(err, ErrNoSession) {
		t.Errorf("bogus token: %v", err)
	}
	if _, err := svc.Session(ctx, ""); !errors.Is(err, ErrNoSession) {
		t.Errorf("empty token: %v", err)
	}

	if err := svc.EndSession(ctx, token); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if _, err := svc.Session(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Errorf("revoked token still valid: %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "editor", "pw")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	token, err := svc.StartSession(ctx, u.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	svc.now = func() time.Time { return start.Add(SessionTTL - time.Minute) }
	if _, err := svc.Session(ctx, token); err != nil {
		t.Errorf("session expired early: %v", err)
	}

	svc.now = func() time.Time { return start.Add(SessionTTL + time.Minute) }
	if _, err := svc.Session(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Errorf("expired session accepted: %v", err)
	}

	n, err := svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d sessions, want 1", n)
	}
}
