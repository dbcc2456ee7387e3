// Package auth keeps admin accounts and their server-side sessions.
package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Zachkp/portfolio/internal/db"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no valid session")
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 24 * time.Hour

// User is an admin account.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Service authenticates admins and tracks their sessions.
type Service struct {
	db  *db.DB
	now func() time.Time
}

// NewService creates a Service backed by the given database.
func NewService(d *db.DB) *Service {
	return &Service{db: d, now: time.Now}
}

// GenerateToken returns 32 random bytes, hex encoded.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// EnsureAdmin creates the first admin account when no user exists yet. With
// an empty password a random one is generated and logged once; the returned
// string is that password, or empty when nothing was created or the password
// came from configuration.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (string, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return "", fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		return "", nil
	}

	generated := ""
	if password == "" {
		token, err := GenerateToken()
		if err != nil {
			return "", err
		}
		password = token[:20]
		generated = password
	}
	if _, err := s.CreateUser(ctx, username, password); err != nil {
		return "", err
	}
	if generated != "" {
		log.Printf("auth: created admin %q with generated password %s", username, generated)
	} else {
		log.Printf("auth: created admin %q from configuration", username)
	}
	return generated, nil
}

// CreateUser stores a new account with a bcrypt hash of password.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username, password) VALUES (?, ?)`, username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username, CreatedAt: s.now()}, nil
}

// Authenticate checks a username and password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var (
		u    User
		hash string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, username, password, created_at FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &hash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Burn comparable time so unknown usernames are not distinguishable.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not a real password"), bcrypt.DefaultCost)

// StartSession creates a session for the user and returns its token.
func (s *Service) StartSession(ctx context.Context, userID int64) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}
	expires := s.now().Add(SessionTTL).UTC()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expires.Format(time.DateTime)); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Session returns the user owning a live session token.
func (s *Service) Session(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.created_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ? AND s.expires_at > ?`,
		token, s.now().UTC().Format(time.DateTime)).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &u, nil
}

// EndSession revokes a token. Unknown tokens are ignored.
func (s *Service) EndSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry and reports how many went.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, s.now().UTC().Format(time.DateTime))
	if err != nil {
		return 0, fmt.Errorf("purging sessions: %w", err)
	}
	return res.RowsAffected()
}
