// Package auth gates the interactive session behind a local login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// SessionKey is the KV key holding the signed-in user.
const SessionKey = "auth:session"

// Authenticator checks credentials and remembers the signed-in state.
type Authenticator interface {
	Login(ctx context.Context, user, password string) (bool, error)
	IsAuthenticated(ctx context.Context) bool
	Logout(ctx context.Context) error
}

// KV is the storage the local gate keeps its session flag in.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Local compares against a single configured user and bcrypt hash.
// With no credentials configured the gate is open.
type Local struct {
	user string
	hash []byte
	kv   KV
}

var _ Authenticator = (*Local)(nil)

// NewLocal creates a Local gate. kv may be nil, in which case the session
// is not remembered across runs.
func NewLocal(user, passwordHash string, kv KV) *Local {
	return &Local{user: user, hash: []byte(passwordHash), kv: kv}
}

// Enabled reports whether credentials are configured.
func (l *Local) Enabled() bool {
	return l.user != "" && len(l.hash) > 0
}

// Login returns true when user and password match. A mismatch is not an
// error; a malformed configured hash is.
func (l *Local) Login(ctx context.Context, user, password string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	if user != l.user {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword(l.hash, []byte(password))
	switch {
	case err == nil:
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("check password: %w", err)
	}

	if l.kv != nil {
		if err := l.kv.Put(ctx, SessionKey, []byte(l.user)); err != nil {
			slog.Warn("auth: could not remember session", "err", err)
		}
	}
	slog.Info("auth: signed in", "user", user)
	return true, nil
}

// IsAuthenticated reports whether a session for the configured user exists.
func (l *Local) IsAuthenticated(ctx context.Context) bool {
	if !l.Enabled() {
		return true
	}
	if l.kv == nil {
		return false
	}
	v, found, err := l.kv.Get(ctx, SessionKey)
	if err != nil {
		slog.Debug("auth: session lookup failed", "err", err)
		return false
	}
	return found && string(v) == l.user
}

// Logout forgets the session.
func (l *Local) Logout(ctx context.Context) error {
	if l.kv == nil {
		return nil
	}
	if err := l.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for TRACETUTOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
