package domain

import (
	"context"
	"time"
)

// Session is the signed-in state of one browser. It is the single source
// of truth for the login status: a request is authenticated exactly when it
// resolves to an unexpired Session.
type Session struct {
	ID           string
	UserID       string
	UserName     string
	UserEmail    string
	BackendToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Token returns the backend bearer token, or "" for a nil session.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.BackendToken
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that expired before now and returns
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
