package handler

import (
	"time"

	"github.com/msomdec/buycars/internal/domain"
)

// UserDTO is the JSON representation of the signed-in user.
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionDTO is the JSON representation of the login status.
type SessionDTO struct {
	SignedIn  bool     `json:"signedIn"`
	User      *UserDTO `json:"user,omitempty"`
	ExpiresAt string   `json:"expiresAt,omitempty"`
}

func toSessionDTO(s *domain.Session) SessionDTO {
	if s == nil {
		return SessionDTO{}
	}
	return SessionDTO{
		SignedIn: true,
		User: &UserDTO{
			ID:    s.UserID,
			Name:  s.UserName,
			Email: s.UserEmail,
		},
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
	}
}
