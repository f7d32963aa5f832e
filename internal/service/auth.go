package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/buycars/internal/domain"
)

// SessionTTL is how long a sign-in stays valid.
const SessionTTL = 24 * time.Hour

// AuthService handles sign-up, OTP verification, sign-in and the sessions
// that carry the backend token between requests.
type AuthService struct {
	accounts  domain.AccountGateway
	sessions  domain.SessionRepository
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts domain.AccountGateway, sessions domain.SessionRepository, jwtSecret string) *AuthService {
	return &AuthService{
		accounts:  accounts,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// Signup validates the form and registers the account with the backend,
// which emails an OTP. It returns the backend's confirmation message.
func (s *AuthService) Signup(ctx context.Context, req domain.SignupRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if req.Name == "" {
		return "", fmt.Errorf("%w: Name is required", domain.ErrInvalidInput)
	}
	if err := ValidateEmail(req.Email); err != nil {
		return "", err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return "", err
	}

	msg, err := s.accounts.Signup(ctx, req)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	return msg, nil
}

// VerifyOTP confirms the code emailed at sign-up.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	otp = strings.TrimSpace(otp)
	if err := ValidateOTP(otp); err != nil {
		return "", err
	}

	msg, err := s.accounts.VerifyOTP(ctx, strings.TrimSpace(email), otp)
	if err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}
	return msg, nil
}

// ResendOTP asks the backend to email a fresh code.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	msg, err := s.accounts.ResendOTP(ctx, email)
	if err != nil {
		return "", fmt.Errorf("resend otp: %w", err)
	}
	return msg, nil
}

// Login exchanges credentials for a backend token, stores a new session
// and returns the signed cookie token referencing it.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return "", nil, err
	}
	if password == "" {
		return "", nil, fmt.Errorf("%w: Password is required", domain.ErrInvalidInput)
	}

	res, err := s.accounts.Login(ctx, email, password)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       res.User.ID,
		UserName:     strings.Trim(res.User.Name, `"`),
		UserEmail:    res.User.Email,
		BackendToken: res.Token,
		CreatedAt:    now,
		ExpiresAt:    now.Add(SessionTTL),
	}
	if session.UserEmail == "" {
		session.UserEmail = email
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.generateJWT(session)
	if err != nil {
		return "", nil, fmt.Errorf("generate jwt: %w", err)
	}
	return token, session, nil
}

// ValidateToken parses and validates a cookie token.
// Returns the session ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}

// Authenticate resolves a cookie token to its live session. Any failure
// is reported as domain.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.Session, error) {
	id, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, id)
}

// GetSession returns the unexpired session with the given ID. Expired
// sessions are removed on sight.
func (s *AuthService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

// Logout ends the session. Ending an unknown session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// PurgeExpired removes every session past its expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return n, nil
}

func (s *AuthService) generateJWT(session *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   session.ID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
