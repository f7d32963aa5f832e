package domain

import "context"

// User is the profile the marketplace backend returns at sign-in.
type User struct {
	ID    string
	Name  string
	Email string
}

// SignupRequest holds the fields collected by the sign-up form.
type SignupRequest struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// LoginResult is a successful backend sign-in.
type LoginResult struct {
	Token string
	User  User
}

// AccountGateway is the backend's user endpoint set. Each method returns
// the backend's confirmation message on success.
type AccountGateway interface {
	Signup(ctx context.Context, req SignupRequest) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResendOTP(ctx context.Context, email string) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
