package marketplace

import (
	"context"
	"fmt"
	"net/http"

	"github.com/msomdec/buycars/internal/domain"
)

type messageResponse struct {
	Msg string `json:"msg"`
}

// Signup registers an account and triggers an OTP email.
// POST /user/signup
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (string, error) {
	body := map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"mobile":   req.Mobile,
		"password": req.Password,
	}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/user/signup", "", body, &resp); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	return resp.Msg, nil
}

// VerifyOTP confirms the one-time code sent to email.
// POST /user/verify-otp
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	var resp messageResponse
	body := map[string]string{"email": email, "otp": otp}
	if err := c.do(ctx, http.MethodPost, "/user/verify-otp", "", body, &resp); err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}
	return resp.Msg, nil
}

// ResendOTP issues a fresh one-time code for email.
// POST /user/resend-otp
func (c *Client) ResendOTP(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/user/resend-otp", "", map[string]string{"email": email}, &resp); err != nil {
		return "", fmt.Errorf("resend otp: %w", err)
	}
	return resp.Msg, nil
}

// Login exchanges credentials for a backend bearer token.
// POST /user/login
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"_id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/user/login", "", body, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login: %w: response carried no token", domain.ErrUpstream)
	}
	return &domain.LoginResult{
		Token: resp.Token,
		User: domain.User{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
	}, nil
}
