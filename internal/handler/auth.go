package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/service"
	"github.com/msomdec/buycars/internal/view"
)

const (
	msgSignedIn     = "Signed In Successfully...!"
	msgSignedOut    = "Logged out successfully"
	msgSignupFailed = "Signup failed. Please try again."
	msgVerifyFailed = "OTP verification failed. Please try again."
	msgResendFailed = "Failed to resend OTP. Please try again."
	msgSigninFailed = "Sign in failed. Please try again."
)

// AuthHandler handles sign-up, OTP verification, sign-in and sign-out.
type AuthHandler struct {
	auth          *service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler. secureCookies marks the session
// cookie Secure and should be true whenever the site is served over HTTPS.
func NewAuthHandler(auth *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies}
}

// HandleSignupPage renders the registration form.
// GET /signup
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.SignupPage(navFor(r), view.SignupForm{}, popFlash(w, r)))
}

// HandleSignup registers the account and moves on to the OTP step.
// POST /signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	req := domain.SignupRequest{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Mobile:   strings.TrimSpace(r.FormValue("mobile")),
		Password: r.FormValue("password"),
	}

	msg, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		logUnexpected("signup", err)
		form := view.SignupForm{Name: req.Name, Email: req.Email, Mobile: req.Mobile}
		render(w, r, statusFor(err), view.SignupPage(navFor(r), form,
			[]view.Notice{view.Error(domain.UserMessage(err, msgSignupFailed))}))
		return
	}

	render(w, r, http.StatusOK, view.OTPPage(navFor(r), req.Email, []view.Notice{view.Success(msg)}))
}

// HandleVerifyOTP confirms the emailed code and sends the user to sign in.
// POST /signup/verify
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))

	msg, err := h.auth.VerifyOTP(r.Context(), email, r.FormValue("otp"))
	if err != nil {
		logUnexpected("verify otp", err)
		render(w, r, statusFor(err), view.OTPPage(navFor(r), email,
			[]view.Notice{view.Error(domain.UserMessage(err, msgVerifyFailed))}))
		return
	}

	setFlash(w, view.Success(msg))
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

// HandleResendOTP asks the backend for a fresh code.
// POST /signup/resend
func (h *AuthHandler) HandleResendOTP(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))

	msg, err := h.auth.ResendOTP(r.Context(), email)
	if err != nil {
		logUnexpected("resend otp", err)
		render(w, r, statusFor(err), view.OTPPage(navFor(r), email,
			[]view.Notice{view.Error(domain.UserMessage(err, msgResendFailed))}))
		return
	}

	render(w, r, http.StatusOK, view.OTPPage(navFor(r), email, []view.Notice{view.Success(msg)}))
}

// HandleSigninPage renders the sign-in form.
// GET /signin
func (h *AuthHandler) HandleSigninPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.SigninPage(navFor(r), r.URL.Query().Get("email"), popFlash(w, r)))
}

// HandleSignin exchanges credentials for a session and sets the cookie.
// POST /signin
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))

	token, session, err := h.auth.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		logUnexpected("sign in", err)
		render(w, r, statusFor(err), view.SigninPage(navFor(r), email,
			[]view.Notice{view.Error(domain.UserMessage(err, msgSigninFailed))}))
		return
	}

	setAuthCookie(w, token, session.ExpiresAt, h.secureCookies)
	setFlash(w, view.Success(msgSignedIn))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogoutPage asks for confirmation before signing out.
// GET /logout
func (h *AuthHandler) HandleLogoutPage(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()) == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, view.LogoutConfirmPage(navFor(r)))
}

// HandleLogout ends the session and clears the cookie.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if session := SessionFromContext(r.Context()); session != nil {
		if err := h.auth.Logout(r.Context(), session.ID); err != nil {
			slog.Error("logout", "error", err)
		}
	}

	clearAuthCookie(w, h.secureCookies)
	setFlash(w, view.Info(msgSignedOut))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSession reports the login status derived from the session.
// GET /api/session
// Response: {"signedIn": true, "user": {...}} or {"signedIn": false}
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSessionDTO(SessionFromContext(r.Context())))
}
