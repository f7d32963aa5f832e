package handler_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/msomdec/buycars/internal/handler"
	"github.com/msomdec/buycars/internal/marketplace/marketplacetest"
)

func sessionStatus(t *testing.T, env *testEnv) handler.SessionDTO {
	t.Helper()
	resp := env.get(t, "/api/session")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var dto handler.SessionDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return dto
}

func TestAuth_SignupVerifySigninLogout(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/signup", url.Values{
		"name":     {"Ravi"},
		"email":    {"ravi@example.com"},
		"mobile":   {"9876543210"},
		"password": {testPassword},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d", resp.StatusCode)
	}
	doc := parseDoc(t, resp)
	if got := doc.Find(`#otp-form input[name="email"]`).AttrOr("value", ""); got != "ravi@example.com" {
		t.Fatalf("expected OTP form for the new account, got email %q", got)
	}

	resp = env.postForm(t, "/signup/verify", url.Values{"email": {"ravi@example.com"}, "otp": {"000000"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("wrong otp: expected 422, got %d", resp.StatusCode)
	}
	if !hasNotice(parseDoc(t, resp), "Invalid OTP") {
		t.Fatal("expected the backend's OTP error")
	}

	resp = env.postForm(t, "/signup/verify", url.Values{"email": {"ravi@example.com"}, "otp": {marketplacetest.OTP}})
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/signin" {
		t.Fatalf("verify: expected redirect to /signin, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if !hasNotice(parseDoc(t, env.get(t, "/signin")), "Email verified successfully") {
		t.Fatal("expected verification notice on the sign-in page")
	}

	resp = env.postForm(t, "/signin", url.Values{"email": {"ravi@example.com"}, "password": {testPassword}})
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("signin: expected redirect to /, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	doc = parseDoc(t, env.get(t, "/"))
	if !hasNotice(doc, "Signed In Successfully...!") {
		t.Fatalf("expected sign-in notice, got %v", noticeTexts(doc))
	}
	if got := doc.Find(".nav-user").Text(); got != "Hi, Ravi" {
		t.Fatalf("expected greeting, got %q", got)
	}

	dto := sessionStatus(t, env)
	if !dto.SignedIn || dto.User == nil || dto.User.Name != "Ravi" || dto.User.Email != "ravi@example.com" {
		t.Fatalf("unexpected session %+v", dto)
	}

	if parseDoc(t, env.get(t, "/logout")).Find("#logout-form").Length() != 1 {
		t.Fatal("expected logout confirmation")
	}
	resp = env.postForm(t, "/logout", nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("logout: expected 303, got %d", resp.StatusCode)
	}

	if sessionStatus(t, env).SignedIn {
		t.Fatal("expected to be signed out")
	}
	if !hasNotice(parseDoc(t, env.get(t, "/")), "Logged out successfully") {
		t.Fatal("expected logout notice")
	}
}

func TestAuth_SignupValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"bad email", "not-an-email", testPassword, "Invalid email id"},
		{"weak password", "a@example.com", "password", "Password must contain at least 8 characters, including at least one number, both upper and lower case letters, and special characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.postForm(t, "/signup", url.Values{"name": {"Ravi"}, "email": {tt.email}, "password": {tt.password}})
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", resp.StatusCode)
			}
			doc := parseDoc(t, resp)
			if !hasNotice(doc, tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, noticeTexts(doc))
			}
			if got := doc.Find(`#signup-form input[name="email"]`).AttrOr("value", ""); got != tt.email {
				t.Fatalf("expected email to be kept, got %q", got)
			}
		})
	}

	if n := env.backend.TotalRequests(); n != 0 {
		t.Fatalf("expected invalid signups to stay local, got %d requests", n)
	}
}

func TestAuth_SignupDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.backend.AddUser("u1", "Asha", "asha@example.com", testPassword)

	resp := env.postForm(t, "/signup", url.Values{"name": {"Asha"}, "email": {"asha@example.com"}, "password": {testPassword}})
	if !hasNotice(parseDoc(t, resp), "User already exists") {
		t.Fatal("expected duplicate account notice")
	}
}

func TestAuth_SigninBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.backend.AddUser("u1", "Asha", "asha@example.com", testPassword)

	resp := env.postForm(t, "/signin", url.Values{"email": {"asha@example.com"}, "password": {"Wrong#123"}})
	if resp.StatusCode == http.StatusSeeOther {
		t.Fatal("expected sign in to fail")
	}
	doc := parseDoc(t, resp)
	if !hasNotice(doc, "Invalid email or password") {
		t.Fatalf("expected backend message, got %v", noticeTexts(doc))
	}
	if got := doc.Find(`#signin-form input[name="email"]`).AttrOr("value", ""); got != "asha@example.com" {
		t.Fatalf("expected email to be kept, got %q", got)
	}
	if sessionStatus(t, env).SignedIn {
		t.Fatal("expected no session")
	}
}

func TestAuth_LogoutPageAnonymous(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/logout")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestAuth_SessionAnonymous(t *testing.T) {
	env := newTestEnv(t)

	dto := sessionStatus(t, env)
	if dto.SignedIn || dto.User != nil {
		t.Fatalf("expected anonymous session, got %+v", dto)
	}
}
