package view

import (
	"github.com/a-h/templ"
)

// SignupForm is the sign-up values echoed back after a rejection. The
// password is never echoed.
type SignupForm struct {
	Name   string
	Email  string
	Mobile string
}

// SignupPage renders the registration form.
func SignupPage(nav Nav, f SignupForm, notices []Notice) templ.Component {
	return Layout("Sign up", nav, notices, component(func(h *html) {
		h.open("section", "class", "auth-card")
		h.elem("h1", "Create your account")
		h.open("form", "id", "signup-form", "class", "form", "method", "post", "action", "/signup")
		h.render(fieldInputs([]formField{
			{"Name", "name", f.Name, "text"},
			{"Email address", "email", f.Email, "email"},
			{"Mobile", "mobile", f.Mobile, "tel"},
			{"Password", "password", "", "password"},
		}))
		h.elem("button", "Sign up", "type", "submit", "class", "button")
		h.close("form")
		h.open("p")
		h.text("Already have an account? ")
		h.elem("a", "Sign in", "href", "/signin")
		h.close("p")
		h.close("section")
	}))
}

// OTPPage renders the one-time code step for email.
func OTPPage(nav Nav, email string, notices []Notice) templ.Component {
	return Layout("Verify email", nav, notices, component(func(h *html) {
		h.open("section", "class", "auth-card")
		h.elem("h1", "Verify your email")
		h.elem("p", "Enter the 6-digit code sent to "+email)
		h.open("form", "id", "otp-form", "class", "form", "method", "post", "action", "/signup/verify")
		h.open("input", "type", "hidden", "name", "email", "value", email)
		h.open("label")
		h.text("OTP")
		h.open("input", "type", "text", "name", "otp", "inputmode", "numeric", "maxlength", "6", "autocomplete", "one-time-code")
		h.close("label")
		h.elem("button", "Verify", "type", "submit", "class", "button")
		h.close("form")
		h.open("form", "id", "resend-form", "method", "post", "action", "/signup/resend")
		h.open("input", "type", "hidden", "name", "email", "value", email)
		h.elem("button", "Resend OTP", "type", "submit", "class", "button button-secondary")
		h.close("form")
		h.close("section")
	}))
}

// SigninPage renders the sign-in form.
func SigninPage(nav Nav, email string, notices []Notice) templ.Component {
	return Layout("Sign in", nav, notices, component(func(h *html) {
		h.open("section", "class", "auth-card")
		h.elem("h1", "Sign in to your account")
		h.open("form", "id", "signin-form", "class", "form", "method", "post", "action", "/signin")
		h.render(fieldInputs([]formField{
			{"Email address", "email", email, "email"},
			{"Password", "password", "", "password"},
		}))
		h.elem("button", "Sign in", "type", "submit", "class", "button")
		h.close("form")
		h.open("p")
		h.text("New here? ")
		h.elem("a", "Create an account", "href", "/signup")
		h.close("p")
		h.close("section")
	}))
}

// LogoutConfirmPage asks before ending the session.
func LogoutConfirmPage(nav Nav) templ.Component {
	return Layout("Logout", nav, nil, component(func(h *html) {
		h.open("section", "class", "auth-card")
		h.elem("h1", "Logout")
		h.elem("p", "Are you sure you want to logout?")
		h.open("form", "id", "logout-form", "method", "post", "action", "/logout")
		h.elem("button", "Logout", "type", "submit", "class", "button button-danger")
		h.raw(" ")
		h.elem("a", "Cancel", "href", "/", "class", "button button-secondary")
		h.close("form")
		h.close("section")
	}))
}
