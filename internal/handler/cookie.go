package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/msomdec/buycars/internal/view"
)

const (
	authCookieName  = "auth_token"
	flashCookieName = "flash"
)

func setAuthCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash stores notices to be shown on the next page load, which is how
// a message survives a redirect.
func setFlash(w http.ResponseWriter, notices ...view.Notice) {
	values := url.Values{}
	for _, n := range notices {
		values.Add(n.Kind, n.Text)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(values.Encode()),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns and clears any pending notices.
func popFlash(w http.ResponseWriter, r *http.Request) []view.Notice {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil
	}

	var notices []view.Notice
	for _, kind := range []string{"success", "info", "warning", "error"} {
		for _, text := range values[kind] {
			notices = append(notices, view.Notice{Kind: kind, Text: text})
		}
	}
	return notices
}
