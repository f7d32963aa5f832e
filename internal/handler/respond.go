package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// isDatastar reports whether the request was issued by a datastar action
// and therefore expects an SSE response.
func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}

func navFor(r *http.Request) view.Nav {
	session := SessionFromContext(r.Context())
	if session == nil {
		return view.Nav{}
	}
	return view.Nav{SignedIn: true, UserName: session.UserName}
}

// render writes a full HTML page with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}

// patchNotices replaces the notice area over SSE.
func patchNotices(sse *datastar.ServerSentEventGenerator, notices ...view.Notice) {
	if err := sse.PatchElementTempl(view.Notices(notices)); err != nil {
		slog.Error("patch notices", "error", err)
	}
}

// statusFor maps a service error to the status of the page that reports it.
func statusFor(err error) int {
	var remote *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &remote):
		if remote.Status >= 400 && remote.Status < 500 {
			return remote.Status
		}
		if remote.Status >= 500 {
			return http.StatusBadGateway
		}
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// logUnexpected logs err unless it is a validation failure the user caused.
func logUnexpected(msg string, err error, args ...any) {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrEmptyQuery) {
		return
	}
	slog.Error(msg, append(args, "error", err)...)
}
