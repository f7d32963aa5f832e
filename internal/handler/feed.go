package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/service"
	"github.com/msomdec/buycars/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	msgEmptyQuery = "Search query cannot be empty"
	msgNoResults  = "No data found matching the search query."
	msgSearchDone = "Search completed successfully!"
	msgFeedFailed = "Failed to fetch data"
)

// FeedHandler serves the listing feed and the search box.
type FeedHandler struct {
	listings *service.ListingService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(listings *service.ListingService) *FeedHandler {
	return &FeedHandler{listings: listings}
}

// HandleFeed renders the feed for the q parameter: every listing when it is
// blank, otherwise the search results.
// GET /?q=...
func (h *FeedHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	rawQuery := r.URL.Query().Get("q")
	query := service.NormalizeQuery(rawQuery)
	notices := popFlash(w, r)

	listings, err := h.listings.Feed(r.Context(), session.Token(), query)
	if err != nil {
		slog.Error("load feed", "query", query, "error", err)
		notices = append(notices, view.Error(domain.UserMessage(err, msgFeedFailed)))
		render(w, r, http.StatusBadGateway, view.FeedPage(navFor(r), rawQuery, nil, notices))
		return
	}

	if query != "" {
		if len(listings) == 0 {
			notices = append(notices, view.Info(msgNoResults))
		} else {
			notices = append(notices, view.Success(msgSearchDone))
		}
	}

	render(w, r, http.StatusOK, view.FeedPage(navFor(r), rawQuery, listings, notices))
}

// HandleSearch validates a submitted query and moves the address bar to
// /?q=..., which performs the fetch. A blank query is rejected here without
// contacting the backend, and the page it came from is shown again.
// POST /search
func (h *FeedHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query, err := service.ValidateQuery(r.FormValue("q"))
	if err != nil {
		if isDatastar(r) {
			patchNotices(datastar.NewSSE(w, r), view.Error(msgEmptyQuery))
			return
		}
		setFlash(w, view.Error(msgEmptyQuery))
		http.Redirect(w, r, feedReturnPath(r), http.StatusSeeOther)
		return
	}

	target := "/?" + url.Values{"q": {query}}.Encode()
	if isDatastar(r) {
		if err := datastar.NewSSE(w, r).Redirect(target); err != nil {
			slog.Error("redirect search", "error", err)
		}
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// feedReturnPath is the feed view the search was submitted from, so a
// rejected search leaves the shown results in place. Anything other than
// a same-host feed URL falls back to the full feed.
func feedReturnPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path != "/" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	q := service.NormalizeQuery(ref.Query().Get("q"))
	if q == "" {
		return "/"
	}
	return "/?" + url.Values{"q": {q}}.Encode()
}
