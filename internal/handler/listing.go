package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/msomdec/buycars/internal/service"
	"github.com/msomdec/buycars/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const msgDetailFailed = "Failed to load car details"

// ListingHandler serves the listing detail view.
type ListingHandler struct {
	listings *service.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// HandleView renders one listing. Every failure shows the same notice.
// GET /listings/{id}
func (h *ListingHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	listing, err := h.listings.Get(r.Context(), SessionFromContext(r.Context()).Token(), id)
	if err != nil {
		slog.Error("load listing", "id", id, "error", err)
		render(w, r, http.StatusBadGateway, view.ErrorPage(navFor(r), http.StatusBadGateway, "Error", msgDetailFailed))
		return
	}

	showContact := r.URL.Query().Get("contact") == "1"
	render(w, r, http.StatusOK, view.ListingPage(navFor(r), listing, showContact))
}

// HandleContact reveals the contact details in place.
// GET /listings/{id}/contact
func (h *ListingHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !isDatastar(r) {
		http.Redirect(w, r, "/listings/"+url.PathEscape(id)+"?contact=1", http.StatusSeeOther)
		return
	}

	listing, err := h.listings.Get(r.Context(), SessionFromContext(r.Context()).Token(), id)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		slog.Error("load listing contact", "id", id, "error", err)
		patchNotices(sse, view.Error(msgDetailFailed))
		return
	}

	if err := sse.PatchElementTempl(view.ContactDetails(listing)); err != nil {
		slog.Error("patch contact details", "error", err)
	}
}
