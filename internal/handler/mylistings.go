package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/service"
	"github.com/msomdec/buycars/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	msgOwnedFailed  = "Failed to load your posts"
	msgPostMissing  = "Post not found"
	msgUpdateFailed = "Failed to update post"
	msgDeleteFailed = "Failed to delete post"
	msgUpdated      = "Post updated successfully"
	msgDeleted      = "Post deleted successfully"
)

// MyListingsHandler serves the owner's listing management view.
type MyListingsHandler struct {
	listings *service.ListingService
}

// NewMyListingsHandler creates a new MyListingsHandler.
func NewMyListingsHandler(listings *service.ListingService) *MyListingsHandler {
	return &MyListingsHandler{listings: listings}
}

// HandleList renders the owner's listings. ?edit={id} opens the edit
// dialog without script.
// GET /my-listings
func (h *MyListingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	notices := popFlash(w, r)

	owned, err := h.listings.Owned(r.Context(), session)
	if err != nil {
		slog.Error("load owned listings", "user", session.UserID, "error", err)
		notices = append(notices, view.Error(domain.UserMessage(err, msgOwnedFailed)))
		render(w, r, http.StatusBadGateway, view.MyListingsPage(navFor(r), &domain.OwnerListings{OwnerName: session.UserName}, nil, notices))
		return
	}

	var modal templ.Component
	if editID := r.URL.Query().Get("edit"); editID != "" {
		if l := findListing(owned, editID); l != nil {
			modal = view.EditModal(view.FormFromListing(l), "")
		} else {
			notices = append(notices, view.Error(msgPostMissing))
		}
	}

	render(w, r, http.StatusOK, view.MyListingsPage(navFor(r), owned, modal, notices))
}

// HandleEdit opens the pre-filled edit dialog.
// GET /my-listings/{id}/edit
func (h *MyListingsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !isDatastar(r) {
		http.Redirect(w, r, "/my-listings?edit="+url.QueryEscape(id), http.StatusSeeOther)
		return
	}

	listing, err := h.listings.OwnedListing(r.Context(), SessionFromContext(r.Context()), id)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		logUnexpected("load listing for edit", err, "id", id)
		patchNotices(sse, view.Error(domain.UserMessage(err, msgPostMissing)))
		return
	}
	if err := sse.PatchElementTempl(view.EditModal(view.FormFromListing(listing), "")); err != nil {
		slog.Error("patch edit modal", "error", err)
	}
}

// HandleUpdate submits the edit dialog, then shows the owner's listings as
// re-fetched from the backend.
// POST /my-listings/{id}
func (h *MyListingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	id := r.PathValue("id")
	form := listingFormFromRequest(r, id)

	input, err := parseListingForm(form)
	var res *service.ChangeResult
	if err == nil {
		res, err = h.listings.Update(r.Context(), session, id, input)
	}
	if err != nil {
		logUnexpected("update listing", err, "id", id)
		msg := domain.UserMessage(err, msgUpdateFailed)
		if isDatastar(r) {
			if perr := datastar.NewSSE(w, r).PatchElementTempl(view.EditModal(form, msg)); perr != nil {
				slog.Error("patch edit modal", "error", perr)
			}
			return
		}
		current, lerr := h.listings.Owned(r.Context(), session)
		if lerr != nil {
			current = &domain.OwnerListings{OwnerName: session.UserName}
		}
		render(w, r, statusFor(err), view.MyListingsPage(navFor(r), current, view.EditModal(form, msg), nil))
		return
	}

	if isDatastar(r) {
		h.patchChanged(datastar.NewSSE(w, r), res, view.Success(msgUpdated))
		return
	}
	setFlash(w, view.Success(msgUpdated))
	http.Redirect(w, r, "/my-listings", http.StatusSeeOther)
}

// HandleDeleteConfirm shows the delete confirmation step.
// GET /my-listings/{id}/delete
func (h *MyListingsHandler) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	id := r.PathValue("id")

	owned, err := h.listings.Owned(r.Context(), session)
	var listing *domain.Listing
	if err == nil {
		if listing = findListing(owned, id); listing == nil {
			err = domain.ErrNotFound
		}
	}

	if isDatastar(r) {
		sse := datastar.NewSSE(w, r)
		if err != nil {
			logUnexpected("load listing for delete", err, "id", id)
			patchNotices(sse, view.Error(domain.UserMessage(err, msgPostMissing)))
			return
		}
		if err := sse.PatchElementTempl(view.DeleteConfirm(listing)); err != nil {
			slog.Error("patch delete confirm", "error", err)
		}
		return
	}

	if err != nil {
		logUnexpected("load listing for delete", err, "id", id)
		setFlash(w, view.Error(domain.UserMessage(err, msgPostMissing)))
		http.Redirect(w, r, "/my-listings", http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, view.MyListingsPage(navFor(r), owned, view.DeleteConfirm(listing), nil))
}

// HandleDelete deletes a confirmed listing, then shows the owner's
// re-fetched listings.
// POST /my-listings/{id}/delete
func (h *MyListingsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	res, err := h.listings.Delete(r.Context(), SessionFromContext(r.Context()), id)
	if err != nil {
		logUnexpected("delete listing", err, "id", id)
		msg := domain.UserMessage(err, msgDeleteFailed)
		if isDatastar(r) {
			sse := datastar.NewSSE(w, r)
			if perr := sse.PatchElementTempl(view.ModalClosed()); perr != nil {
				slog.Error("close modal", "error", perr)
			}
			patchNotices(sse, view.Error(msg))
			return
		}
		setFlash(w, view.Error(msg))
		http.Redirect(w, r, "/my-listings", http.StatusSeeOther)
		return
	}

	if isDatastar(r) {
		h.patchChanged(datastar.NewSSE(w, r), res, view.Success(msgDeleted))
		return
	}
	setFlash(w, view.Success(msgDeleted))
	http.Redirect(w, r, "/my-listings", http.StatusSeeOther)
}

// patchChanged closes the dialog after an applied change and replaces the
// listing grid with the re-fetched set. When the re-fetch failed the grid
// is left as is and the load failure is shown next to notice.
func (h *MyListingsHandler) patchChanged(sse *datastar.ServerSentEventGenerator, res *service.ChangeResult, notice view.Notice) {
	if err := sse.PatchElementTempl(view.ModalClosed()); err != nil {
		slog.Error("close modal", "error", err)
		return
	}
	if res.ReloadErr != nil {
		patchNotices(sse, notice, view.Error(msgOwnedFailed))
		return
	}
	if err := sse.PatchElementTempl(view.OwnerListings(res.Owned)); err != nil {
		slog.Error("patch owned listings", "error", err)
	}
	patchNotices(sse, notice)
}

func findListing(owned *domain.OwnerListings, id string) *domain.Listing {
	for i := range owned.Listings {
		if owned.Listings[i].ID == id {
			return &owned.Listings[i]
		}
	}
	return nil
}
