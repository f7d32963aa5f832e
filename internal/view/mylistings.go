package view

import (
	"net/url"

	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
)

// MyListingsPage renders the owner's listings. modal, when non-nil, is an
// open edit or delete dialog.
func MyListingsPage(nav Nav, owned *domain.OwnerListings, modal templ.Component, notices []Notice) templ.Component {
	return Layout("My posts", nav, notices, component(func(h *html) {
		h.render(OwnerListings(owned))
		if modal == nil {
			modal = ModalClosed()
		}
		h.render(modal)
	}))
}

// OwnerListings is the owner's name and listing grid. SSE handlers replace
// it after every mutation.
func OwnerListings(owned *domain.OwnerListings) templ.Component {
	return component(func(h *html) {
		h.open("section", "id", "owner-listings")
		if owned == nil || len(owned.Listings) == 0 {
			h.open("div", "class", "empty-state")
			h.elem("h2", "No Posts Yet")
			h.elem("p", "Create your first post to get started!")
			h.elem("a", "Create Post", "href", "/sell", "class", "button")
			h.close("div")
			h.close("section")
			return
		}

		h.elem("h1", owned.OwnerName+"'s Posts", "class", "owner-name")
		h.open("div", "class", "grid")
		for i := range owned.Listings {
			h.render(ownedCard(&owned.Listings[i]))
		}
		h.close("div")
		h.close("section")
	})
}

func ownedCard(l *domain.Listing) templ.Component {
	return component(func(h *html) {
		path := ownedListingPath(l.ID)
		h.open("div", "class", "card", "data-listing-id", l.ID)
		if cover := l.CoverImage(); cover != "" {
			h.open("img", "src", safeURL(cover), "alt", l.Manufacturer+" "+l.Model)
		}
		h.open("div", "class", "card-body")
		h.open("h3", "class", "card-title")
		h.text(l.Manufacturer + " " + l.Model)
		h.close("h3")
		h.open("p", "class", "year")
		h.text("Year: ")
		h.int(l.Year)
		h.close("p")
		h.elem("p", formatPrice(l.Price), "class", "price")
		h.elem("p", "KMs on Odometer: "+formatKM(l.Odometer), "class", "odometer")
		h.open("div", "class", "tags")
		for _, t := range l.Tags {
			h.elem("span", t, "class", "tag")
		}
		h.close("div")
		h.elem("a", "Edit", "href", safeURL("/my-listings?edit="+url.QueryEscape(l.ID)), "class", "button edit",
			"data-on:click", "evt.preventDefault(); @get('"+path+"/edit')")
		h.raw(" ")
		h.elem("a", "Delete", "href", safeURL(path+"/delete"), "class", "button button-danger delete",
			"data-on:click", "evt.preventDefault(); @get('"+path+"/delete')")
		h.close("div")
		h.close("div")
	})
}

// ModalClosed is the empty dialog slot.
func ModalClosed() templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="modal"></div>`)
	})
}

// EditModal is the pre-filled edit dialog.
func EditModal(f ListingForm, errMsg string) templ.Component {
	return component(func(h *html) {
		path := ownedListingPath(f.ID)
		h.open("div", "id", "modal", "class", "modal")
		h.open("div", "class", "modal-body", "role", "dialog", "aria-label", "Update Post")
		h.elem("h2", "Update Post")
		if errMsg != "" {
			h.elem("p", errMsg, "class", "notice notice-error")
		}
		h.open("form", "id", "edit-form", "class", "form", "method", "post", "action", path,
			"data-on:submit", "evt.preventDefault(); @post('"+path+"', {contentType: 'form'})")
		h.render(fieldInputs(listingFields(f)))
		h.render(imageChoices(f.Images))
		h.elem("button", "Update", "type", "submit", "class", "button")
		h.raw(" ")
		h.elem("a", "Cancel", "href", "/my-listings", "class", "button button-secondary")
		h.close("form")
		h.close("div")
		h.close("div")
	})
}

// DeleteConfirm asks for explicit confirmation before deleting l.
func DeleteConfirm(l *domain.Listing) templ.Component {
	return component(func(h *html) {
		path := ownedListingPath(l.ID) + "/delete"
		h.open("div", "id", "modal", "class", "modal")
		h.open("div", "class", "modal-body", "role", "alertdialog", "aria-label", "Delete Post")
		h.elem("p", "Are you sure you want to delete this post?")
		h.elem("p", l.Manufacturer+" "+l.Model, "class", "confirm-subject")
		h.open("form", "id", "delete-form", "method", "post", "action", path,
			"data-on:submit", "evt.preventDefault(); @post('"+path+"', {contentType: 'form'})")
		h.elem("button", "Delete", "type", "submit", "class", "button button-danger")
		h.raw(" ")
		h.elem("a", "Cancel", "href", "/my-listings", "class", "button button-secondary")
		h.close("form")
		h.close("div")
		h.close("div")
	})
}
