package view

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
)

// ListingPage renders the detail view for one listing.
func ListingPage(nav Nav, l *domain.Listing, showContact bool) templ.Component {
	return Layout(l.Manufacturer+" "+l.Model, nav, nil, component(func(h *html) {
		h.open("article", "class", "listing-detail", "data-listing-id", l.ID)
		h.open("h1")
		h.text(l.Manufacturer + " " + l.Model)
		h.close("h1")

		h.open("div", "class", "carousel")
		for i, img := range l.Images {
			h.open("img", "src", safeURL(img), "alt", "Photo "+strconv.Itoa(i+1))
		}
		h.close("div")

		h.elem("h2", "Specifications")
		h.open("table", "class", "spec-table")
		for _, row := range specRows(l) {
			h.raw("<tr>")
			h.elem("th", row[0], "scope", "row")
			h.elem("td", row[1])
			h.raw("</tr>")
		}
		h.close("table")

		h.open("section", "class", "contact-section")
		h.elem("h2", "Contact Details")
		if showContact {
			h.render(ContactDetails(l))
		} else {
			h.open("div", "id", "contact")
			h.elem("a", "Show Contact Details", "href", safeURL(listingPath(l.ID)+"?contact=1"), "class", "button",
				"data-on:click", "evt.preventDefault(); @get('"+listingPath(l.ID)+"/contact')")
			h.close("div")
		}
		h.close("section")
		h.close("article")
	}))
}

func specRows(l *domain.Listing) [][2]string {
	return [][2]string{
		{"Manufacturer", l.Manufacturer},
		{"Model", l.Model},
		{"Year of Model", strconv.Itoa(l.Year)},
		{"Km on Odometer", formatKM(l.Odometer)},
		{"Registration Place", l.RegistrationPlace},
		{"Original Paint", l.Paint},
		{"Accidents Reported", strconv.Itoa(l.Accidents)},
		{"Previous Owners", strconv.Itoa(l.PreviousOwners)},
		{"Major Scratches", strconv.Itoa(l.Scratches)},
		{"Asking Price", formatPrice(l.Price)},
		{"Posted By", l.PostedBy},
	}
}

// ContactDetails is the revealed contact block. It replaces #contact.
func ContactDetails(l *domain.Listing) templ.Component {
	return component(func(h *html) {
		location := l.Location
		if location == "" {
			location = l.RegistrationPlace
		}
		h.open("dl", "id", "contact", "class", "contact-details")
		h.elem("dt", "Phone")
		h.elem("dd", orNotProvided(l.Phone), "class", "contact-phone")
		h.elem("dt", "Email")
		h.elem("dd", orNotProvided(l.Email), "class", "contact-email")
		h.elem("dt", "Location")
		h.elem("dd", orNotProvided(location), "class", "contact-location")
		h.close("dl")
	})
}
