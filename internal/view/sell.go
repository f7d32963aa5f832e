package view

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
)

// SellPage renders the create-listing form.
func SellPage(nav Nav, f ListingForm, notices []Notice) templ.Component {
	return Layout("Sell your car", nav, notices, component(func(h *html) {
		h.elem("h1", "Sell your car")
		h.open("form", "id", "sell-form", "class", "form", "method", "post", "action", "/sell", "enctype", "multipart/form-data")
		h.open("label")
		h.text("Images (up to " + strconv.Itoa(domain.MaxImages) + ")")
		h.open("input", "type", "file", "name", "images", "accept", "image/*", "multiple", "multiple")
		h.close("label")
		h.render(fieldInputs(listingFields(f)))
		h.elem("button", "Post", "type", "submit", "class", "button")
		h.close("form")
	}))
}
