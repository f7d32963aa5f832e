package view

import (
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
)

// ListingForm holds listing form values as typed, so a rejected submission
// can be shown again unchanged.
type ListingForm struct {
	ID                string
	Manufacturer      string
	Model             string
	Year              string
	Paint             string
	RegistrationPlace string
	Odometer          string
	PreviousOwners    string
	Scratches         string
	Price             string
	Tags              string   // comma-separated
	Images            []string // hosted URLs, edit form only
}

// FormFromListing pre-fills the edit form.
func FormFromListing(l *domain.Listing) ListingForm {
	return ListingForm{
		ID:                l.ID,
		Manufacturer:      l.Manufacturer,
		Model:             l.Model,
		Year:              strconv.Itoa(l.Year),
		Paint:             l.Paint,
		RegistrationPlace: l.RegistrationPlace,
		Odometer:          strconv.Itoa(l.Odometer),
		PreviousOwners:    strconv.Itoa(l.PreviousOwners),
		Scratches:         strconv.Itoa(l.Scratches),
		Price:             strconv.Itoa(l.Price),
		Tags:              strings.Join(l.Tags, ", "),
		Images:            slices.Clone(l.Images),
	}
}

type formField struct {
	label, name, value, inputType string
}

func listingFields(f ListingForm) []formField {
	return []formField{
		{"Company", "manufacturer", f.Manufacturer, "text"},
		{"Model", "model", f.Model, "text"},
		{"Year", "year", f.Year, "number"},
		{"Original Paint", "paint", f.Paint, "text"},
		{"Tags (comma separated)", "tags", f.Tags, "text"},
		{"Number of previous buyers", "previous_owners", f.PreviousOwners, "number"},
		{"Registration Place", "registration_place", f.RegistrationPlace, "text"},
		{"KMs on Odometer", "odometer", f.Odometer, "number"},
		{"Major Scratches", "scratches", f.Scratches, "number"},
		{"Price", "price", f.Price, "number"},
	}
}

func fieldInputs(fields []formField) templ.Component {
	return component(func(h *html) {
		for _, fld := range fields {
			h.open("label")
			h.text(fld.label)
			attrs := []string{"type", fld.inputType, "name", fld.name, "value", fld.value}
			if fld.inputType == "number" {
				attrs = append(attrs, "min", "0")
			}
			h.open("input", attrs...)
			h.close("label")
		}
	})
}

// imageChoices lists the current photos as checked boxes, one per URL, so
// each URL is submitted back unchanged. Unchecking a box drops the photo.
func imageChoices(images []string) templ.Component {
	return component(func(h *html) {
		h.open("fieldset", "class", "image-choices")
		h.elem("legend", "Images")
		for i, img := range images {
			h.open("label", "class", "image-choice")
			h.open("input", "type", "checkbox", "name", "images", "value", img, "checked", "checked")
			h.open("img", "src", safeURL(img), "alt", "Photo "+strconv.Itoa(i+1), "loading", "lazy")
			h.close("label")
		}
		h.close("fieldset")
	})
}
