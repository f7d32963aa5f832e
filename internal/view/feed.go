package view

import (
	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
)

// FeedPage renders the listing feed. query is echoed into both search
// boxes so the box text always matches the address bar.
func FeedPage(nav Nav, query string, listings []domain.Listing, notices []Notice) templ.Component {
	return Layout("Cars for sale", nav, notices, component(func(h *html) {
		h.open("div", "data-signals", "{showSearch: false, lastY: 0}", "data-on:scroll__window", stickyScrollExpr())
		h.open("div", "id", "sticky-search", "class", "sticky-search", "style", "display: none", "data-show", "$showSearch")
		h.render(SearchForm("sticky-search-form", query))
		h.close("div")

		h.elem("h1", "Find your next car")
		h.render(SearchForm("search-form", query))
		h.render(ListingGrid(listings))
		h.close("div")
	}))
}

// SearchForm posts the query to /search. With datastar loaded the post is
// made in the background and answered with a redirect or a notice.
func SearchForm(id, query string) templ.Component {
	return component(func(h *html) {
		h.open("form", "id", id, "class", "search-form", "method", "post", "action", "/search",
			"data-on:submit", "evt.preventDefault(); @post('/search', {contentType: 'form'})")
		h.open("input", "type", "search", "name", "q", "value", query,
			"placeholder", "Search by tags, name, model, price, or city", "aria-label", "Search")
		h.elem("button", "Search", "type", "submit", "class", "button")
		h.close("form")
	})
}

// ListingGrid renders the card grid. An empty set renders an empty grid.
func ListingGrid(listings []domain.Listing) templ.Component {
	return component(func(h *html) {
		h.open("div", "id", "listing-grid", "class", "grid")
		for i := range listings {
			h.render(listingCard(&listings[i]))
		}
		h.close("div")
	})
}

func listingCard(l *domain.Listing) templ.Component {
	return component(func(h *html) {
		h.open("a", "class", "card", "href", safeURL(listingPath(l.ID)), "data-listing-id", l.ID)
		if cover := l.CoverImage(); cover != "" {
			h.open("img", "src", safeURL(cover), "alt", l.Manufacturer+" "+l.Model, "loading", "lazy")
		}
		h.open("div", "class", "card-body")
		h.open("h3", "class", "card-title")
		h.int(l.Year)
		h.text(" " + l.Manufacturer + " " + l.Model)
		h.close("h3")
		h.elem("p", "KMs on Odometer: "+formatKM(l.Odometer), "class", "odometer")
		h.elem("p", formatPrice(l.Price), "class", "price")
		h.elem("p", l.RegistrationPlace, "class", "place")
		h.elem("p", l.Paint, "class", "paint")
		h.close("div")
		h.close("a")
	})
}
