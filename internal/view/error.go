package view

import (
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage renders a standalone error page.
func ErrorPage(nav Nav, status int, title, message string) templ.Component {
	return Layout(title, nav, nil, component(func(h *html) {
		h.open("section", "class", "error-page")
		h.elem("h1", strconv.Itoa(status)+" "+title)
		h.elem("p", message)
		h.elem("a", "Back to listings", "href", "/", "class", "button")
		h.close("section")
	}))
}
