package view

import (
	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Nav is the signed-in state shown in the navigation bar.
type Nav struct {
	SignedIn bool
	UserName string
}

// Notice is a transient status message.
type Notice struct {
	Kind string // success, error, warning or info
	Text string
}

func Success(text string) Notice { return Notice{Kind: "success", Text: text} }
func Error(text string) Notice   { return Notice{Kind: "error", Text: text} }
func Warning(text string) Notice { return Notice{Kind: "warning", Text: text} }
func Info(text string) Notice    { return Notice{Kind: "info", Text: text} }

// Layout wraps body in the page shell: head, navigation and notices.
func Layout(title string, nav Nav, notices []Notice, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "en")
		h.open("head")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.elem("title", title+" | BuyCars")
		h.raw(`<script type="module" src="` + datastarScript + `"></script>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.close("head")
		h.open("body")
		h.render(navBar(nav))
		h.render(Notices(notices))
		h.open("main", "id", "content", "class", "container")
		h.render(body)
		h.close("main")
		h.close("body")
		h.close("html")
	})
}

func navBar(nav Nav) templ.Component {
	return component(func(h *html) {
		h.open("nav", "class", "navbar")
		h.elem("a", "BuyCars", "href", "/", "class", "brand")
		h.open("ul", "class", "nav-links")
		h.raw("<li>")
		h.elem("a", "Home", "href", "/")
		h.raw("</li><li>")
		h.elem("a", "Sell Car", "href", "/sell")
		h.raw("</li>")
		if nav.SignedIn {
			h.raw("<li>")
			h.elem("a", "My Posts", "href", "/my-listings")
			h.raw("</li><li>")
			h.elem("span", "Hi, "+nav.UserName, "class", "nav-user")
			h.raw("</li><li>")
			h.elem("a", "Logout", "href", "/logout")
			h.raw("</li>")
		} else {
			h.raw("<li>")
			h.elem("a", "Sign In", "href", "/signin")
			h.raw("</li><li>")
			h.elem("a", "Sign Up", "href", "/signup")
			h.raw("</li>")
		}
		h.close("ul")
		h.close("nav")
	})
}

// Notices renders the notice area. SSE handlers replace it wholesale.
func Notices(notices []Notice) templ.Component {
	return component(func(h *html) {
		h.open("div", "id", "notices", "class", "notices", "role", "status")
		for _, n := range notices {
			h.elem("p", n.Text, "class", "notice notice-"+n.Kind)
		}
		h.close("div")
	})
}
