// Package view renders the HTML pages and the fragments patched into them
// over datastar SSE.
package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// html writes markup to w, remembering the first write error.
type html struct {
	w   io.Writer
	ctx context.Context
	err error
}

// component turns a render function into a templ.Component.
func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w, ctx: ctx}
		fn(h)
		return h.err
	})
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) int(n int) {
	h.raw(strconv.Itoa(n))
}

// open writes a start tag. attrs alternate name, value. Values are escaped.
func (h *html) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.raw(" " + attrs[i] + `="` + templ.EscapeString(attrs[i+1]) + `"`)
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</" + tag + ">")
}

// elem writes a complete element with escaped text content.
func (h *html) elem(tag, content string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(content)
	h.close(tag)
}

func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// safeURL sanitizes a link or image source taken from backend data.
func safeURL(u string) string {
	return string(templ.URL(u))
}
