package view

import "strconv"

// StickyThreshold is how far the page must be scrolled before the sticky
// search bar may appear.
const StickyThreshold = 200

// stickySearchVisible is the rule stickyScrollExpr encodes for the browser:
// the bar shows after a scroll from lastY to currentY that ends past the
// threshold while moving upward. It is the reference the expression is
// tested against.
func stickySearchVisible(lastY, currentY float64) bool {
	return currentY > StickyThreshold && currentY < lastY
}

// stickyScrollExpr is the client-side form of stickySearchVisible, run on
// every window scroll event.
func stickyScrollExpr() string {
	return "$showSearch = window.scrollY > " + strconv.Itoa(StickyThreshold) +
		" && window.scrollY < $lastY; $lastY = window.scrollY"
}
