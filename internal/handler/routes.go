package handler

import (
	"net/http"

	"github.com/msomdec/buycars/internal/service"
	"github.com/msomdec/buycars/internal/view"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, listings *service.ListingService, limiter *service.TokenBucket, secureCookies bool) {
	authHandler := NewAuthHandler(auth, secureCookies)
	feedHandler := NewFeedHandler(listings)
	listingHandler := NewListingHandler(listings)
	myListingsHandler := NewMyListingsHandler(listings)
	sellHandler := NewSellHandler(listings)

	optional := func(fn http.HandlerFunc) http.Handler { return OptionalAuth(auth, fn) }
	required := func(fn http.HandlerFunc) http.Handler { return RequireAuth(auth, fn) }
	limited := func(fn http.HandlerFunc) http.Handler { return RateLimit(limiter, OptionalAuth(auth, fn)) }

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /static/", http.FileServerFS(view.Static))
	mux.Handle("GET /api/session", optional(authHandler.HandleSession))

	// Feed and search.
	mux.Handle("GET /{$}", optional(feedHandler.HandleFeed))
	mux.Handle("POST /search", optional(feedHandler.HandleSearch))

	// Listing detail.
	mux.Handle("GET /listings/{id}", optional(listingHandler.HandleView))
	mux.Handle("GET /listings/{id}/contact", optional(listingHandler.HandleContact))

	// Owner's listings.
	mux.Handle("GET /my-listings", required(myListingsHandler.HandleList))
	mux.Handle("GET /my-listings/{id}/edit", required(myListingsHandler.HandleEdit))
	mux.Handle("POST /my-listings/{id}", required(myListingsHandler.HandleUpdate))
	mux.Handle("GET /my-listings/{id}/delete", required(myListingsHandler.HandleDeleteConfirm))
	mux.Handle("POST /my-listings/{id}/delete", required(myListingsHandler.HandleDelete))

	// Create listing.
	mux.Handle("GET /sell", required(sellHandler.HandleForm))
	mux.Handle("POST /sell", required(sellHandler.HandleSubmit))

	// Auth.
	mux.Handle("GET /signup", optional(authHandler.HandleSignupPage))
	mux.Handle("POST /signup", limited(authHandler.HandleSignup))
	mux.Handle("POST /signup/verify", limited(authHandler.HandleVerifyOTP))
	mux.Handle("POST /signup/resend", limited(authHandler.HandleResendOTP))
	mux.Handle("GET /signin", optional(authHandler.HandleSigninPage))
	mux.Handle("POST /signin", limited(authHandler.HandleSignin))
	mux.Handle("GET /logout", optional(authHandler.HandleLogoutPage))
	mux.Handle("POST /logout", optional(authHandler.HandleLogout))
}
