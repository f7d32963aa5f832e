package view

import (
	"net/url"
	"strconv"
	"strings"
)

func formatPrice(price int) string {
	return "₹ " + strconv.Itoa(price)
}

func formatKM(km int) string {
	return strconv.Itoa(km) + " KM"
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

// listingPath is the detail URL for a listing. The escaped id is also safe
// inside a single-quoted datastar expression.
func listingPath(id string) string {
	return "/listings/" + url.PathEscape(id)
}

func ownedListingPath(id string) string {
	return "/my-listings/" + url.PathEscape(id)
}
