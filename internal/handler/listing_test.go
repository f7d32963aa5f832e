package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/msomdec/buycars/internal/marketplace/marketplacetest"
)

func addDetailListing(env *testEnv) string {
	return env.backend.AddListing(marketplacetest.Listing{
		Manufacturer:      "Hyundai",
		Model:             "Creta",
		Year:              2020,
		Paint:             "White",
		RegistrationPlace: "Pune",
		Odometer:          42000,
		PreviousOwners:    1,
		Price:             1200000,
		Images:            []string{"https://img/1.jpg", "https://img/2.jpg"},
		Name:              "Asha",
		Phone:             "9876543210",
	})
}

func TestListing_View(t *testing.T) {
	env := newTestEnv(t)
	id := addDetailListing(env)

	resp := env.get(t, "/listings/"+id)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	doc := parseDoc(t, resp)

	if got := doc.Find(".listing-detail").AttrOr("data-listing-id", ""); got != id {
		t.Fatalf("expected listing %s, got %q", id, got)
	}
	if got := doc.Find(".carousel img").Length(); got != 2 {
		t.Fatalf("expected 2 carousel images, got %d", got)
	}
	table := doc.Find(".spec-table").Text()
	for _, want := range []string{"Hyundai", "Creta", "2020", "42000 KM", "Pune", "₹ 1200000", "Asha"} {
		if !strings.Contains(table, want) {
			t.Fatalf("expected spec table to contain %q, got %q", want, table)
		}
	}
	if doc.Find(".contact-phone").Length() != 0 {
		t.Fatal("expected contact details to be hidden")
	}
	if !strings.Contains(doc.Find("#contact").Text(), "Show Contact Details") {
		t.Fatal("expected reveal link")
	}
}

func TestListing_ContactReveal(t *testing.T) {
	env := newTestEnv(t)
	id := addDetailListing(env)

	resp := env.get(t, "/listings/"+id+"/contact")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/listings/"+id+"?contact=1" {
		t.Fatalf("unexpected redirect %q", loc)
	}

	doc := parseDoc(t, env.get(t, "/listings/"+id+"?contact=1"))
	if got := doc.Find("#contact .contact-phone").Text(); got != "9876543210" {
		t.Fatalf("expected phone, got %q", got)
	}
	if got := doc.Find("#contact .contact-email").Text(); got != "Not provided" {
		t.Fatalf("expected missing email placeholder, got %q", got)
	}
	if got := doc.Find("#contact .contact-location").Text(); got != "Pune" {
		t.Fatalf("expected registration place as location, got %q", got)
	}
}

func TestListing_ContactDatastar(t *testing.T) {
	env := newTestEnv(t)
	id := addDetailListing(env)

	_, body := env.datastar(t, http.MethodGet, "/listings/"+id+"/contact", nil)
	if !strings.Contains(body, `id="contact"`) || !strings.Contains(body, "9876543210") {
		t.Fatalf("expected contact patch, got %q", body)
	}
}

func TestListing_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/listings/missing")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	doc := parseDoc(t, resp)
	if got := doc.Find(".error-page p").Text(); got != "Failed to load car details" {
		t.Fatalf("expected generic failure message, got %q", got)
	}
}
