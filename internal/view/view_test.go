package view_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/view"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

func TestFeedPage_Cards(t *testing.T) {
	listings := []domain.Listing{
		{ID: "a/b", Manufacturer: "Maruti", Model: "Swift", Odometer: 12000, Price: 450000, Images: []string{"https://img/1.jpg"}},
		{ID: "c2", Manufacturer: "Tata", Model: "Nexon"},
	}
	doc := renderDoc(t, view.FeedPage(view.Nav{}, "swift", listings, nil))

	cards := doc.Find("#listing-grid a.card")
	if cards.Length() != 2 {
		t.Fatalf("expected 2 cards, got %d", cards.Length())
	}
	first := cards.First()
	if got := first.AttrOr("href", ""); got != "/listings/a%2Fb" {
		t.Fatalf("expected escaped listing path, got %q", got)
	}
	if got := first.Find("img").AttrOr("src", ""); got != "https://img/1.jpg" {
		t.Fatalf("expected cover image, got %q", got)
	}
	if got := first.Find(".odometer").Text(); got != "KMs on Odometer: 12000 KM" {
		t.Fatalf("unexpected odometer text %q", got)
	}
	if cards.Eq(1).Find("img").Length() != 0 {
		t.Fatal("expected no image for a listing without photos")
	}
}

func TestFeedPage_EscapesQuery(t *testing.T) {
	doc := renderDoc(t, view.FeedPage(view.Nav{}, `"><script>x</script>`, nil, nil))

	if doc.Find("script:not([src])").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Text() == "x"
	}).Length() != 0 {
		t.Fatal("query was not escaped")
	}
	if got := doc.Find(`#search-form input[name="q"]`).AttrOr("value", ""); got != `"><script>x</script>` {
		t.Fatalf("expected the raw query as the value, got %q", got)
	}
}

func TestLayout_Nav(t *testing.T) {
	anon := renderDoc(t, view.FeedPage(view.Nav{}, "", nil, nil))
	if anon.Find(`.navbar a[href="/signin"]`).Length() != 1 || anon.Find(`.navbar a[href="/my-listings"]`).Length() != 0 {
		t.Fatal("unexpected anonymous nav")
	}

	signed := renderDoc(t, view.FeedPage(view.Nav{SignedIn: true, UserName: "Asha"}, "", nil, nil))
	if got := signed.Find(".navbar .nav-user").Text(); got != "Hi, Asha" {
		t.Fatalf("expected greeting, got %q", got)
	}
	if signed.Find(`.navbar a[href="/my-listings"]`).Length() != 1 {
		t.Fatal("expected My Posts link")
	}
}

func TestNotices(t *testing.T) {
	doc := renderDoc(t, view.Notices([]view.Notice{view.Success("Saved"), view.Warning("1 of 2 images failed to upload")}))

	notices := doc.Find("#notices .notice")
	if notices.Length() != 2 {
		t.Fatalf("expected 2 notices, got %d", notices.Length())
	}
	if !notices.First().HasClass("notice-success") || !notices.Eq(1).HasClass("notice-warning") {
		t.Fatal("expected notice kinds as classes")
	}
}

func TestContactDetails(t *testing.T) {
	doc := renderDoc(t, view.ContactDetails(&domain.Listing{Phone: "98765", Location: "Mumbai", RegistrationPlace: "Pune"}))

	if got := doc.Find(".contact-phone").Text(); got != "98765" {
		t.Fatalf("unexpected phone %q", got)
	}
	if got := doc.Find(".contact-email").Text(); got != "Not provided" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := doc.Find(".contact-location").Text(); got != "Mumbai" {
		t.Fatalf("expected explicit location, got %q", got)
	}
}

func TestOwnerListings_Empty(t *testing.T) {
	doc := renderDoc(t, view.OwnerListings(&domain.OwnerListings{OwnerName: "Asha"}))

	if doc.Find("#owner-listings .empty-state").Length() != 1 {
		t.Fatal("expected empty state")
	}
	if doc.Find(".owner-name").Length() != 0 {
		t.Fatal("expected no heading for an empty set")
	}
}

func TestErrorPage(t *testing.T) {
	doc := renderDoc(t, view.ErrorPage(view.Nav{}, 502, "Error", "Failed to load car details"))

	if got := doc.Find(".error-page h1").Text(); got != "502 Error" {
		t.Fatalf("unexpected heading %q", got)
	}
}

func TestEditModal_OneImageInputPerURL(t *testing.T) {
	images := []string{
		"https://res.cloudinary.com/demo/image/upload/c_fill,w_300/car.jpg",
		"https://img/plain.jpg",
	}
	f := view.FormFromListing(&domain.Listing{ID: "car-1", Manufacturer: "Kia", Images: images})
	doc := renderDoc(t, view.EditModal(f, ""))

	inputs := doc.Find(`#edit-form input[name="images"]`)
	if inputs.Length() != len(images) {
		t.Fatalf("expected %d image inputs, got %d", len(images), inputs.Length())
	}
	inputs.Each(func(i int, in *goquery.Selection) {
		if got := in.AttrOr("value", ""); got != images[i] {
			t.Errorf("input %d: expected %q, got %q", i, images[i], got)
		}
		if _, ok := in.Attr("checked"); !ok {
			t.Errorf("input %d: expected the image to start selected", i)
		}
	})
}
