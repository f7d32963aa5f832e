package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/imagehost"
	"github.com/msomdec/buycars/internal/imagehost/imagehosttest"
	"github.com/msomdec/buycars/internal/marketplace"
	"github.com/msomdec/buycars/internal/marketplace/marketplacetest"
	"github.com/msomdec/buycars/internal/service"
)

type listingFixture struct {
	svc     *service.ListingService
	backend *marketplacetest.Server
	images  *imagehosttest.Server
	session *domain.Session
}

func newTestListingService(t *testing.T) *listingFixture {
	t.Helper()
	backend := marketplacetest.NewServer()
	t.Cleanup(backend.Close)
	images := imagehosttest.NewServer()
	t.Cleanup(images.Close)

	token := backend.AddUser("u1", "Asha", "asha@example.com", "Secret#123")
	uploader := imagehost.New(imagehost.Config{Endpoint: images.URL, CloudName: "demo", UploadPreset: "cars"}, images.Client())

	return &listingFixture{
		svc:     service.NewListingService(marketplace.New(backend.URL, backend.Client()), uploader),
		backend: backend,
		images:  images,
		session: &domain.Session{ID: "s1", UserID: "u1", UserName: "Asha", BackendToken: token},
	}
}

func TestValidateQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		if _, err := service.ValidateQuery(q); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Fatalf("ValidateQuery(%q): expected ErrEmptyQuery, got %v", q, err)
		}
	}
	got, err := service.ValidateQuery("  Swift ")
	if err != nil || got != "Swift" {
		t.Fatalf("expected trimmed query, got %q, %v", got, err)
	}
}

func TestListingService_Feed(t *testing.T) {
	f := newTestListingService(t)
	ctx := context.Background()
	f.backend.AddListing(marketplacetest.Listing{ID: "1", Manufacturer: "Maruti", Model: "Swift", Price: 500000})
	f.backend.AddListing(marketplacetest.Listing{ID: "2", Manufacturer: "Honda", Model: "City", Price: 700000})

	all, err := f.svc.Feed(ctx, "", "  ")
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(all) != 2 || f.backend.Requests("GET /sellcar/getdata") != 1 {
		t.Fatalf("expected unfiltered fetch of 2 listings, got %d", len(all))
	}

	matches, err := f.svc.Feed(ctx, "", "swift")
	if err != nil {
		t.Fatalf("Feed search: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "1" {
		t.Fatalf("unexpected search results: %+v", matches)
	}
	if f.backend.Requests("GET /sellcar/searchcars") != 1 {
		t.Fatal("expected one search request")
	}
}

func TestListingService_Get(t *testing.T) {
	f := newTestListingService(t)
	f.backend.AddListing(marketplacetest.Listing{ID: "1", Manufacturer: "Maruti"})

	l, err := f.svc.Get(context.Background(), "", "1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if l.Manufacturer != "Maruti" {
		t.Fatalf("unexpected listing %+v", l)
	}

	if _, err := f.svc.Get(context.Background(), "", " "); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank id, got %v", err)
	}
}

func TestListingService_RequiresSession(t *testing.T) {
	f := newTestListingService(t)
	ctx := context.Background()

	if _, err := f.svc.Owned(ctx, nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Owned: expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.Update(ctx, nil, "1", domain.ListingInput{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Update: expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.Delete(ctx, nil, "1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Delete: expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.Create(ctx, nil, domain.ListingInput{}, pngFiles(1)); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Create: expected ErrUnauthorized, got %v", err)
	}
	if f.backend.TotalRequests() != 0 {
		t.Fatal("expected no backend requests without a session")
	}
}

func TestListingService_UpdateRefetches(t *testing.T) {
	f := newTestListingService(t)
	ctx := context.Background()
	id := f.backend.AddListing(marketplacetest.Listing{Manufacturer: "Kia", Model: "Seltos", Price: 1500000, User: "u1", Images: []string{"https://img/1.jpg"}})

	l, err := f.svc.OwnedListing(ctx, f.session, id)
	if err != nil {
		t.Fatalf("OwnedListing: %v", err)
	}
	input := domain.InputFromListing(l)
	input.Price = 1400000
	input.Tags = []string{" suv ", "diesel", "suv", ""}

	res, err := f.svc.Update(ctx, f.session, id, input)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.ReloadErr != nil {
		t.Fatalf("unexpected reload error: %v", res.ReloadErr)
	}
	owned := res.Owned
	if owned.OwnerName != "Asha" {
		t.Fatalf("expected owner name Asha, got %q", owned.OwnerName)
	}
	if len(owned.Listings) != 1 || owned.Listings[0].Price != 1400000 {
		t.Fatalf("expected re-fetched price 1400000, got %+v", owned.Listings)
	}
	if tags := owned.Listings[0].Tags; len(tags) != 2 || tags[0] != "suv" || tags[1] != "diesel" {
		t.Fatalf("expected normalized tags, got %v", tags)
	}
	if f.backend.Requests("GET /sellcar/getpost/u1") != 2 {
		t.Fatalf("expected the owner set to be fetched again after update")
	}
}

func TestListingService_UpdateAppliedWhenReloadFails(t *testing.T) {
	f := newTestListingService(t)
	ctx := context.Background()
	id := f.backend.AddListing(marketplacetest.Listing{Manufacturer: "Kia", Price: 1500000, User: "u1", Images: []string{"https://img/1.jpg"}})
	f.backend.SetFailing("GET /sellcar/getpost/u1", true)

	res, err := f.svc.Update(ctx, f.session, id, domain.ListingInput{Manufacturer: "Kia", Price: 999})
	if err != nil {
		t.Fatalf("Update: expected the update to succeed, got %v", err)
	}
	if res.Owned != nil || !errors.Is(res.ReloadErr, domain.ErrUpstream) {
		t.Fatalf("expected a reload error only, got %+v", res)
	}
	if got := f.backend.Listings()[0].Price; got != 999 {
		t.Fatalf("expected backend price 999, got %d", got)
	}

	res, err = f.svc.Delete(ctx, f.session, id)
	if err != nil {
		t.Fatalf("Delete: expected the delete to succeed, got %v", err)
	}
	if res.ReloadErr == nil {
		t.Fatal("expected a reload error")
	}
	if len(f.backend.Listings()) != 0 {
		t.Fatal("expected the listing to be deleted")
	}
}

func TestListingService_OwnedListing_NotOwned(t *testing.T) {
	f := newTestListingService(t)
	id := f.backend.AddListing(marketplacetest.Listing{Manufacturer: "Ford", User: "u2"})

	if _, err := f.svc.OwnedListing(context.Background(), f.session, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListingService_DeleteRefetches(t *testing.T) {
	f := newTestListingService(t)
	ctx := context.Background()
	keep := f.backend.AddListing(marketplacetest.Listing{Manufacturer: "Kia", User: "u1"})
	drop := f.backend.AddListing(marketplacetest.Listing{Manufacturer: "Tata", User: "u1"})

	res, err := f.svc.Delete(ctx, f.session, drop)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if owned := res.Owned; len(owned.Listings) != 1 || owned.Listings[0].ID != keep {
		t.Fatalf("expected only %s to remain, got %+v", keep, owned.Listings)
	}
}

func TestListingService_Create(t *testing.T) {
	f := newTestListingService(t)

	res, err := f.svc.Create(context.Background(), f.session, domain.ListingInput{
		Manufacturer: "Mahindra",
		Model:        "XUV700",
		Year:         2022,
		Price:        2000000,
		Tags:         []string{"suv", " suv"},
	}, pngFiles(2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Uploaded != 2 || res.Failed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	stored := f.backend.Listings()
	if len(stored) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(stored))
	}
	if len(stored[0].Images) != 2 || stored[0].Images[0] != "https://images.test/demo/car0.png" {
		t.Fatalf("expected hosted urls, got %v", stored[0].Images)
	}
	if len(stored[0].Tags) != 1 {
		t.Fatalf("expected de-duplicated tags, got %v", stored[0].Tags)
	}
}

func TestListingService_Create_TooManyImages(t *testing.T) {
	f := newTestListingService(t)

	_, err := f.svc.Create(context.Background(), f.session, domain.ListingInput{Manufacturer: "Kia"}, pngFiles(11))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if f.images.Uploads() != 0 {
		t.Fatalf("expected no uploads, got %d", f.images.Uploads())
	}
	if f.backend.TotalRequests() != 0 {
		t.Fatalf("expected no backend requests, got %d", f.backend.TotalRequests())
	}
}

func TestListingService_Create_PartialUpload(t *testing.T) {
	f := newTestListingService(t)
	files := pngFiles(3)
	files[1].Filename = "fail.png"

	res, err := f.svc.Create(context.Background(), f.session, domain.ListingInput{Manufacturer: "Kia"}, files)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Uploaded != 2 || res.Failed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := len(f.backend.Listings()[0].Images); got != 2 {
		t.Fatalf("expected listing with 2 images, got %d", got)
	}
}

func TestListingService_Create_AllUploadsFail(t *testing.T) {
	f := newTestListingService(t)
	files := pngFiles(2)
	files[0].Filename = "fail-a.png"
	files[1].Filename = "fail-b.png"

	_, err := f.svc.Create(context.Background(), f.session, domain.ListingInput{Manufacturer: "Kia"}, files)
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if f.backend.Requests("POST /sellcar/addcar") != 0 {
		t.Fatal("expected no listing submission")
	}
}

func TestNormalizeTagsAndSplitList(t *testing.T) {
	got := service.SplitList(" red, blue ,, red,green ")
	want := []string{"red", "blue", "green"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if tags := service.NormalizeTags(nil); tags == nil || len(tags) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tags)
	}
}
