package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/buycars/internal/domain"
)

// ListingService reads and mutates listings through the marketplace
// backend. It keeps no listing state: every view is a fresh fetch.
type ListingService struct {
	listings domain.ListingGateway
	images   domain.ImageHost
}

// NewListingService creates a new ListingService.
func NewListingService(listings domain.ListingGateway, images domain.ImageHost) *ListingService {
	return &ListingService{listings: listings, images: images}
}

// CreateResult reports how the photo upload for a new listing went.
type CreateResult struct {
	Uploaded int
	Failed   int
}

// NormalizeQuery trims a search query. A blank result means "no filter".
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// ValidateQuery rejects a blank search submission without contacting the
// backend.
func ValidateQuery(query string) (string, error) {
	query = NormalizeQuery(query)
	if query == "" {
		return "", domain.ErrEmptyQuery
	}
	return query, nil
}

// Feed returns the listing set for query: every listing when it is blank,
// otherwise the backend's search results.
func (s *ListingService) Feed(ctx context.Context, token, query string) ([]domain.Listing, error) {
	query = NormalizeQuery(query)
	if query == "" {
		listings, err := s.listings.ListAll(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("feed: %w", err)
		}
		return listings, nil
	}

	listings, err := s.listings.Search(ctx, token, query)
	if err != nil {
		return nil, fmt.Errorf("feed %q: %w", query, err)
	}
	return listings, nil
}

// Get returns one listing.
func (s *ListingService) Get(ctx context.Context, token, id string) (*domain.Listing, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return s.listings.GetByID(ctx, token, id)
}

// Owned returns the session user's listings.
func (s *ListingService) Owned(ctx context.Context, session *domain.Session) (*domain.OwnerListings, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	owned, err := s.listings.ListByOwner(ctx, session.Token(), session.UserID)
	if err != nil {
		return nil, err
	}
	if owned.OwnerName == "" {
		owned.OwnerName = session.UserName
	}
	return owned, nil
}

// OwnedListing returns one of the session user's listings, used to pre-fill
// the edit form.
func (s *ListingService) OwnedListing(ctx context.Context, session *domain.Session, id string) (*domain.Listing, error) {
	owned, err := s.Owned(ctx, session)
	if err != nil {
		return nil, err
	}
	for i := range owned.Listings {
		if owned.Listings[i].ID == id {
			return &owned.Listings[i], nil
		}
	}
	return nil, fmt.Errorf("owned listing %s: %w", id, domain.ErrNotFound)
}

// ChangeResult is the outcome of an applied update or delete. Owned is the
// owner's set re-fetched afterwards. ReloadErr is set instead when that
// re-fetch failed; the change itself still stands.
type ChangeResult struct {
	Owned     *domain.OwnerListings
	ReloadErr error
}

// Update applies input to the listing, then re-fetches the owner's set. The
// returned error reports the update alone.
func (s *ListingService) Update(ctx context.Context, session *domain.Session, id string, input domain.ListingInput) (*ChangeResult, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	input.Tags = NormalizeTags(input.Tags)
	input.Images = NormalizeTags(input.Images)

	if err := s.listings.Update(ctx, session.Token(), id, input); err != nil {
		return nil, err
	}
	return s.reload(ctx, session), nil
}

// Delete removes the listing, then re-fetches the owner's set. The returned
// error reports the delete alone.
func (s *ListingService) Delete(ctx context.Context, session *domain.Session, id string) (*ChangeResult, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.listings.Delete(ctx, session.Token(), id); err != nil {
		return nil, err
	}
	return s.reload(ctx, session), nil
}

func (s *ListingService) reload(ctx context.Context, session *domain.Session) *ChangeResult {
	owned, err := s.Owned(ctx, session)
	if err != nil {
		slog.Error("reload owned listings", "user", session.UserID, "error", err)
		return &ChangeResult{ReloadErr: err}
	}
	return &ChangeResult{Owned: owned}
}

// Create uploads the photos and then submits the listing with the hosted
// URLs. Nothing is submitted unless at least one upload succeeded.
func (s *ListingService) Create(ctx context.Context, session *domain.Session, input domain.ListingInput, files []domain.ImageFile) (*CreateResult, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := ValidateImages(files); err != nil {
		return nil, err
	}

	uploaded, err := s.images.UploadAll(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("upload images: %w", err)
	}
	if uploaded.Failed > 0 {
		slog.Warn("partial image upload", "uploaded", len(uploaded.URLs), "failed", uploaded.Failed)
	}

	input.Images = uploaded.URLs
	input.Tags = NormalizeTags(input.Tags)
	if err := s.listings.Create(ctx, session.Token(), input); err != nil {
		return nil, err
	}

	return &CreateResult{Uploaded: len(uploaded.URLs), Failed: uploaded.Failed}, nil
}

// NormalizeTags trims each entry and drops blanks and repeats, keeping the
// first occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SplitList splits a comma-separated form value into normalized entries.
func SplitList(value string) []string {
	return NormalizeTags(strings.Split(value, ","))
}
