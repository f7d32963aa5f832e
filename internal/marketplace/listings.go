package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/msomdec/buycars/internal/domain"
)

// ListAll returns every listing.
// GET /sellcar/getdata
func (c *Client) ListAll(ctx context.Context, token string) ([]domain.Listing, error) {
	var wires []listingWire
	if err := c.do(ctx, http.MethodGet, "/sellcar/getdata", token, nil, &wires); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return toDomainListings(wires), nil
}

// Search returns the listings matching a free-text query.
// GET /sellcar/searchcars?query=...
func (c *Client) Search(ctx context.Context, token, query string) ([]domain.Listing, error) {
	var resp struct {
		Post []listingWire `json:"post"`
	}
	path := "/sellcar/searchcars?" + url.Values{"query": {query}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return toDomainListings(resp.Post), nil
}

// GetByID returns one listing.
// GET /sellcar/getdatabyid/{id}
func (c *Client) GetByID(ctx context.Context, token, id string) (*domain.Listing, error) {
	var resp struct {
		Data *listingWire `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/sellcar/getdatabyid/"+pathEscape(id), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get listing %s: %w", id, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("get listing %s: %w", id, domain.ErrNotFound)
	}
	listing := resp.Data.toDomain()
	return &listing, nil
}

// ListByOwner returns an owner's listings and the owner's name.
// GET /sellcar/getpost/{ownerID}
func (c *Client) ListByOwner(ctx context.Context, token, ownerID string) (*domain.OwnerListings, error) {
	var resp struct {
		Post []listingWire `json:"post"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/sellcar/getpost/"+pathEscape(ownerID), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("list owner listings: %w", err)
	}
	return &domain.OwnerListings{
		OwnerName: resp.User.Name,
		Listings:  toDomainListings(resp.Post),
	}, nil
}

// Create submits a new listing.
// POST /sellcar/addcar
func (c *Client) Create(ctx context.Context, token string, input domain.ListingInput) error {
	if err := c.do(ctx, http.MethodPost, "/sellcar/addcar", token, toInputWire(input), nil); err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

// Update applies a partial update to a listing.
// PATCH /sellcar/updatedata/{id}
func (c *Client) Update(ctx context.Context, token, id string, input domain.ListingInput) error {
	if err := c.do(ctx, http.MethodPatch, "/sellcar/updatedata/"+pathEscape(id), token, toInputWire(input), nil); err != nil {
		return fmt.Errorf("update listing %s: %w", id, err)
	}
	return nil
}

// Delete removes a listing.
// DELETE /sellcar/deletepost/{id}
func (c *Client) Delete(ctx context.Context, token, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/sellcar/deletepost/"+pathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	return nil
}
