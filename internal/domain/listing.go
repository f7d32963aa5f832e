package domain

import "context"

// Listing is one car-for-sale record as served by the marketplace backend.
type Listing struct {
	ID                string
	Manufacturer      string
	Model             string
	Year              int
	Paint             string
	RegistrationPlace string
	Odometer          int // kilometres
	PreviousOwners    int
	Scratches         int
	Accidents         int
	Price             int
	Images            []string
	Tags              []string
	OwnerID           string
	PostedBy          string

	// Contact details, shown only on request.
	Phone    string
	Email    string
	Location string
}

// CoverImage returns the first image URL, or "" when there are none.
func (l *Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// ListingInput is the editable field set sent on create and update.
type ListingInput struct {
	Manufacturer      string
	Model             string
	Year              int
	Paint             string
	RegistrationPlace string
	Odometer          int
	PreviousOwners    int
	Scratches         int
	Price             int
	Images            []string
	Tags              []string
}

// InputFromListing returns the editable fields of l, used to pre-fill the
// edit form.
func InputFromListing(l *Listing) ListingInput {
	return ListingInput{
		Manufacturer:      l.Manufacturer,
		Model:             l.Model,
		Year:              l.Year,
		Paint:             l.Paint,
		RegistrationPlace: l.RegistrationPlace,
		Odometer:          l.Odometer,
		PreviousOwners:    l.PreviousOwners,
		Scratches:         l.Scratches,
		Price:             l.Price,
		Images:            l.Images,
		Tags:              l.Tags,
	}
}

// OwnerListings is an owner's own listing set plus the owner's name.
type OwnerListings struct {
	OwnerName string
	Listings  []Listing
}

// ListingGateway is the backend's listing endpoint set. token is the
// caller's bearer token and may be empty for public reads.
type ListingGateway interface {
	ListAll(ctx context.Context, token string) ([]Listing, error)
	Search(ctx context.Context, token, query string) ([]Listing, error)
	GetByID(ctx context.Context, token, id string) (*Listing, error)
	ListByOwner(ctx context.Context, token, ownerID string) (*OwnerListings, error)
	Create(ctx context.Context, token string, input ListingInput) error
	Update(ctx context.Context, token, id string, input ListingInput) error
	Delete(ctx context.Context, token, id string) error
}
