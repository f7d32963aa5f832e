package marketplace

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/msomdec/buycars/internal/domain"
)

// flexInt decodes a JSON number or a numeric string. The listing form posts
// numbers as strings, so stored listings may carry either.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}

	if v, err := strconv.Atoi(raw); err == nil {
		*n = flexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	f = math.Round(f)
	// Free text, NaN, infinities and values outside int are treated as missing.
	if err != nil || math.IsNaN(f) || math.Abs(f) >= float64(math.MaxInt) {
		*n = 0
		return nil
	}
	*n = flexInt(f)
	return nil
}

// ownerRef is the listing's "user" field: either the owner id or a
// populated owner document.
type ownerRef struct {
	ID   string
	Name string
}

func (o *ownerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &o.ID)
	}
	var doc struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	o.ID, o.Name = doc.ID, doc.Name
	return nil
}

type listingWire struct {
	ID                string   `json:"_id"`
	Manufacturer      string   `json:"car_Manufacturer"`
	Model             string   `json:"model"`
	Year              flexInt  `json:"year"`
	Paint             string   `json:"Original_Paint"`
	RegistrationPlace string   `json:"Registration_Place"`
	Odometer          flexInt  `json:"KMs_on_Odometer"`
	PreviousOwners    flexInt  `json:"Number_of_previous_buyers"`
	Scratches         flexInt  `json:"Major_Scratches"`
	Accidents         flexInt  `json:"Number_of_accidents_reported"`
	Price             flexInt  `json:"price"`
	Images            []string `json:"images"`
	Tags              []string `json:"tags"`
	Owner             ownerRef `json:"user"`
	Name              string   `json:"name"`
	Phone             string   `json:"phone"`
	Email             string   `json:"email"`
	Location          string   `json:"location"`
}

func (w *listingWire) toDomain() domain.Listing {
	postedBy := w.Name
	if postedBy == "" {
		postedBy = w.Owner.Name
	}
	return domain.Listing{
		ID:                w.ID,
		Manufacturer:      w.Manufacturer,
		Model:             w.Model,
		Year:              int(w.Year),
		Paint:             w.Paint,
		RegistrationPlace: w.RegistrationPlace,
		Odometer:          int(w.Odometer),
		PreviousOwners:    int(w.PreviousOwners),
		Scratches:         int(w.Scratches),
		Accidents:         int(w.Accidents),
		Price:             int(w.Price),
		Images:            w.Images,
		Tags:              w.Tags,
		OwnerID:           w.Owner.ID,
		PostedBy:          postedBy,
		Phone:             w.Phone,
		Email:             w.Email,
		Location:          w.Location,
	}
}

func toDomainListings(wires []listingWire) []domain.Listing {
	listings := make([]domain.Listing, len(wires))
	for i := range wires {
		listings[i] = wires[i].toDomain()
	}
	return listings
}

// listingInputWire is the create/update request body.
type listingInputWire struct {
	Images            []string `json:"images"`
	Manufacturer      string   `json:"car_Manufacturer"`
	Model             string   `json:"model"`
	Year              int      `json:"year"`
	Paint             string   `json:"Original_Paint"`
	Tags              []string `json:"tags"`
	PreviousOwners    int      `json:"Number_of_previous_buyers"`
	RegistrationPlace string   `json:"Registration_Place"`
	Odometer          int      `json:"KMs_on_Odometer"`
	Scratches         int      `json:"Major_Scratches"`
	Price             int      `json:"price"`
}

func toInputWire(in domain.ListingInput) listingInputWire {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return listingInputWire{
		Images:            images,
		Manufacturer:      in.Manufacturer,
		Model:             in.Model,
		Year:              in.Year,
		Paint:             in.Paint,
		Tags:              tags,
		PreviousOwners:    in.PreviousOwners,
		RegistrationPlace: in.RegistrationPlace,
		Odometer:          in.Odometer,
		Scratches:         in.Scratches,
		Price:             in.Price,
	}
}

// errorMessage extracts a backend-reported error from a JSON object body.
// The backend uses {"error": "..."}, {"err": "..."} and
// {"err": {"error": "..."}} interchangeably. Non-object bodies yield "".
func errorMessage(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return ""
	}
	var envelope struct {
		Error json.RawMessage `json:"error"`
		Err   json.RawMessage `json:"err"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	if msg := messageOf(envelope.Error); msg != "" {
		return msg
	}
	return messageOf(envelope.Err)
}

func messageOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "false" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Error != "" {
			return obj.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	return "Request failed."
}
