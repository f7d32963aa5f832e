package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/service"
	"github.com/msomdec/buycars/internal/view"
)

// listingFormFromRequest reads the listing fields shared by the sell and
// edit forms, keeping the raw values for redisplay.
func listingFormFromRequest(r *http.Request, id string) view.ListingForm {
	form := view.ListingForm{
		ID:                id,
		Manufacturer:      strings.TrimSpace(r.FormValue("manufacturer")),
		Model:             strings.TrimSpace(r.FormValue("model")),
		Year:              strings.TrimSpace(r.FormValue("year")),
		Paint:             strings.TrimSpace(r.FormValue("paint")),
		RegistrationPlace: strings.TrimSpace(r.FormValue("registration_place")),
		Odometer:          strings.TrimSpace(r.FormValue("odometer")),
		PreviousOwners:    strings.TrimSpace(r.FormValue("previous_owners")),
		Scratches:         strings.TrimSpace(r.FormValue("scratches")),
		Price:             strings.TrimSpace(r.FormValue("price")),
		Tags:              r.FormValue("tags"),
	}
	// One value per image; URLs may contain commas.
	form.Images = r.Form["images"]
	return form
}

// parseListingForm converts form values to a ListingInput. Numeric fields
// may be blank (zero) but otherwise must be non-negative whole numbers.
func parseListingForm(f view.ListingForm) (domain.ListingInput, error) {
	input := domain.ListingInput{
		Manufacturer:      f.Manufacturer,
		Model:             f.Model,
		Paint:             f.Paint,
		RegistrationPlace: f.RegistrationPlace,
		Tags:              service.SplitList(f.Tags),
		Images:            f.Images,
	}

	numbers := []struct {
		label string
		value string
		dst   *int
	}{
		{"Year", f.Year, &input.Year},
		{"Number of previous buyers", f.PreviousOwners, &input.PreviousOwners},
		{"KMs on Odometer", f.Odometer, &input.Odometer},
		{"Major Scratches", f.Scratches, &input.Scratches},
		{"Price", f.Price, &input.Price},
	}
	for _, n := range numbers {
		v, err := parseCount(n.value)
		if err != nil {
			return domain.ListingInput{}, fmt.Errorf("%w: %s must be a non-negative whole number", domain.ErrInvalidInput, n.label)
		}
		*n.dst = v
	}
	return input, nil
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %d", v)
	}
	return v, nil
}

// readImageFiles loads the uploaded files into memory.
func readImageFiles(headers []*multipart.FileHeader) ([]domain.ImageFile, error) {
	files := make([]domain.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		files = append(files, service.NewImageFile(fh.Filename, data))
	}
	return files, nil
}
