package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/msomdec/buycars/internal/domain"
	"github.com/msomdec/buycars/internal/service"
	"github.com/msomdec/buycars/internal/view"
)

const (
	maxFormMemory   = 32 << 20
	msgPosted       = "Successfully Posted!"
	msgUploadFailed = "Failed to upload images"
	msgPostFailed   = "Failed to post car data"
)

// SellHandler serves the create-listing form.
type SellHandler struct {
	listings *service.ListingService
}

// NewSellHandler creates a new SellHandler.
func NewSellHandler(listings *service.ListingService) *SellHandler {
	return &SellHandler{listings: listings}
}

// HandleForm renders an empty create-listing form.
// GET /sell
func (h *SellHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.SellPage(navFor(r), view.ListingForm{}, popFlash(w, r)))
}

// HandleSubmit validates the form, uploads the photos and creates the
// listing. The image count is checked before anything else.
// POST /sell
func (h *SellHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("parse sell form", "error", err)
		h.reject(w, r, view.ListingForm{}, fmt.Errorf("%w: Failed to read the form", domain.ErrInvalidInput))
		return
	}
	form := listingFormFromRequest(r, "")
	form.Images = nil

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["images"]
	}
	if err := service.ValidateImageCount(len(headers)); err != nil {
		h.reject(w, r, form, err)
		return
	}

	input, err := parseListingForm(form)
	if err != nil {
		h.reject(w, r, form, err)
		return
	}
	files, err := readImageFiles(headers)
	if err != nil {
		h.reject(w, r, form, fmt.Errorf("%w: Failed to read the selected images", domain.ErrInvalidInput))
		return
	}

	res, err := h.listings.Create(r.Context(), SessionFromContext(r.Context()), input, files)
	if err != nil {
		h.reject(w, r, form, err)
		return
	}

	notices := []view.Notice{view.Success(msgPosted)}
	if res.Failed > 0 {
		notices = append(notices, view.Warning(fmt.Sprintf("%d of %d images failed to upload", res.Failed, res.Failed+res.Uploaded)))
	}
	setFlash(w, notices...)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *SellHandler) reject(w http.ResponseWriter, r *http.Request, form view.ListingForm, err error) {
	logUnexpected("create listing", err)
	msg := domain.UserMessage(err, msgPostFailed)
	if errors.Is(err, domain.ErrUploadFailed) {
		msg = msgUploadFailed
	}
	render(w, r, statusFor(err), view.SellPage(navFor(r), form, []view.Notice{view.Error(msg)}))
}
