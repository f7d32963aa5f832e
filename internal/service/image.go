package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/msomdec/buycars/internal/domain"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

// NewImageFile builds an upload candidate, sniffing its content type from
// the bytes rather than trusting the browser.
func NewImageFile(filename string, data []byte) domain.ImageFile {
	return domain.ImageFile{
		Filename:    filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
}

// ValidateImageCount checks only how many files were selected, so a bad
// selection can be rejected before any file is read.
func ValidateImageCount(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: Please select at least one image", domain.ErrInvalidInput)
	}
	if n > domain.MaxImages {
		return fmt.Errorf("%w: Maximum %d images allowed", domain.ErrInvalidInput, domain.MaxImages)
	}
	return nil
}

// ValidateImages checks the selection before any upload is attempted.
// The count is checked first.
func ValidateImages(files []domain.ImageFile) error {
	if err := ValidateImageCount(len(files)); err != nil {
		return err
	}

	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			return fmt.Errorf("%w: %s is not an image", domain.ErrInvalidInput, f.Filename)
		}
		if len(f.Data) > maxImageSize {
			return fmt.Errorf("%w: %s exceeds 10MB limit", domain.ErrInvalidInput, f.Filename)
		}
	}
	return nil
}
