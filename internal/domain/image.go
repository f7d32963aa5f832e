package domain

import "context"

// MaxImages is the largest number of photos one listing may upload.
const MaxImages = 10

// ImageFile is one local image selected for upload.
type ImageFile struct {
	Filename    string
	ContentType string // sniffed from the bytes, e.g. "image/jpeg"
	Data        []byte
}

// UploadResult holds the hosted URLs of the uploads that succeeded, in the
// order the files were given, and how many uploads failed.
type UploadResult struct {
	URLs   []string
	Failed int
}

// ImageHost turns local files into hosted image URLs.
type ImageHost interface {
	UploadAll(ctx context.Context, files []ImageFile) (*UploadResult, error)
}
