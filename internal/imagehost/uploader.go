// Package imagehost uploads listing photos to the hosted image service and
// returns their public URLs.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/msomdec/buycars/internal/domain"
	"golang.org/x/sync/errgroup"
)

// MaxFiles is the largest batch UploadAll accepts.
const MaxFiles = domain.MaxImages

// Config identifies the upload endpoint and the account/preset pair every
// upload is made under.
type Config struct {
	Endpoint     string
	CloudName    string
	UploadPreset string
}

// Uploader posts images to the image host.
type Uploader struct {
	cfg        Config
	httpClient *http.Client
}

var _ domain.ImageHost = (*Uploader)(nil)

// New creates an Uploader. A nil httpClient uses http.DefaultClient.
func New(cfg Config, httpClient *http.Client) *Uploader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Uploader{cfg: cfg, httpClient: httpClient}
}

// UploadAll uploads files concurrently and returns the hosted URLs of the
// successful uploads in input order. A batch of zero or more than MaxFiles
// files is rejected before any request is made. If every upload fails the
// error wraps domain.ErrUploadFailed.
func (u *Uploader) UploadAll(ctx context.Context, files []domain.ImageFile) (*domain.UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: Please select at least one image", domain.ErrInvalidInput)
	}
	if len(files) > MaxFiles {
		return nil, fmt.Errorf("%w: Maximum %d images allowed", domain.ErrInvalidInput, MaxFiles)
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))

	// Failures are recorded per file and never cancel the rest of the batch.
	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			urls[i], errs[i] = u.Upload(ctx, f)
			return nil
		})
	}
	g.Wait()

	result := &domain.UploadResult{}
	for i, err := range errs {
		if err != nil {
			slog.Warn("upload image", "file", files[i].Filename, "error", err)
			result.Failed++
			continue
		}
		result.URLs = append(result.URLs, urls[i])
	}

	if len(result.URLs) == 0 {
		return nil, fmt.Errorf("%w: all %d uploads failed", domain.ErrUploadFailed, len(files))
	}
	return result, nil
}

// Upload posts a single file and returns its hosted URL.
func (u *Uploader) Upload(ctx context.Context, f domain.ImageFile) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", f.Filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.WriteField("upload_preset", u.cfg.UploadPreset); err != nil {
		return "", fmt.Errorf("write upload_preset: %w", err)
	}
	if err := mw.WriteField("cloud_name", u.cfg.CloudName); err != nil {
		return "", fmt.Errorf("write cloud_name: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", domain.ErrUploadFailed, resp.StatusCode)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrUploadFailed, err)
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	if out.URL != "" {
		return out.URL, nil
	}
	return "", fmt.Errorf("%w: response carried no url", domain.ErrUploadFailed)
}
