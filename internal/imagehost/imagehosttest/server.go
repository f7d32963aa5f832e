// Package imagehosttest provides a fake image host for tests.
package imagehosttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Server accepts multipart uploads and answers with a secure_url derived
// from the uploaded filename. Files whose name contains "fail" are rejected.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	uploads int
	presets []string
}

// NewServer starts a fake image host. Call Close when done.
func NewServer() *Server {
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handleUpload))
	return s
}

// Uploads reports how many upload requests were received.
func (s *Server) Uploads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

// Presets returns the upload_preset value of every request received.
func (s *Server) Presets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.presets...)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.uploads++
	s.mu.Unlock()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.presets = append(s.presets, r.FormValue("upload_preset"))
	s.mu.Unlock()

	if strings.Contains(header.Filename, "fail") {
		http.Error(w, "upload rejected", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"secure_url": "https://images.test/" + r.FormValue("cloud_name") + "/" + header.Filename,
	})
}
