package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/msomdec/buycars/internal/handler"
	"github.com/msomdec/buycars/internal/imagehost"
	"github.com/msomdec/buycars/internal/imagehost/imagehosttest"
	"github.com/msomdec/buycars/internal/marketplace"
	"github.com/msomdec/buycars/internal/marketplace/marketplacetest"
	"github.com/msomdec/buycars/internal/repository/sqlite"
	"github.com/msomdec/buycars/internal/service"
)

const (
	testJWTSecret = "test-secret-for-handler-tests-0123456789"
	testPassword  = "Secret#123"
)

type testEnv struct {
	srv     *httptest.Server
	backend *marketplacetest.Server
	images  *imagehosttest.Server
	auth    *service.AuthService
	client  *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	backend := marketplacetest.NewServer()
	t.Cleanup(backend.Close)
	images := imagehosttest.NewServer()
	t.Cleanup(images.Close)

	client := marketplace.New(backend.URL, backend.Client())
	uploader := imagehost.New(imagehost.Config{Endpoint: images.URL, CloudName: "demo", UploadPreset: "cars"}, images.Client())
	auth := service.NewAuthService(client, db.Sessions(), testJWTSecret)
	listings := service.NewListingService(client, uploader)
	limiter := service.NewTokenBucket(100, 100)
	t.Cleanup(limiter.Close)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, listings, limiter, false)
	srv := httptest.NewServer(handler.SecurityHeaders(handler.LogRequests(mux)))
	t.Cleanup(srv.Close)

	return &testEnv{
		srv:     srv,
		backend: backend,
		images:  images,
		auth:    auth,
		client:  newClient(t),
	}
}

// newClient returns a cookie-keeping client that does not follow redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, values url.Values) *http.Response {
	t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+path, values)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// datastar issues a request the way a datastar action does and returns the
// SSE body.
func (e *testEnv) datastar(t *testing.T, method, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}
	req, err := http.NewRequest(method, e.srv.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Datastar-Request", "true")
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read SSE body: %v", err)
	}
	return resp, string(data)
}

// signIn registers a verified backend user and signs the test client in.
func (e *testEnv) signIn(t *testing.T, userID, name, email string) {
	t.Helper()
	e.backend.AddUser(userID, name, email, testPassword)
	resp := e.postForm(t, "/signin", url.Values{"email": {email}, "password": {testPassword}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("sign in: expected 303, got %d", resp.StatusCode)
	}
}

func parseDoc(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

func noticeTexts(doc *goquery.Document) []string {
	var texts []string
	doc.Find("#notices .notice").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

func hasNotice(doc *goquery.Document, text string) bool {
	for _, n := range noticeTexts(doc) {
		if n == text {
			return true
		}
	}
	return false
}
