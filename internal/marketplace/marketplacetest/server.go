// Package marketplacetest provides an in-memory marketplace backend for
// tests. It speaks the same JSON shapes as the real service.
package marketplacetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Listing is a stored listing in the backend's wire format.
type Listing struct {
	ID                string   `json:"_id"`
	Manufacturer      string   `json:"car_Manufacturer"`
	Model             string   `json:"model"`
	Year              int      `json:"year"`
	Paint             string   `json:"Original_Paint"`
	RegistrationPlace string   `json:"Registration_Place"`
	Odometer          int      `json:"KMs_on_Odometer"`
	PreviousOwners    int      `json:"Number_of_previous_buyers"`
	Scratches         int      `json:"Major_Scratches"`
	Accidents         int      `json:"Number_of_accidents_reported"`
	Price             int      `json:"price"`
	Images            []string `json:"images"`
	Tags              []string `json:"tags"`
	User              string   `json:"user"`
	Name              string   `json:"name"`
	Phone             string   `json:"phone,omitempty"`
	Email             string   `json:"email,omitempty"`
}

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
	Verified bool
}

// OTP is the one-time code every sign-up receives.
const OTP = "123456"

// Server is a fake marketplace backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	listings []Listing
	users    map[string]*user // by email
	nextID   int
	requests map[string]int // "METHOD /path" without query
	failing  map[string]bool
}

// NewServer starts a fake backend. Call Close when done.
func NewServer() *Server {
	s := &Server{
		users:    make(map[string]*user),
		requests: make(map[string]int),
		failing:  make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /sellcar/getdata", s.handleGetData)
	mux.HandleFunc("GET /sellcar/searchcars", s.handleSearch)
	mux.HandleFunc("GET /sellcar/getdatabyid/{id}", s.handleGetByID)
	mux.HandleFunc("GET /sellcar/getpost/{uid}", s.handleGetPost)
	mux.HandleFunc("POST /sellcar/addcar", s.handleAddCar)
	mux.HandleFunc("PATCH /sellcar/updatedata/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /sellcar/deletepost/{id}", s.handleDelete)
	mux.HandleFunc("POST /user/signup", s.handleSignup)
	mux.HandleFunc("POST /user/verify-otp", s.handleVerifyOTP)
	mux.HandleFunc("POST /user/resend-otp", s.handleResendOTP)
	mux.HandleFunc("POST /user/login", s.handleLogin)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.requests[key]++
		fail := s.failing[key]
		s.mu.Unlock()
		if fail {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	return s
}

// AddUser registers a verified user and returns the bearer token the
// backend will accept for them.
func (s *Server) AddUser(id, name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = &user{ID: id, Name: name, Email: email, Password: password, Verified: true}
	return tokenFor(id)
}

// AddListing stores l, assigning an id when it has none, and returns the id.
func (s *Server) AddListing(l Listing) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		s.nextID++
		l.ID = "car-" + strconv.Itoa(s.nextID)
	}
	s.listings = append(s.listings, l)
	return l.ID
}

// Listings returns a copy of the stored listings.
func (s *Server) Listings() []Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Requests reports how many requests matched "METHOD /path".
func (s *Server) Requests(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key]
}

// TotalRequests reports how many requests the backend has received.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.requests {
		total += n
	}
	return total
}

// SetFailing makes every request matching "METHOD /path" return 500.
func (s *Server) SetFailing(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[key] = fail
}

func tokenFor(userID string) string {
	return "token-" + userID
}

// callerID resolves the bearer token to a user id, or "".
func (s *Server) callerID(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	id, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return ""
	}
	for _, u := range s.users {
		if u.ID == id {
			return id
		}
	}
	return ""
}

func (s *Server) nameOf(userID string) string {
	for _, u := range s.users {
		if u.ID == userID {
			return u.Name
		}
	}
	return ""
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Listings())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Query is required"})
		return
	}

	matches := []Listing{}
	for _, l := range s.Listings() {
		if matchesQuery(l, query) {
			matches = append(matches, l)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": matches})
}

func matchesQuery(l Listing, query string) bool {
	fields := []string{l.Manufacturer, l.Model, l.RegistrationPlace, l.Paint, strconv.Itoa(l.Price)}
	fields = append(fields, l.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func (s *Server) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, l := range s.Listings() {
		if l.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"data": l})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Car not found"})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	caller := s.callerID(r)
	name := s.nameOf(r.PathValue("uid"))
	s.mu.Unlock()
	if caller == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	owned := []Listing{}
	for _, l := range s.Listings() {
		if l.User == r.PathValue("uid") {
			owned = append(owned, l)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"post": owned,
		"user": map[string]string{"_id": r.PathValue("uid"), "name": name},
	})
}

func (s *Server) handleAddCar(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	caller := s.callerID(r)
	name := s.nameOf(caller)
	s.mu.Unlock()
	if caller == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var l Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid listing data"})
		return
	}
	if len(l.Images) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "At least one image is required"})
		return
	}
	l.ID = ""
	l.User = caller
	l.Name = name
	id := s.AddListing(l)
	l.ID = id
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Car added", "post": l})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.callerID(r)
	idx := s.indexOf(r.PathValue("id"))
	if caller == "" || idx < 0 || s.listings[idx].User != caller {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Post not found"})
		return
	}

	var in Listing
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid listing data"})
		return
	}
	cur := &s.listings[idx]
	cur.Manufacturer = in.Manufacturer
	cur.Model = in.Model
	cur.Year = in.Year
	cur.Paint = in.Paint
	cur.RegistrationPlace = in.RegistrationPlace
	cur.Odometer = in.Odometer
	cur.PreviousOwners = in.PreviousOwners
	cur.Scratches = in.Scratches
	cur.Price = in.Price
	if len(in.Images) > 0 {
		cur.Images = in.Images
	}
	cur.Tags = in.Tags
	writeJSON(w, http.StatusOK, map[string]any{"message": "Post updated", "post": *cur})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.callerID(r)
	idx := s.indexOf(r.PathValue("id"))
	if caller == "" || idx < 0 || s.listings[idx].User != caller {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Post not found"})
		return
	}
	s.listings = append(s.listings[:idx], s.listings[idx+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

// indexOf must be called with mu held.
func (s *Server) indexOf(id string) int {
	for i, l := range s.listings {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"err": map[string]string{"error": "Invalid request"}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		writeJSON(w, http.StatusOK, map[string]any{"err": map[string]string{"error": "User already exists"}})
		return
	}
	s.nextID++
	s.users[req.Email] = &user{
		ID:       "user-" + strconv.Itoa(s.nextID),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "OTP sent to " + req.Email})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.Email]
	if !ok || req.OTP != OTP {
		writeJSON(w, http.StatusOK, map[string]string{"err": "Invalid OTP"})
		return
	}
	u.Verified = true
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Email verified successfully"})
}

func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[req.Email]; !ok {
		writeJSON(w, http.StatusOK, map[string]string{"err": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "OTP resent to " + req.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.Email]
	if !ok || u.Password != req.Password {
		writeJSON(w, http.StatusOK, map[string]string{"err": "Invalid email or password"})
		return
	}
	if !u.Verified {
		writeJSON(w, http.StatusOK, map[string]string{"err": "Please verify your email first"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": tokenFor(u.ID),
		"user":  map[string]string{"_id": u.ID, "name": u.Name, "email": u.Email},
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
