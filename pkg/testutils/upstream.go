package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	EventPath = "/api/event"
	AjaxPath  = "/wp-admin/admin-ajax.php"

	DefaultNonce    = "abc123XYZ"
	DefaultAjaxBody = `{"data":{"download_link":"https://d.example/file"}}`
)

// UpstreamStub imitates the two upstream endpoints and records what it received.
// Mutate the exported fields before issuing requests.
type UpstreamStub struct {
	Server *httptest.Server

	EventStatus int
	EventBody   string
	AjaxStatus  int
	AjaxBody    string

	mu          sync.Mutex
	eventCalls  int
	ajaxCalls   int
	eventBody   []byte
	eventHeader http.Header
	ajaxRawBody string
	ajaxForm    url.Values
	ajaxHeader  http.Header
}

// NewUpstreamStub starts a stub that hands out DefaultNonce and answers with DefaultAjaxBody.
func NewUpstreamStub(t *testing.T) *UpstreamStub {
	t.Helper()
	s := &UpstreamStub{
		EventStatus: http.StatusAccepted,
		EventBody:   `{"ok":true,"nonce":"` + DefaultNonce + `"}`,
		AjaxStatus:  http.StatusOK,
		AjaxBody:    DefaultAjaxBody,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(EventPath, s.handleEvent)
	mux.HandleFunc(AjaxPath, s.handleAjax)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Server.Close)
	return s
}

func (s *UpstreamStub) URL() string { return s.Server.URL }

func (s *UpstreamStub) handleEvent(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.eventCalls++
	s.eventBody = body
	s.eventHeader = r.Header.Clone()
	status, out := s.EventStatus, s.EventBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, out)
}

func (s *UpstreamStub) handleAjax(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(raw))
	s.mu.Lock()
	s.ajaxCalls++
	s.ajaxRawBody = string(raw)
	s.ajaxForm = form
	s.ajaxHeader = r.Header.Clone()
	status, out := s.AjaxStatus, s.AjaxBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, out)
}

func (s *UpstreamStub) EventCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventCalls
}

func (s *UpstreamStub) AjaxCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ajaxCalls
}

func (s *UpstreamStub) LastEvent() ([]byte, http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventBody, s.eventHeader
}

func (s *UpstreamStub) LastAjax() (string, url.Values, http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ajaxRawBody, s.ajaxForm, s.ajaxHeader
}
