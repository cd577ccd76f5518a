package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// SentEmail is one request the provider accepted.
type SentEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// EmailProvider fakes the Resend HTTP API. Each POST /emails is recorded and
// answered with the next queued status, or 200 when the queue is empty.
type EmailProvider struct {
	mu       sync.Mutex
	server   *httptest.Server
	sent     []SentEmail
	statuses []int
}

func NewEmailProvider() *EmailProvider {
	return &EmailProvider{}
}

func (p *EmailProvider) Start() {
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
}

func (p *EmailProvider) GetUrl() string {
	return p.server.URL
}

func (p *EmailProvider) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/emails" {
		http.NotFound(w, r)
		return
	}

	body, _ := io.ReadAll(r.Body)
	var email SentEmail
	if err := json.Unmarshal(body, &email); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	status := http.StatusOK
	if len(p.statuses) > 0 {
		status, p.statuses = p.statuses[0], p.statuses[1:]
	}
	if status < http.StatusBadRequest {
		p.sent = append(p.sent, email)
	}
	id := len(p.sent)
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status >= http.StatusBadRequest {
		_, _ = fmt.Fprintf(w, `{"statusCode": %d, "name": "mock_error", "message": "rejected by mock"}`, status)
		return
	}
	_, _ = fmt.Fprintf(w, `{"id": "email-%d"}`, id)
}

// FailNext makes the next n requests answer with status.
func (p *EmailProvider) FailNext(n, status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < n; i++ {
		p.statuses = append(p.statuses, status)
	}
}

// Sent returns the accepted emails in arrival order.
func (p *EmailProvider) Sent() []SentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SentEmail, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *EmailProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = nil
	p.statuses = nil
}
