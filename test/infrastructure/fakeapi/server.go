//go:build integration || unit || test

// Package fakeapi provides an in-process orchestration service that records
// every request it receives and replies with scripted responses.
package fakeapi //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Request is one request received by the fake service.
type Request struct {
	Method    string
	JobID     string
	Operation string
	Header    http.Header
	Body      []byte
}

// Data decodes the "data" member of the request body.
func (r Request) Data() map[string]any {
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	_ = json.Unmarshal(r.Body, &envelope)
	return envelope.Data
}

// Response is a scripted reply.
type Response struct {
	Status int
	Body   string
}

// Server is a fake orchestration service backed by httptest.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Request
	responses map[string][]Response
}

// NewServer starts a fake service. Close it with t.Cleanup(server.Close).
func NewServer() *Server {
	s := &Server{responses: map[string][]Response{}}

	router := chi.NewRouter()
	router.Route("/update_jobs/{jobID}", func(r chi.Router) {
		r.Post("/{operation}", s.handle)
		r.Patch("/{operation}", s.handle)
	})

	s.Server = httptest.NewServer(router)
	return s
}

// Respond queues replies for an operation. Once the queue is drained the
// operation answers 204.
func (s *Server) Respond(operation string, responses ...Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[operation] = append(s.responses[operation], responses...)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	operation := chi.URLParam(r, "operation")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:    r.Method,
		JobID:     chi.URLParam(r, "jobID"),
		Operation: operation,
		Header:    r.Header.Clone(),
		Body:      body,
	})
	response := Response{Status: http.StatusNoContent}
	if queued := s.responses[operation]; len(queued) > 0 {
		response = queued[0]
		s.responses[operation] = queued[1:]
	}
	s.mu.Unlock()

	w.WriteHeader(response.Status)
	_, _ = io.WriteString(w, response.Body)
}
