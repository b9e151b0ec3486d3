// Package llmtest runs a fake OpenAI compatible chat completion endpoint.
package llmtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

type Request struct {
	Model          string `json:"model"`
	Stream         bool   `json:"stream"`
	Messages       []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature    *float64 `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Header http.Header `json:"-"`
}

// Server answers every completion with Content, or with Status and the
// body "upstream broke" when Status is set.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	content  string
	status   int
	requests []Request
}

func NewServer(content string) *Server {
	s := &Server{content: content}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
	s.status = 0
}

func (s *Server) SetStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
		http.NotFound(w, r)
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Header = r.Header.Clone()

	s.mu.Lock()
	s.requests = append(s.requests, req)
	content, status := s.content, s.status
	s.mu.Unlock()

	if status != 0 {
		http.Error(w, "upstream broke", status)
		return
	}

	if !req.Stream {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	for _, r := range content {
		chunk, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"delta": map[string]string{"content": string(r)}, "index": 0},
			},
		})
		fmt.Fprintf(w, "data: %s\n\n", chunk)
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
}
