package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// BasePlaceholder in a reply body or header value expands to the server URL.
const BasePlaceholder = "{base}"

// Reply is one scripted response.
type Reply struct {
	Status  int
	Headers map[string]string
	Body    string
	// Delay holds the response back. A client that gives up first ends the wait.
	Delay time.Duration
}

// JSON builds a reply with a JSON body and alternating header key-value pairs.
func JSON(status int, body string, headers ...string) Reply {
	r := Reply{Status: status, Body: body, Headers: map[string]string{"Content-Type": "application/json"}}
	for i := 0; i+1 < len(headers); i += 2 {
		r.Headers[headers[i]] = headers[i+1]
	}
	return r
}

// RecordedRequest is a request the server received.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
}

// URI returns the path with its query string.
func (r RecordedRequest) URI() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

type route struct {
	replies []Reply
	next    int
}

// Server is a scripted HTTP service backed by gin.
type Server struct {
	name   string
	engine *gin.Engine

	mu       sync.Mutex
	srv      *httptest.Server
	routes   map[string]*route
	requests []RecordedRequest
}

var _ TestComponent = (*Server)(nil)

// NewServer creates a server. Call Start (or Setup) before use.
func NewServer(name string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		name:   name,
		engine: gin.New(),
		routes: make(map[string]*route),
	}
	s.engine.Use(gin.Recovery(), s.record())
	s.engine.NoRoute(s.dispatch)
	return s
}

// Name returns the server name.
func (s *Server) Name() string { return s.name }

// Start begins serving on a loopback port.
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return fmt.Errorf("testutil: server %s already started", s.name)
	}
	s.srv = httptest.NewServer(s.engine)
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Reset drops all scripts and recorded requests.
func (s *Server) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = make(map[string]*route)
	s.requests = nil
	return nil
}

// Snapshot returns a copy of the recorded requests.
func (s *Server) Snapshot(_ context.Context) (interface{}, error) {
	return s.Requests(), nil
}

// Restore replaces the recorded requests with a snapshot.
func (s *Server) Restore(_ context.Context, snapshot interface{}) error {
	reqs, ok := snapshot.([]RecordedRequest)
	if !ok {
		return fmt.Errorf("testutil: unexpected snapshot type %T", snapshot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append([]RecordedRequest(nil), reqs...)
	return nil
}

// URL returns the server's base URL, or "" before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// Handle scripts replies for method and path. Replies are served in order;
// the last one repeats once the script is exhausted.
func (s *Server) Handle(method, path string, replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[routeKey(method, path)] = &route{replies: replies}
}

// Requests returns the requests received so far, in arrival order.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Count returns how many requests hit method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			RawQuery: c.Request.URL.RawQuery,
			Header:   c.Request.Header.Clone(),
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) dispatch(c *gin.Context) {
	reply, ok := s.nextReply(c.Request.Method, c.Request.URL.Path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scripted reply", "path": c.Request.URL.Path})
		return
	}

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}

	base := "http://" + c.Request.Host
	for k, v := range reply.Headers {
		c.Header(k, strings.ReplaceAll(v, BasePlaceholder, base))
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	c.Status(status)
	if reply.Body != "" {
		_, _ = c.Writer.WriteString(strings.ReplaceAll(reply.Body, BasePlaceholder, base))
	}
}

func (s *Server) nextReply(method, path string) (Reply, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.routes[routeKey(method, path)]
	if !ok || len(r.replies) == 0 {
		return Reply{}, false
	}
	reply := r.replies[r.next]
	if r.next < len(r.replies)-1 {
		r.next++
	}
	return reply, true
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
