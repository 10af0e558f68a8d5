package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Method", r.Method)
		switch r.Method {
		case http.MethodHead:
			w.Header().Set("Location", "/widgets/w1")
		case http.MethodGet, http.MethodDelete:
			_, _ = io.WriteString(w, `{"id":"w1","name":"gear"}`)
		default:
			body, _ := io.ReadAll(r.Body)
			_, _ = w.Write(body)
		}
	}))
}

func TestTypedVerbs(t *testing.T) {
	srv := newEchoServer(t)
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	ctx := context.Background()
	in := widget{ID: "w2", Name: "cog"}

	tests := []struct {
		name string
		call func() (*TypedResponse[widget], error)
		want widget
	}{
		{"get", func() (*TypedResponse[widget], error) { return Get[widget](ctx, a, "/widgets/w1") }, widget{"w1", "gear"}},
		{"delete", func() (*TypedResponse[widget], error) { return Delete[widget](ctx, a, "/widgets/w1") }, widget{"w1", "gear"}},
		{"post", func() (*TypedResponse[widget], error) { return Post[widget](ctx, a, "/widgets", in) }, in},
		{"put", func() (*TypedResponse[widget], error) { return Put[widget](ctx, a, "/widgets/w2", in) }, in},
		{"patch", func() (*TypedResponse[widget], error) { return Patch[widget](ctx, a, "/widgets/w2", in) }, in},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Data != tt.want {
				t.Errorf("data = %+v, want %+v", resp.Data, tt.want)
			}
			if resp.Raw == nil || resp.StatusCode != http.StatusOK {
				t.Errorf("unexpected raw response %+v", resp.Raw)
			}
		})
	}
}

func TestHead(t *testing.T) {
	srv := newEchoServer(t)
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	resp, err := Head(context.Background(), a, "/widgets/w1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, _ := resp.Header("x-method"); m != http.MethodHead {
		t.Errorf("method = %q", m)
	}
	if loc, ok := resp.Header("Location"); !ok || loc != "/widgets/w1" {
		t.Errorf("location = %q, %v", loc, ok)
	}
	if len(resp.Body) != 0 {
		t.Errorf("HEAD body should be empty, got %q", resp.Body)
	}
}

func TestGet_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	if _, err := Get[widget](context.Background(), a, "/"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGet_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"id":"w1","name":"taken"}`)
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	resp, err := Get[widget](context.Background(), a, "/")
	if err == nil {
		t.Fatal("expected error for 409")
	}
	if resp == nil || resp.Data.Name != "taken" {
		t.Errorf("expected decoded error payload, got %+v", resp)
	}
}
