package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/restkit/config"
	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/lro"
	"github.com/kbukum/restkit/paging"
	"github.com/kbukum/restkit/testutil"
)

type widget struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

func newClient(t *testing.T, srv *testutil.Server, mutate func(*config.Config)) *Client {
	t.Helper()
	cfg := config.Config{
		Name: "widgets",
		HTTP: config.HTTPConfig{BaseURL: srv.URL(), BearerToken: "secret"},
		Polling: lro.PollingConfig{
			Interval: time.Millisecond,
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg, WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"missing name", config.Config{}},
		{"bad base url", config.Config{Name: "x", HTTP: config.HTTPConfig{BaseURL: "::bad"}}},
		{"conflicting credentials", config.Config{Name: "x", HTTP: config.HTTPConfig{BearerToken: "t", APIKey: "k"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg, WithLogger(logger.NewNop())); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(config.Config{Name: "svc"}, WithLogger(logger.NewNop()), WithHTTPClient(&http.Client{Timeout: time.Second}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Config().Polling != lro.DefaultPollingConfig() {
		t.Errorf("polling = %+v", c.Config().Polling)
	}
	if c.Adapter().Unwrap().Timeout != time.Second {
		t.Error("custom http client should be used")
	}
	if c.Logger() == nil {
		t.Error("logger should be set")
	}
}

func TestNew_MasksCredentialInLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "svc", &buf)

	_, err := New(config.Config{Name: "svc", HTTP: config.HTTPConfig{APIKey: "supersecretkey"}}, WithLogger(log))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "supersecretkey") {
		t.Errorf("credential leaked into logs: %s", out)
	}
	if !strings.Contains(out, "supe***") {
		t.Errorf("expected masked credential in logs: %s", out)
	}
}

func TestBeginOperation(t *testing.T) {
	srv := testutil.StartServer(t, "widgets")

	srv.Handle(http.MethodPut, "/widgets/1",
		testutil.JSON(http.StatusAccepted, `{"status":"NotStarted"}`,
			"Operation-Location", "{base}/ops/1"))
	srv.Handle(http.MethodGet, "/ops/1",
		testutil.JSON(200, `{"status":"InProgress"}`),
		testutil.JSON(200, `{"status":"Done","name":"gear"}`),
	)

	c := newClient(t, srv, nil)
	op, err := BeginOperation(context.Background(), c, httpclient.Request{
		Method: http.MethodPut,
		Path:   "/widgets/1",
		Body:   widget{Name: "gear"},
	}, lro.JSONResult[widget](), &lro.GetOperationOptions{
		AdditionalSuccessfulStatusValues: []string{"Done"},
	})
	if err != nil {
		t.Fatalf("BeginOperation failed: %v", err)
	}
	if op.ID() != srv.URL()+"/ops/1" {
		t.Errorf("id = %q", op.ID())
	}

	w, err := Wait(context.Background(), c, op)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if w.Name != "gear" {
		t.Errorf("value = %+v", w)
	}

	for _, r := range srv.Requests() {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("%s %s missing credentials", r.Method, r.Path)
		}
	}
}

func TestBeginOperation_Errors(t *testing.T) {
	srv := testutil.StartServer(t, "widgets")

	srv.Handle(http.MethodPost, "/rejected", testutil.JSON(http.StatusConflict, `{"error":"busy"}`))
	srv.Handle(http.MethodPost, "/untracked", testutil.JSON(http.StatusAccepted, `{}`))

	c := newClient(t, srv, nil)
	ctx := context.Background()

	_, err := BeginOperation(ctx, c, httpclient.Request{Method: http.MethodPost, Path: "/rejected"}, lro.RawResult(), nil)
	if err == nil {
		t.Fatal("expected error for rejected request")
	}
	var httpErr *httpclient.Error
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusConflict {
		t.Errorf("expected HTTP 409 error, got %v", err)
	}

	_, err = BeginOperation(ctx, c, httpclient.Request{Method: http.MethodPost, Path: "/untracked"}, lro.RawResult(), nil)
	if !apperrors.HasCode(err, apperrors.ErrCodeMissingOperationLocation) {
		t.Errorf("expected MISSING_OPERATION_LOCATION, got %v", err)
	}
}

func TestList(t *testing.T) {
	srv := testutil.StartServer(t, "widgets")

	srv.Handle(http.MethodGet, "/widgets",
		testutil.JSON(200, `{"items":[{"name":"a"},{"name":"b"}],"next":"{base}/widgets/2"}`))
	srv.Handle(http.MethodGet, "/widgets/2",
		testutil.JSON(200, `{"items":[{"name":"c"}]}`))

	c := newClient(t, srv, func(cfg *config.Config) {
		cfg.Paging = config.PagingConfig{ItemProperty: "items", NextLinkProperty: "next"}
	})

	var names []string
	for w, err := range List(c, "/widgets", paging.JSONProjector[widget](), httpclient.WithQueryParam("top", "2")).All(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names = append(names, w.Name)
	}
	if len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Errorf("names = %v", names)
	}

	reqs := srv.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if reqs[0].RawQuery != "top=2" {
		t.Errorf("first request query = %q", reqs[0].RawQuery)
	}
	if reqs[1].RawQuery != "" {
		t.Errorf("next link should be followed as returned, got query %q", reqs[1].RawQuery)
	}
}
