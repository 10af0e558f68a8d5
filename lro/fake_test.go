package lro

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/kbukum/restkit/httpclient"
)

// fakeGetter serves scripted responses per URI; the last one repeats.
type fakeGetter struct {
	mu      sync.Mutex
	replies map[string][]*httpclient.Response
	errs    map[string]error
	calls   []string
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{
		replies: make(map[string][]*httpclient.Response),
		errs:    make(map[string]error),
	}
}

func (f *fakeGetter) script(uri string, replies ...*httpclient.Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[uri] = replies
}

func (f *fakeGetter) fail(uri string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[uri] = err
}

func (f *fakeGetter) SendGet(ctx context.Context, uri string, _ ...httpclient.RequestOption) (*httpclient.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, uri)
	if err, ok := f.errs[uri]; ok {
		return nil, err
	}
	q := f.replies[uri]
	if len(q) == 0 {
		return nil, fmt.Errorf("unexpected GET %s", uri)
	}
	r := q[0]
	if len(q) > 1 {
		f.replies[uri] = q[1:]
	}
	return r, nil
}

func (f *fakeGetter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGetter) callsTo(uri string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == uri {
			n++
		}
	}
	return n
}

// response builds a response with alternating header key-value pairs.
func response(status int, body string, headers ...string) *httpclient.Response {
	h := make(map[string]string)
	for i := 0; i+1 < len(headers); i += 2 {
		h[http.CanonicalHeaderKey(headers[i])] = headers[i+1]
	}
	return &httpclient.Response{StatusCode: status, Headers: h, Body: []byte(body)}
}

const opURL = "https://svc.test/ops/1"

func accepted(headers ...string) *httpclient.Response {
	return response(http.StatusAccepted, `{"status":"NotStarted"}`,
		append([]string{HeaderOperationLocation, opURL}, headers...)...)
}
