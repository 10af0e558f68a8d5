package httpclient

import (
	"net/http"
	"net/url"
	"strings"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, HEAD).
	Method string
	// Path is appended to the adapter's BaseURL. Absolute URLs are used as-is.
	Path string
	// Headers are request-specific headers (merged with adapter defaults).
	Headers map[string]string
	// Query are URL query parameters. They are appended after any query the
	// URI already carries, which is sent byte for byte.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any value
	// that will be JSON-encoded.
	Body any
	// Auth overrides the adapter-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, keyed by canonical name.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// Header returns the value of the named header. Lookup is case-insensitive.
func (r *Response) Header(name string) (string, bool) {
	if r == nil || r.Headers == nil {
		return "", false
	}
	if v, ok := r.Headers[http.CanonicalHeaderKey(name)]; ok {
		return v, true
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithQueryParam adds a query parameter to the request.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// WithRequestAuth overrides authentication for the request.
func WithRequestAuth(auth *AuthConfig) RequestOption {
	return func(r *Request) {
		r.Auth = auth
	}
}

// Apply runs opts against req in order.
func (req *Request) Apply(opts ...RequestOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(req)
		}
	}
}

// appendQuery adds extra after u's existing query. The existing query is left
// exactly as received so opaque tokens in service-issued links survive.
func appendQuery(u *url.URL, extra url.Values) {
	if len(extra) == 0 {
		return
	}
	if u.RawQuery != "" {
		u.RawQuery += "&"
	}
	u.RawQuery += extra.Encode()
}
