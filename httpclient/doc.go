// Package httpclient is the HTTP transport underneath restkit's operation
// polling and pagination.
//
// An Adapter sends a Request and returns the complete Response with its body
// already read. Non-2xx statuses come back as both the Response and a
// classified *Error, so callers can inspect headers and body while still
// propagating the failure. The lro and paging packages only need the Getter
// interface, which Adapter implements through SendGet.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{
//	    Method: http.MethodPut,
//	    Path:   "/widgets/123",
//	    Body:   widget,
//	})
//
// # Typed Requests
//
//	resp, err := httpclient.Get[Widget](ctx, adapter, "/widgets/123",
//	    httpclient.WithQueryParam("api-version", "2024-01-01"))
//
// # With Retry
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
package httpclient
