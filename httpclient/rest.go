package httpclient

import (
	"context"
	"fmt"
	"net/http"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
	// Raw is the undecoded response.
	Raw *Response
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, a *Adapter, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, a, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into type T.
func Post[T any](ctx context.Context, a *Adapter, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, a, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into type T.
func Put[T any](ctx context.Context, a *Adapter, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, a, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a JSON body and decodes the response into type T.
func Patch[T any](ctx context.Context, a *Adapter, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, a, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request and decodes the JSON response into type T.
func Delete[T any](ctx context.Context, a *Adapter, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, a, http.MethodDelete, path, nil, opts...)
}

// Head performs a HEAD request. Only status and headers are meaningful.
func Head(ctx context.Context, a *Adapter, path string, opts ...RequestOption) (*Response, error) {
	req := Request{Method: http.MethodHead, Path: path}
	req.Apply(opts...)
	return a.Do(ctx, req)
}

// doTyped executes a request and decodes the JSON response.
func doTyped[T any](ctx context.Context, a *Adapter, method, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	req := Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
	req.Apply(opts...)

	resp, err := a.Do(ctx, req)
	if err != nil {
		// Keep error payloads decodable for callers that inspect them.
		if resp != nil {
			var data T
			if jsonErr := json.Unmarshal(resp.Body, &data); jsonErr == nil {
				return &TypedResponse[T]{
					StatusCode: resp.StatusCode,
					Headers:    resp.Headers,
					Data:       data,
					Raw:        resp,
				}, err
			}
		}
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("httpclient: decode response: %w", err)
		}
	}

	return &TypedResponse[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Data:       data,
		Raw:        resp,
	}, nil
}
