package paging

import "github.com/kbukum/restkit/httpclient"

// Page is one fetched page.
type Page[T any] struct {
	// Items are the page's items in server order.
	Items []T
	// NextLink is the continuation URI; empty on the last page.
	NextLink string
	// RawResponse is the response the page was read from.
	RawResponse *httpclient.Response
}

// HasNext reports whether another page follows.
func (p *Page[T]) HasNext() bool {
	return p.NextLink != ""
}
