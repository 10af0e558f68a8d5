// Package paging turns a paginated list endpoint into a lazy sequence.
//
// A page body is a JSON object holding an items array (default "value") and
// a continuation link (default "nextLink"). The first page comes from a
// caller-supplied request; every following page is a GET to the previous
// page's link, used verbatim. Enumeration ends when a page carries no link.
//
//	widgets := paging.New(func(ctx context.Context) (*httpclient.Response, error) {
//	    return adapter.SendGet(ctx, "/widgets")
//	}, adapter, paging.JSONProjector[Widget](), nil)
//
//	for w, err := range widgets.All(ctx) {
//	    if err != nil { ... }
//	}
//
// Nothing is requested until iteration starts, and a page is only fetched
// once the previous one has been consumed. Each call to All, Pages or Pager
// starts over from the first page.
package paging
