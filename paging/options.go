package paging

import (
	"context"

	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/jsonscan"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
)

// FirstPageFunc issues the request for the first page.
type FirstPageFunc func(ctx context.Context) (*httpclient.Response, error)

// Projector converts one raw array element into an item.
// An error ends the enumeration.
type Projector[T any] func(jsonscan.RawSpan) (T, error)

// JSONProjector decodes each element into T.
func JSONProjector[T any]() Projector[T] {
	return func(span jsonscan.RawSpan) (T, error) {
		var v T
		if err := span.Decode(&v); err != nil {
			return v, apperrors.Parse("decode page item", err)
		}
		return v, nil
	}
}

// RawProjector yields the elements undecoded.
func RawProjector() Projector[jsonscan.RawSpan] {
	return func(span jsonscan.RawSpan) (jsonscan.RawSpan, error) {
		return span, nil
	}
}

// Options configures a Pageable.
type Options struct {
	// ItemProperty names the items array. Defaults to "value".
	ItemProperty string
	// NextLinkProperty names the continuation link. Defaults to "nextLink".
	NextLinkProperty string
	// RequestOptions apply to every next-page GET.
	RequestOptions []httpclient.RequestOption
	// Logger defaults to the global logger.
	Logger *logger.Logger
	// Metrics defaults to observability.DefaultMetrics.
	Metrics *observability.Metrics
}
