package paging

import (
	"context"
	"errors"
	"iter"

	"github.com/kbukum/restkit/async"
	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/jsonscan"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
)

const component = "paging"

// ErrNoMorePages is returned by Pager.NextPage after the last page.
var ErrNoMorePages = errors.New("paging: no more pages")

// Pageable is a restartable description of a paginated resource.
type Pageable[T any] struct {
	first          FirstPageFunc
	getter         httpclient.Getter
	projector      Projector[T]
	itemProp       string
	nextLinkProp   string
	requestOptions []httpclient.RequestOption
	log            *logger.Logger
	metrics        *observability.Metrics
}

// New describes a paginated resource. It performs no I/O. getter fetches
// next links and may be nil for single-page resources.
func New[T any](first FirstPageFunc, getter httpclient.Getter, projector Projector[T], opts *Options) *Pageable[T] {
	if opts == nil {
		opts = &Options{}
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.DefaultMetrics()
	}
	return &Pageable[T]{
		first:          first,
		getter:         getter,
		projector:      projector,
		itemProp:       opts.ItemProperty,
		nextLinkProp:   opts.NextLinkProperty,
		requestOptions: opts.RequestOptions,
		log:            logger.OrGlobal(opts.Logger, component),
		metrics:        metrics,
	}
}

// All returns the items of every page in order. After an error is yielded
// the sequence ends.
func (p *Pageable[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		c := p.cursor()
		for !c.done {
			raw, err := c.advance(ctx)
			if err != nil {
				yield(zero, err)
				return
			}
			for _, span := range raw.spans {
				item, err := p.project(span)
				if err != nil {
					yield(zero, err)
					return
				}
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Pages returns every page in order. After an error is yielded the sequence ends.
func (p *Pageable[T]) Pages(ctx context.Context) iter.Seq2[*Page[T], error] {
	return func(yield func(*Page[T], error) bool) {
		pager := p.Pager()
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// Pager returns a page-at-a-time cursor positioned before the first page.
func (p *Pageable[T]) Pager() *Pager[T] {
	return &Pager[T]{p: p, c: p.cursor()}
}

func (p *Pageable[T]) project(span jsonscan.RawSpan) (T, error) {
	if p.projector == nil {
		var zero T
		return zero, apperrors.InvalidInput("projector", "must not be nil")
	}
	return p.projector(span)
}

func (p *Pageable[T]) cursor() *cursor[T] {
	return &cursor[T]{p: p}
}

// Pager walks a Pageable one page at a time. It is not safe for concurrent use.
type Pager[T any] struct {
	p *Pageable[T]
	c *cursor[T]
}

// More reports whether NextPage has another page to fetch.
func (pg *Pager[T]) More() bool {
	return !pg.c.done
}

// NextPage fetches and projects the next page. A failed fetch leaves the
// pager in place, so the same page can be requested again.
func (pg *Pager[T]) NextPage(ctx context.Context) (*Page[T], error) {
	if pg.c.done {
		return nil, ErrNoMorePages
	}

	raw, err := pg.c.peek(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raw.spans))
	for _, span := range raw.spans {
		item, err := pg.p.project(span)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	pg.c.commit(raw)
	return &Page[T]{Items: items, NextLink: raw.nextLink, RawResponse: raw.resp}, nil
}

// NextPageAsync runs NextPage on its own goroutine.
func (pg *Pager[T]) NextPageAsync(ctx context.Context) *async.Future[*Page[T]] {
	return async.Go(ctx, pg.NextPage)
}
