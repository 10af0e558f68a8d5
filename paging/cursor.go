package paging

import (
	"context"

	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/jsonscan"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
)

// rawPage is a fetched page whose items are not yet projected.
type rawPage struct {
	spans    []jsonscan.RawSpan
	nextLink string
	resp     *httpclient.Response
}

// cursor tracks the position of one enumeration.
type cursor[T any] struct {
	p       *Pageable[T]
	started bool
	next    string
	page    int
	done    bool
}

// advance fetches the next page and moves past it.
func (c *cursor[T]) advance(ctx context.Context) (*rawPage, error) {
	raw, err := c.peek(ctx)
	if err != nil {
		return nil, err
	}
	c.commit(raw)
	return raw, nil
}

// commit moves the cursor past raw.
func (c *cursor[T]) commit(raw *rawPage) {
	c.started = true
	c.page++
	c.next = raw.nextLink
	c.done = raw.nextLink == ""
}

// peek fetches the page at the cursor without moving it.
func (c *cursor[T]) peek(ctx context.Context) (*rawPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := c.page + 1
	ctx, step := observability.StartStep(ctx, observability.SpanPageFetch, component,
		observability.AttrPage, page)

	raw, err := c.fetch(ctx)
	if err != nil {
		c.p.metrics.RecordError(ctx, errorType(err), component)
		c.p.log.Debug("page fetch failed", logger.ErrorFields(c.next, err))
		step.End(err)
		return nil, err
	}

	hasNext := raw.nextLink != ""
	step.SetAttributes(
		observability.AttrItems, len(raw.spans),
		observability.AttrHasNext, hasNext,
		observability.AttrStatusCode, raw.resp.StatusCode,
	)
	step.End(nil)
	c.p.metrics.RecordPage(ctx, len(raw.spans), step.Duration())
	c.p.log.Debug("page fetched", logger.Fields(
		logger.FieldPage, page,
		logger.FieldItems, len(raw.spans),
		logger.FieldHasNext, hasNext,
	))
	return raw, nil
}

func (c *cursor[T]) fetch(ctx context.Context) (*rawPage, error) {
	var (
		resp *httpclient.Response
		err  error
	)
	switch {
	case !c.started:
		if c.p.first == nil {
			return nil, apperrors.InvalidInput("first", "must not be nil")
		}
		resp, err = c.p.first(ctx)
	case c.p.getter == nil:
		return nil, apperrors.InvalidInput("getter", "required to follow next links")
	default:
		resp, err = c.p.getter.SendGet(ctx, c.next, c.p.requestOptions...)
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, apperrors.InvalidInput("response", "page request returned no response")
	}

	res, err := jsonscan.ReadItemsAndNextLink(resp.Body, c.p.itemProp, c.p.nextLinkProp)
	if err != nil {
		return nil, err
	}
	raw := &rawPage{spans: res.Items, resp: resp}
	if res.HasNextLink {
		raw.nextLink = res.NextLink
	}
	return raw, nil
}

func errorType(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	if httpclient.IsCanceled(err) {
		return "canceled"
	}
	return "transport"
}
