// Package pagination accumulates complete result sets from offset/limit
// endpoints that return bounded pages.
package pagination

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var ErrInvalidPageSize = errors.New("page size must be positive")

// Page is one response of a paged list endpoint.
type Page[T any] struct {
	Items []T
	// TotalCount is the server's reported size of the full result set. Zero
	// means the server did not report it.
	TotalCount int
	// Count is the number of items the server says it returned.
	Count int
}

// Options parameterizes a single FetchAll call. Endpoints differ in their
// maximum page size and in the maximum offset they allow listing to.
type Options struct {
	Name      string
	PageSize  int
	MaxOffset int
}

// PageFunc fetches the page starting at offset with at most limit items.
type PageFunc[T any] func(ctx context.Context, offset, limit int) (Page[T], error)

// FetchAll calls fetchPage until the result set is complete and returns the
// concatenation of every page.
//
// The offset advances by the count the server reports, not by the page size,
// since servers may return short pages. Fetching stops when the accumulated
// items reach a positive TotalCount, when a page reports zero items, or when
// the offset reaches MaxOffset.
func FetchAll[T any](ctx context.Context, opts Options, fetchPage PageFunc[T]) ([]T, error) {
	if opts.PageSize <= 0 {
		return nil, ErrInvalidPageSize
	}

	all := make([]T, 0)
	offset := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetchPage(ctx, offset, opts.PageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch %s page at offset %d: %w", opts.Name, offset, err)
		}

		all = append(all, page.Items...)
		offset += page.Count

		logrus.WithFields(logrus.Fields{
			"endpoint":    opts.Name,
			"received":    len(page.Items),
			"count":       page.Count,
			"total_count": page.TotalCount,
			"accumulated": len(all),
			"next_offset": offset,
		}).Debug("pagination: page fetched")

		if page.TotalCount > 0 && len(all) >= page.TotalCount {
			break
		}

		if page.Count == 0 || len(page.Items) == 0 {
			break
		}

		if opts.MaxOffset > 0 && offset >= opts.MaxOffset {
			logrus.WithFields(logrus.Fields{
				"endpoint":   opts.Name,
				"max_offset": opts.MaxOffset,
			}).Warn("pagination: reached maximum offset, result may be incomplete")
			break
		}
	}

	return all, nil
}
