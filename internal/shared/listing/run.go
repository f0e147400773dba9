package listing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// OrderBy is the listing order shared by every entity.
const OrderBy = " ORDER BY created_at DESC, id ASC"

type Page[T any] struct {
	Data  []T
	Total int64
}

// Run executes count and fetch concurrently and combines the results.
// Both callbacks must render the same Filter so the total matches the pages.
func Run[T any](
	ctx context.Context,
	count func(ctx context.Context) (int64, error),
	fetch func(ctx context.Context) ([]T, error),
) (Page[T], error) {
	var page Page[T]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := count(gctx)
		if err != nil {
			return err
		}
		page.Total = total
		return nil
	})
	g.Go(func() error {
		data, err := fetch(gctx)
		if err != nil {
			return err
		}
		page.Data = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return Page[T]{}, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}
