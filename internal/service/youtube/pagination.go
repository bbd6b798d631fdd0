package youtube

import "context"

// PageFunc fetches one page of items. An empty token requests the first
// page; the returned token is empty when no pages remain.
type PageFunc[T any] func(ctx context.Context, pageToken string) ([]T, string, error)

// CollectPages drives cursor continuation until the source reports no next
// page, returning every item in original order. The traversal is single-use:
// tokens cannot be rewound. On a page error the partial sequence is discarded
// and only the error is returned; retry policy belongs to the caller.
func CollectPages[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var (
		items []T
		token string
	)

	for {
		page, next, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}

		items = append(items, page...)

		if next == "" {
			return items, nil
		}
		token = next
	}
}
