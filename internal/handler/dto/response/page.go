package response

import "travel-booking/internal/usecase/queries"

// ListResponse is the envelope for keyset-paginated lists.
type ListResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

func FromPage[S, T any](page *queries.Page[S], convert func(S) T) ListResponse[T] {
	items := make([]T, len(page.Items))
	for i, it := range page.Items {
		items[i] = convert(it)
	}
	res := ListResponse[T]{Items: items}
	if page.Next != nil {
		res.NextCursor = page.Next.After
	}
	return res
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type URLResponse struct {
	URL string `json:"url"`
}
