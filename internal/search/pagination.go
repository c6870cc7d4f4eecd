package search

// page holds pagination metadata.
type page struct {
	TotalCount int
	Truncated  bool
}

// paginate returns the requested window of items. Offsets past the end
// yield an empty slice rather than a panic.
func paginate[T any](items []T, offset, limit int) ([]T, page) {
	total := len(items)
	start := min(offset, total)
	end := min(offset+limit, total)
	return items[start:end], page{
		TotalCount: total,
		Truncated:  offset+limit < total,
	}
}
