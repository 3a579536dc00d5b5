package question

import (
	"math"
	"strconv"
	"strings"
)

// Paginate returns the half-open window [size*(page-1), size*page) of items,
// intersected with the bounds of items. Pages below 1 are not clamped, so they
// come back empty. items must already be in id order.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	// The window of a page whose offset overflows int lies past every slice.
	if page < 1 || page-1 > (math.MaxInt-size)/size {
		return []T{}
	}
	start := size * (page - 1)
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return []T{}
	}
	return items[start:end]
}

// ParsePage reads a page number, defaulting to 1 when raw is absent or not an integer.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return page
}
