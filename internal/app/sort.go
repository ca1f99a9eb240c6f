package app

import (
	"fmt"
	"sort"

	"flex_reviews/internal/domain"
)

type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByRating SortKey = "rating"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortKey maps a request parameter to a sort key; empty means the
// default (date). Anything else is a validation error.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByDate, nil
	case SortByDate, SortByRating:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sortBy %q", s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortDesc, nil
	case SortAsc, SortDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sortOrder %q", s)
}

// Sort returns a new slice ordered by the given key. The sort is stable in
// both directions: equal keys keep their relative input order. The input
// slice is never mutated.
func Sort(reviews []domain.Review, key SortKey, order SortOrder) []domain.Review {
	out := make([]domain.Review, len(reviews))
	copy(out, reviews)

	var cmp func(a, b domain.Review) int
	switch key {
	case SortByRating:
		cmp = func(a, b domain.Review) int {
			ra, rb := AverageRating(a), AverageRating(b)
			switch {
			case ra < rb:
				return -1
			case ra > rb:
				return 1
			}
			return 0
		}
	default: // SortByDate
		cmp = func(a, b domain.Review) int {
			return submittedTime(a).Compare(submittedTime(b))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == SortAsc {
			return c < 0
		}
		return c > 0
	})
	return out
}
