package app

import (
	"fmt"
	"math"
	"time"

	"flex_reviews/internal/domain"
)

// Accepted submittedAt layouts. Batches in the wild carry both RFC 3339 and
// the older space-separated form; bare dates show up in filter bounds.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSubmittedAt parses a review timestamp, trying each accepted layout.
func ParseSubmittedAt(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// submittedTime is the lenient variant used by the filter and sort engines,
// which run over raw reviews before normalization. Unparsable values map to
// the zero instant; only Normalize turns them into errors.
func submittedTime(r domain.Review) time.Time {
	t, err := ParseSubmittedAt(r.SubmittedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AverageRating derives the overall rating for a review. A provided overall
// rating wins unchanged; otherwise the mean of the category ratings, rounded
// half-away-from-zero at the tenths digit. Empty categories yield 0.
//
// Pure function of the review: the filter, sort, and display paths all call
// it independently and must get identical results.
func AverageRating(r domain.Review) float64 {
	if r.Rating != nil {
		return *r.Rating
	}
	if len(r.Categories) == 0 {
		return 0
	}
	var sum float64
	for _, c := range r.Categories {
		sum += c.Rating
	}
	return round1(sum / float64(len(r.Categories)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Normalize attaches the derived average rating and parsed timestamp. An
// unparsable submittedAt is a hard error surfaced to the caller, never a
// silently defaulted date.
func Normalize(r domain.Review) (domain.NormalizedReview, error) {
	t, err := ParseSubmittedAt(r.SubmittedAt)
	if err != nil {
		return domain.NormalizedReview{}, fmt.Errorf("normalize review %d: %w", r.ID, err)
	}
	return domain.NormalizedReview{
		Review:        r,
		AverageRating: AverageRating(r),
		SubmittedDate: t,
	}, nil
}

// NormalizeAll normalizes a collection, failing on the first bad record.
func NormalizeAll(rs []domain.Review) ([]domain.NormalizedReview, error) {
	out := make([]domain.NormalizedReview, 0, len(rs))
	for _, r := range rs {
		n, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
