package app

import (
	"time"

	"flex_reviews/internal/domain"
)

// Criteria is a conjunction of independently optional predicates. Zero-value
// fields are no-ops; everything provided must match.
type Criteria struct {
	PropertyID string
	Channel    domain.Channel
	ReviewType domain.ReviewType
	DateFrom   *time.Time
	DateTo     *time.Time
	MinRating  *float64
	MaxRating  *float64
}

// Filter returns the reviews matching every provided criterion, preserving
// input order. An empty result is valid; MinRating > MaxRating simply
// matches nothing. The input slice is never mutated.
func Filter(reviews []domain.Review, c Criteria) []domain.Review {
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if !matches(r, c) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r domain.Review, c Criteria) bool {
	if c.PropertyID != "" && r.ListingID != c.PropertyID {
		return false
	}
	if c.Channel != "" && r.Channel != c.Channel {
		return false
	}
	if c.ReviewType != "" && r.Type != c.ReviewType {
		return false
	}
	if c.DateFrom != nil || c.DateTo != nil {
		t := submittedTime(r)
		if c.DateFrom != nil && t.Before(*c.DateFrom) {
			return false
		}
		if c.DateTo != nil && t.After(*c.DateTo) {
			return false
		}
	}
	if c.MinRating != nil || c.MaxRating != nil {
		// Bounds compare against the derived average even when an overall
		// rating is present.
		avg := AverageRating(r)
		if c.MinRating != nil && avg < *c.MinRating {
			return false
		}
		if c.MaxRating != nil && avg > *c.MaxRating {
			return false
		}
	}
	return true
}
