package app

import (
	"sort"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

// Aggregation over normalized reviews for the dashboard. Every function here
// is pure and side-effect-free; callers re-derive on every request.

type Stats struct {
	TotalReviews  int     `json:"totalReviews"`
	GuestReviews  int     `json:"guestReviews"`
	AverageRating float64 `json:"averageRating"`
	SelectedCount int     `json:"selectedCount"`
}

// ComputeStats summarizes a review collection. The average covers
// guest-to-host reviews only and is 0 when there are none. The selected
// count comes from the selection store, not from the collection.
func ComputeStats(reviews []domain.NormalizedReview, selectedCount int) Stats {
	st := Stats{TotalReviews: len(reviews), SelectedCount: selectedCount}
	var sum float64
	for _, r := range reviews {
		if r.Type != domain.ReviewGuestToHost {
			continue
		}
		st.GuestReviews++
		sum += r.AverageRating
	}
	if st.GuestReviews > 0 {
		st.AverageRating = round1(sum / float64(st.GuestReviews))
	}
	return st
}

type TrendPoint struct {
	Month         string  `json:"month"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// MonthlyTrend buckets guest-to-host reviews with a positive average rating
// into the trailing six calendar months ending at now (inclusive). Bucketing
// keys on (year, month) only. Months without reviews report rating 0.
func MonthlyTrend(reviews []domain.NormalizedReview, now time.Time) []TrendPoint {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket, 6)
	months := make([]time.Time, 0, 6)
	for i := 5; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		months = append(months, m)
		buckets[m.Format("Jan 2006")] = &bucket{}
	}

	for _, r := range reviews {
		if r.Type != domain.ReviewGuestToHost || r.AverageRating <= 0 {
			continue
		}
		key := r.SubmittedDate.Format("Jan 2006")
		if b, ok := buckets[key]; ok {
			b.sum += r.AverageRating
			b.count++
		}
	}

	out := make([]TrendPoint, 0, 6)
	for _, m := range months {
		key := m.Format("Jan 2006")
		b := buckets[key]
		p := TrendPoint{Month: key, ReviewCount: b.count}
		if b.count > 0 {
			p.AverageRating = round1(b.sum / float64(b.count))
		}
		out = append(out, p)
	}
	return out
}

type CategoryAverage struct {
	Category      string  `json:"category"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// CategoryBreakdown groups every category rating across the input by
// category name and returns the top six by mean rating, descending. Ties
// keep first-encountered order.
func CategoryBreakdown(reviews []domain.NormalizedReview) []CategoryAverage {
	type agg struct {
		sum   float64
		count int
	}
	totals := map[string]*agg{}
	var order []string
	for _, r := range reviews {
		for _, c := range r.Categories {
			a, ok := totals[c.Category]
			if !ok {
				a = &agg{}
				totals[c.Category] = a
				order = append(order, c.Category)
			}
			a.sum += c.Rating
			a.count++
		}
	}

	// Sort on the raw mean; rounding happens only on the way out.
	means := make([]float64, len(order))
	for i, name := range order {
		a := totals[name]
		means[i] = a.sum / float64(a.count)
	}
	idx := make([]int, len(order))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return means[idx[i]] > means[idx[j]]
	})
	if len(idx) > 6 {
		idx = idx[:6]
	}

	out := make([]CategoryAverage, 0, len(idx))
	for _, i := range idx {
		name := order[i]
		out = append(out, CategoryAverage{
			Category:      strings.ReplaceAll(name, "_", " "),
			AverageRating: round1(means[i]),
			ReviewCount:   totals[name].count,
		})
	}
	return out
}
