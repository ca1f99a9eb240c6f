package app_test

import (
	"testing"
	"time"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func review(id int64, rating *float64, cats ...float64) domain.Review {
	r := domain.Review{
		ID:          id,
		Type:        domain.ReviewGuestToHost,
		Status:      domain.StatusPublished,
		Rating:      rating,
		SubmittedAt: "2024-01-05 10:00:00",
		ListingID:   "prop-001",
		Channel:     domain.ChannelAirbnb,
	}
	for i, c := range cats {
		name := []string{"cleanliness", "communication", "location", "value"}[i%4]
		r.Categories = append(r.Categories, domain.ReviewCategory{Category: name, Rating: c})
	}
	return r
}

func ptr[T any](v T) *T { return &v }

func TestAverageRating_NoRatingNoCategories(t *testing.T) {
	if got := app.AverageRating(review(1, nil)); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestAverageRating_CategoryMeanRoundedToTenths(t *testing.T) {
	if got := app.AverageRating(review(1, nil, 8, 9)); got != 8.5 {
		t.Fatalf("expected 8.5, got %v", got)
	}
	// 7+8+9 = 24/3 = 8.0 exactly
	if got := app.AverageRating(review(2, nil, 7, 8, 9)); got != 8.0 {
		t.Fatalf("expected 8.0, got %v", got)
	}
	// 8+8+9 = 25/3 = 8.333... -> 8.3
	if got := app.AverageRating(review(3, nil, 8, 8, 9)); got != 8.3 {
		t.Fatalf("expected 8.3, got %v", got)
	}
	// half rounds away from zero: 8+9+9+9 = 35/4 = 8.75 -> 8.8
	if got := app.AverageRating(review(4, nil, 8, 9, 9, 9)); got != 8.8 {
		t.Fatalf("expected 8.8, got %v", got)
	}
}

func TestAverageRating_ProvidedRatingWinsUnchanged(t *testing.T) {
	// overall rating is returned as-is, not rounded, categories ignored
	if got := app.AverageRating(review(1, ptr(6.44), 9, 9)); got != 6.44 {
		t.Fatalf("expected 6.44, got %v", got)
	}
	// a literal 0 rating is still a provided rating
	if got := app.AverageRating(review(2, ptr(0.0), 9, 9)); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestNormalize_AttachesDerivedFields(t *testing.T) {
	n, err := app.Normalize(review(1, nil, 8, 9))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n.AverageRating != 8.5 {
		t.Fatalf("averageRating: %v", n.AverageRating)
	}
	want := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	if !n.SubmittedDate.Equal(want) {
		t.Fatalf("submittedDate: %v", n.SubmittedDate)
	}
}

func TestNormalize_BadTimestampIsHardError(t *testing.T) {
	r := review(1, nil, 8)
	r.SubmittedAt = "yesterday-ish"
	if _, err := app.Normalize(r); err == nil {
		t.Fatalf("expected error for unparsable timestamp")
	}
	if _, err := app.NormalizeAll([]domain.Review{review(2, nil, 8), r}); err == nil {
		t.Fatalf("expected NormalizeAll to surface the error")
	}
}

func TestNormalize_AcceptsRFC3339AndBareDate(t *testing.T) {
	for _, stamp := range []string{"2024-02-10T14:30:00Z", "2024-02-10 14:30:00", "2024-02-10"} {
		r := review(1, nil, 8)
		r.SubmittedAt = stamp
		if _, err := app.Normalize(r); err != nil {
			t.Fatalf("%s: %v", stamp, err)
		}
	}
}

func TestNormalize_IsPure(t *testing.T) {
	r := review(1, nil, 7, 9, 10)
	a, err := app.Normalize(r)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, err := app.Normalize(r)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if a.AverageRating != b.AverageRating || !a.SubmittedDate.Equal(b.SubmittedDate) {
		t.Fatalf("normalization not reproducible: %+v vs %+v", a, b)
	}
}
