package redisdoc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"flex_reviews/internal/domain"
	"flex_reviews/internal/storage/redisdoc"
)

func TestLoad_MissingDocument(t *testing.T) {
	mr := miniredis.RunT(t)
	s := redisdoc.New(mr.Addr(), "", 0)

	var doc domain.ReviewsDocument
	err := s.Load(context.Background(), domain.DocReviews, &doc)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceThenLoad_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	s := redisdoc.New(mr.Addr(), "", 0)
	ctx := context.Background()

	rating := 8.0
	in := domain.ReviewsDocument{
		Status: "success",
		Result: []domain.Review{{
			ID:          1,
			Type:        domain.ReviewGuestToHost,
			Status:      domain.StatusPublished,
			Rating:      &rating,
			SubmittedAt: "2024-02-10 14:30:00",
			ListingID:   "prop-001",
			Channel:     domain.ChannelAirbnb,
		}},
	}
	if err := s.Replace(ctx, domain.DocReviews, in); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var out domain.ReviewsDocument
	if err := s.Load(ctx, domain.DocReviews, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out.Result) != 1 || out.Result[0].ID != 1 || out.Result[0].Channel != domain.ChannelAirbnb {
		t.Fatalf("unexpected document: %+v", out)
	}
	if out.Result[0].Rating == nil || *out.Result[0].Rating != 8.0 {
		t.Fatalf("rating lost in round trip: %+v", out.Result[0])
	}
}

func TestLoad_CorruptDocument(t *testing.T) {
	mr := miniredis.RunT(t)
	if err := mr.Set("doc:reviews", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := redisdoc.New(mr.Addr(), "", 0)

	var doc domain.ReviewsDocument
	err := s.Load(context.Background(), domain.DocReviews, &doc)
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
