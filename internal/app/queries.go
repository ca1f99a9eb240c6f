package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/domain"
)

// ReviewQuery is the full request shape for a dashboard listing: filter
// criteria plus ordering.
type ReviewQuery struct {
	Criteria
	SortBy    SortKey
	SortOrder SortOrder
}

// QueryService answers all read paths. Every call re-fetches from the
// document store; there is no in-memory cache between requests, so readers
// always see the latest persisted batch.
type QueryService struct {
	store domain.DocumentStore
}

func NewQueryService(store domain.DocumentStore) *QueryService {
	return &QueryService{store: store}
}

// FetchAll loads the raw review batch. A missing or malformed document
// degrades to an empty batch: the failure is logged at this boundary and
// swallowed, so callers cannot tell "empty" from "unreadable".
func (s *QueryService) FetchAll(ctx context.Context) []domain.Review {
	var doc domain.ReviewsDocument
	if err := s.store.Load(ctx, domain.DocReviews, &doc); err != nil {
		log.Error().Err(err).Str("document", domain.DocReviews).Msg("review batch unreadable, serving empty")
		return nil
	}
	return doc.Result
}

// ListReviews runs the full pipeline: fetch, filter, sort, normalize.
func (s *QueryService) ListReviews(ctx context.Context, q ReviewQuery) ([]domain.NormalizedReview, error) {
	reviews := s.FetchAll(ctx)
	reviews = Filter(reviews, q.Criteria)
	reviews = Sort(reviews, q.SortBy, q.SortOrder)
	return NormalizeAll(reviews)
}

// Properties loads the property catalogue.
func (s *QueryService) Properties(ctx context.Context) ([]domain.Property, error) {
	var doc domain.PropertiesDocument
	if err := s.store.Load(ctx, domain.DocProperties, &doc); err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	return doc.Properties, nil
}

// Property returns one property by id.
func (s *QueryService) Property(ctx context.Context, id string) (domain.Property, error) {
	props, err := s.Properties(ctx)
	if err != nil {
		return domain.Property{}, err
	}
	for _, p := range props {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Property{}, domain.ErrNotFound
}

// PublicReviews returns the reviews displayable on a property page: selected
// by an operator, guest-to-host, and belonging to the property. Private
// feedback is stripped before the result leaves this method.
func (s *QueryService) PublicReviews(ctx context.Context, propertyID string, selected map[int64]bool) ([]domain.NormalizedReview, error) {
	reviews := s.FetchAll(ctx)
	out := make([]domain.NormalizedReview, 0)
	for _, r := range reviews {
		if r.ListingID != propertyID || r.Type != domain.ReviewGuestToHost || !selected[r.ID] {
			continue
		}
		n, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		n.PrivateReview = nil
		out = append(out, n)
	}
	return out, nil
}
