package app

import (
	"fmt"
	"strconv"
	"strings"

	"flex_reviews/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Channel exports do not agree on field names; the importer tolerates the
// common variants and normalizes into the canonical Review shape.
var reviewAliases = map[string][]string{
	"id":            {"id", "reviewId", "review_id"},
	"type":          {"type", "reviewType", "review_type"},
	"status":        {"status", "state"},
	"rating":        {"rating", "overallRating", "overall_rating", "score"},
	"publicReview":  {"publicReview", "public_review", "text", "comment", "review"},
	"submittedAt":   {"submittedAt", "submitted_at", "createdAt", "created_at", "date"},
	"guestName":     {"guestName", "guest_name", "author", "reviewer.name"},
	"listingName":   {"listingName", "listing_name", "propertyName"},
	"listingId":     {"listingId", "listing_id", "propertyId", "property_id"},
	"channel":       {"channel", "source", "platform", "provider"},
	"privateReview": {"privateReview", "private_review", "privateFeedback"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, key string) string {
	for _, p := range reviewAliases[key] {
		if v := lookupAny(m, p); v != nil {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func lookupNum(m map[string]any, key string) (float64, bool) {
	for _, p := range reviewAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, true
			}
		case nil:
		}
	}
	return 0, false
}

/********** review mapping **********/

// MapReview normalizes one raw channel-export record into a Review. The id
// and submittedAt fields are required; everything else degrades to its zero
// value.
func MapReview(raw map[string]any) (domain.Review, error) {
	id, ok := lookupNum(raw, "id")
	if !ok {
		return domain.Review{}, fmt.Errorf("record has no review id")
	}
	submitted := lookupStr(raw, "submittedAt")
	if submitted == "" {
		return domain.Review{}, fmt.Errorf("review %d has no submittedAt", int64(id))
	}
	if _, err := ParseSubmittedAt(submitted); err != nil {
		return domain.Review{}, fmt.Errorf("review %d: %w", int64(id), err)
	}

	r := domain.Review{
		ID:           int64(id),
		Type:         domain.ReviewType(lookupStr(raw, "type")),
		Status:       domain.ReviewStatus(lookupStr(raw, "status")),
		PublicReview: lookupStr(raw, "publicReview"),
		SubmittedAt:  submitted,
		GuestName:    lookupStr(raw, "guestName"),
		ListingName:  lookupStr(raw, "listingName"),
		ListingID:    lookupStr(raw, "listingId"),
		Channel:      domain.Channel(lookupStr(raw, "channel")),
		Categories:   mapCategories(raw),
	}
	if r.Type == "" {
		r.Type = domain.ReviewGuestToHost
	}
	if r.Status == "" {
		r.Status = domain.StatusPublished
	}
	if f, ok := lookupNum(raw, "rating"); ok {
		r.Rating = &f
	}
	if s := lookupStr(raw, "privateReview"); s != "" {
		r.PrivateReview = &s
	}
	return r, nil
}

func mapCategories(raw map[string]any) []domain.ReviewCategory {
	var list []any
	for _, p := range []string{"reviewCategory", "review_category", "categories"} {
		if v, ok := lookupAny(raw, p).([]any); ok {
			list = v
			break
		}
	}
	out := make([]domain.ReviewCategory, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["category"].(string)
		if name == "" {
			continue
		}
		var rating float64
		switch v := m["rating"].(type) {
		case float64:
			rating = v
		case string:
			rating, _ = strconv.ParseFloat(v, 64)
		}
		out = append(out, domain.ReviewCategory{Category: name, Rating: rating})
	}
	return out
}
