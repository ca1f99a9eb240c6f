package domain

import (
	"fmt"
	"time"
)

// ReviewType distinguishes who wrote the review.
type ReviewType string

const (
	ReviewHostToGuest ReviewType = "host-to-guest"
	ReviewGuestToHost ReviewType = "guest-to-host"
)

func ParseReviewType(s string) (ReviewType, error) {
	switch ReviewType(s) {
	case ReviewHostToGuest, ReviewGuestToHost:
		return ReviewType(s), nil
	}
	return "", fmt.Errorf("unknown review type %q", s)
}

// ReviewStatus is carried through from the source batch. Current logic never
// filters on it.
type ReviewStatus string

const (
	StatusPublished ReviewStatus = "published"
	StatusPending   ReviewStatus = "pending"
	StatusArchived  ReviewStatus = "archived"
)

// Channel is the booking platform the review came through.
type Channel string

const (
	ChannelAirbnb  Channel = "Airbnb"
	ChannelBooking Channel = "Booking.com"
	ChannelDirect  Channel = "Direct"
	ChannelVrbo    Channel = "Vrbo"
	ChannelExpedia Channel = "Expedia"
)

func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelAirbnb, ChannelBooking, ChannelDirect, ChannelVrbo, ChannelExpedia:
		return Channel(s), nil
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

// ReviewCategory is a sub-score (cleanliness, communication, ...) on the
// documented 1-10 scale. The scale is not enforced on input; consumers must
// tolerate out-of-range values.
type ReviewCategory struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// Review is a single guest-or-host feedback record tied to one property stay.
// Records are immutable once loaded from the batch.
type Review struct {
	ID            int64            `json:"id"`
	Type          ReviewType       `json:"type"`
	Status        ReviewStatus     `json:"status"`
	Rating        *float64         `json:"rating"`
	PublicReview  string           `json:"publicReview"`
	Categories    []ReviewCategory `json:"reviewCategory"`
	SubmittedAt   string           `json:"submittedAt"`
	GuestName     string           `json:"guestName"`
	ListingName   string           `json:"listingName"`
	ListingID     string           `json:"listingId"`
	Channel       Channel          `json:"channel"`
	PrivateReview *string          `json:"privateReview,omitempty"`
}

// NormalizedReview is a Review with derived fields attached. Derived fields
// are recomputed on every normalization, never persisted.
type NormalizedReview struct {
	Review
	AverageRating float64   `json:"averageRating"`
	SubmittedDate time.Time `json:"submittedDate"`
}
