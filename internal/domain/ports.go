package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Well-known document names. One document per concern.
const (
	DocReviews    = "reviews"
	DocSelections = "selections"
	DocProperties = "properties"
)

// DocumentStore persists whole JSON documents. Replace must be atomic: a
// concurrent Load sees either the previous document or the new one, never a
// partial write. Load returns ErrNotFound when the document does not exist.
type DocumentStore interface {
	Load(ctx context.Context, name string, dst any) error
	Replace(ctx context.Context, name string, v any) error
}

// ReviewsDocument is the wire shape of the persisted review batch. Read-only
// to this service; the importer writes it.
type ReviewsDocument struct {
	Status string   `json:"status"`
	Result []Review `json:"result"`
}

// PropertiesDocument is the wire shape of the persisted property catalogue.
type PropertiesDocument struct {
	Properties []Property `json:"properties"`
}
