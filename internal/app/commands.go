package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/domain"
)

// SelectionService owns the curated set of review ids shown on public
// property pages. The whole selection state lives in one persisted document;
// every mutation rewrites it with a refreshed lastUpdated stamp.
//
// Mutations are read-modify-write cycles against shared state, so they are
// serialized by a mutex. Without it, concurrent toggles could read the same
// snapshot and overwrite each other's entries.
type SelectionService struct {
	store domain.DocumentStore
	mu    sync.Mutex
	now   func() time.Time
}

func NewSelectionService(store domain.DocumentStore) *SelectionService {
	return &SelectionService{store: store, now: time.Now}
}

// GetAll returns the persisted selection state. A missing or corrupt
// document degrades to a fresh empty one rather than an error: selection
// state is always recoverable from nothing.
func (s *SelectionService) GetAll(ctx context.Context) domain.ReviewSelectionsData {
	data, err := s.load(ctx)
	if err != nil {
		log.Error().Err(err).Str("document", domain.DocSelections).Msg("selections unreadable, starting fresh")
		return domain.ReviewSelectionsData{
			Selections:  []domain.ReviewSelection{},
			LastUpdated: s.now().UTC().Format(time.RFC3339),
		}
	}
	return data
}

// SelectedIDs returns the ids of all currently selected reviews.
func (s *SelectionService) SelectedIDs(ctx context.Context) []int64 {
	data := s.GetAll(ctx)
	ids := make([]int64, 0, len(data.Selections))
	for _, sel := range data.Selections {
		ids = append(ids, sel.ReviewID)
	}
	return ids
}

// SelectedSet returns the selected ids as a lookup set.
func (s *SelectionService) SelectedSet(ctx context.Context) map[int64]bool {
	set := map[int64]bool{}
	for _, id := range s.SelectedIDs(ctx) {
		set[id] = true
	}
	return set
}

// Toggle flips the selection state of one review and reports the new state:
// true if the review is now selected.
func (s *SelectionService) Toggle(ctx context.Context, reviewID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		data = domain.ReviewSelectionsData{Selections: []domain.ReviewSelection{}}
	}

	for i, sel := range data.Selections {
		if sel.ReviewID == reviewID {
			data.Selections = append(data.Selections[:i], data.Selections[i+1:]...)
			if err := s.save(ctx, data); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	data.Selections = append(data.Selections, domain.ReviewSelection{
		ReviewID:   reviewID,
		SelectedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err := s.save(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}

// BulkSet selects or unselects every id in one write. Selecting is
// idempotent (already-selected ids are left alone, no duplicates);
// unselecting silently ignores ids that are not present.
func (s *SelectionService) BulkSet(ctx context.Context, reviewIDs []int64, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		data = domain.ReviewSelectionsData{Selections: []domain.ReviewSelection{}}
	}

	if selected {
		existing := make(map[int64]bool, len(data.Selections))
		for _, sel := range data.Selections {
			existing[sel.ReviewID] = true
		}
		stamp := s.now().UTC().Format(time.RFC3339)
		for _, id := range reviewIDs {
			if existing[id] {
				continue
			}
			existing[id] = true
			data.Selections = append(data.Selections, domain.ReviewSelection{ReviewID: id, SelectedAt: stamp})
		}
	} else {
		remove := make(map[int64]bool, len(reviewIDs))
		for _, id := range reviewIDs {
			remove[id] = true
		}
		kept := data.Selections[:0:0]
		for _, sel := range data.Selections {
			if !remove[sel.ReviewID] {
				kept = append(kept, sel)
			}
		}
		data.Selections = kept
	}

	return s.save(ctx, data)
}

func (s *SelectionService) load(ctx context.Context) (domain.ReviewSelectionsData, error) {
	var data domain.ReviewSelectionsData
	if err := s.store.Load(ctx, domain.DocSelections, &data); err != nil {
		return domain.ReviewSelectionsData{}, err
	}
	if data.Selections == nil {
		data.Selections = []domain.ReviewSelection{}
	}
	return data, nil
}

func (s *SelectionService) save(ctx context.Context, data domain.ReviewSelectionsData) error {
	data.LastUpdated = s.now().UTC().Format(time.RFC3339)
	if err := s.store.Replace(ctx, domain.DocSelections, data); err != nil {
		return fmt.Errorf("save selections: %w", err)
	}
	return nil
}
