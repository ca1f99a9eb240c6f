package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Q   *app.QueryService
	Sel *app.SelectionService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/reviews", h.getReviews)
	s.mux.Get("/api/reviews/selections", h.getSelections)
	s.mux.Post("/api/reviews/selections", h.postSelections)
	s.mux.Get("/api/properties", h.listProperties)
	s.mux.Get("/api/properties/{id}", h.getProperty)
	s.mux.Get("/api/stats", h.getStats)
}

// ---- response plumbing ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError emits the error envelope. err is a debug detail and included
// only when present; internal specifics never go further than that field.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"status": "error", "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, status, body)
}

// ---- GET /api/reviews ----

// filtersEcho mirrors the accepted query parameters back to the caller.
type filtersEcho struct {
	PropertyID *string  `json:"propertyId,omitempty"`
	Channel    *string  `json:"channel,omitempty"`
	DateFrom   *string  `json:"dateFrom,omitempty"`
	DateTo     *string  `json:"dateTo,omitempty"`
	MinRating  *float64 `json:"minRating,omitempty"`
	MaxRating  *float64 `json:"maxRating,omitempty"`
	ReviewType *string  `json:"reviewType,omitempty"`
	SortBy     string   `json:"sortBy"`
	SortOrder  string   `json:"sortOrder"`
}

// parseReviewQuery turns query parameters into a ReviewQuery. Malformed
// values are validation failures, never silently defaulted; only absent
// parameters fall back to defaults.
func parseReviewQuery(r *http.Request) (app.ReviewQuery, filtersEcho, error) {
	var q app.ReviewQuery
	var echo filtersEcho
	vals := r.URL.Query()

	if v := vals.Get("propertyId"); v != "" {
		q.PropertyID = v
		echo.PropertyID = &v
	}
	if v := vals.Get("channel"); v != "" {
		ch, err := domain.ParseChannel(v)
		if err != nil {
			return q, echo, err
		}
		q.Channel = ch
		echo.Channel = &v
	}
	if v := vals.Get("reviewType"); v != "" {
		rt, err := domain.ParseReviewType(v)
		if err != nil {
			return q, echo, err
		}
		q.ReviewType = rt
		echo.ReviewType = &v
	}
	if v := vals.Get("dateFrom"); v != "" {
		t, err := app.ParseSubmittedAt(v)
		if err != nil {
			return q, echo, fmt.Errorf("invalid dateFrom: %w", err)
		}
		q.DateFrom = &t
		echo.DateFrom = &v
	}
	if v := vals.Get("dateTo"); v != "" {
		t, err := app.ParseSubmittedAt(v)
		if err != nil {
			return q, echo, fmt.Errorf("invalid dateTo: %w", err)
		}
		q.DateTo = &t
		echo.DateTo = &v
	}
	if v := vals.Get("minRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, echo, fmt.Errorf("invalid minRating %q", v)
		}
		q.MinRating = &f
		echo.MinRating = &f
	}
	if v := vals.Get("maxRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, echo, fmt.Errorf("invalid maxRating %q", v)
		}
		q.MaxRating = &f
		echo.MaxRating = &f
	}

	var err error
	if q.SortBy, err = app.ParseSortKey(vals.Get("sortBy")); err != nil {
		return q, echo, err
	}
	if q.SortOrder, err = app.ParseSortOrder(vals.Get("sortOrder")); err != nil {
		return q, echo, err
	}
	echo.SortBy = string(q.SortBy)
	echo.SortOrder = string(q.SortOrder)
	return q, echo, nil
}

func (h *Handlers) getReviews(w http.ResponseWriter, r *http.Request) {
	q, echo, err := parseReviewQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.Q.ListReviews(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch reviews", err)
		return
	}
	if result == nil {
		result = []domain.NormalizedReview{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"result":  result,
		"count":   len(result),
		"filters": echo,
	})
}

// ---- selections ----

func (h *Handlers) getSelections(w http.ResponseWriter, r *http.Request) {
	data := h.Sel.GetAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"result":      data,
		"selectedIds": h.Sel.SelectedIDs(r.Context()),
	})
}

func (h *Handlers) postSelections(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReviewID  *int64  `json:"reviewId"`
		ReviewIDs []int64 `json:"reviewIds"`
		Selected  *bool   `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body. Provide reviewId or reviewIds.", nil)
		return
	}

	// single toggle
	if body.ReviewID != nil {
		selected, err := h.Sel.Toggle(r.Context(), *body.ReviewID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update review selections", err)
			return
		}
		msg := "Review removed from public display"
		if selected {
			msg = "Review selected for public display"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "success",
			"reviewId": *body.ReviewID,
			"selected": selected,
			"message":  msg,
		})
		return
	}

	// bulk update
	if body.ReviewIDs != nil {
		selected := true
		if body.Selected != nil {
			selected = *body.Selected
		}
		if err := h.Sel.BulkSet(r.Context(), body.ReviewIDs, selected); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update review selections", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "success",
			"count":    len(body.ReviewIDs),
			"selected": selected,
			"message":  fmt.Sprintf("%d reviews updated", len(body.ReviewIDs)),
		})
		return
	}

	writeError(w, http.StatusBadRequest, "Invalid request body. Provide reviewId or reviewIds.", nil)
}

// ---- properties ----

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Q.Properties(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch properties", err)
		return
	}
	if props == nil {
		props = []domain.Property{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"result": props,
		"count":  len(props),
	})
}

// getProperty is the public view: the property plus only the reviews an
// operator selected for display, guest-to-host only, private feedback
// stripped.
func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prop, err := h.Q.Property(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Property not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch property", err)
		return
	}

	reviews, err := h.Q.PublicReviews(r.Context(), id, h.Sel.SelectedSet(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch property reviews", err)
		return
	}

	var avg float64
	if len(reviews) > 0 {
		var sum float64
		for _, rv := range reviews {
			sum += rv.AverageRating
		}
		avg = sum / float64(len(reviews))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"result":        prop,
		"reviews":       reviews,
		"reviewCount":   len(reviews),
		"averageRating": avg,
	})
}

// ---- stats ----

func (h *Handlers) getStats(w http.ResponseWriter, r *http.Request) {
	q := app.ReviewQuery{SortBy: app.SortByDate, SortOrder: app.SortDesc}
	q.PropertyID = r.URL.Query().Get("propertyId")

	reviews, err := h.Q.ListReviews(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stats", err)
		return
	}
	selected := h.Sel.SelectedIDs(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"stats":        app.ComputeStats(reviews, len(selected)),
		"monthlyTrend": app.MonthlyTrend(reviews, time.Now()),
		"categories":   app.CategoryBreakdown(reviews),
	})
}
