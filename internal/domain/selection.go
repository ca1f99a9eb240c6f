package domain

// ReviewSelection marks one review for public display. At most one entry
// exists per review id; absence means unselected.
type ReviewSelection struct {
	ReviewID   int64  `json:"reviewId"`
	SelectedAt string `json:"selectedAt"`
	SelectedBy string `json:"selectedBy,omitempty"`
}

// ReviewSelectionsData is the entire persisted selection state. LastUpdated
// is overwritten on every mutation.
type ReviewSelectionsData struct {
	Selections  []ReviewSelection `json:"selections"`
	LastUpdated string            `json:"lastUpdated"`
}
