package domain

// Property is static reference data, loaded independently of reviews and
// related to them via ListingID. The relation is soft; storage does not
// enforce it.
type Property struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	MaxGuests     int      `json:"maxGuests"`
	PricePerNight float64  `json:"pricePerNight"`
	Images        []string `json:"images"`
	Amenities     []string `json:"amenities"`
}
