package models

// FreightService represents a scheduled freight run with finite tonnage.
// Available is only ever mutated through the capacity ledger's conditional
// updates; admin edits overwrite it directly and are not reconciled against
// outstanding bookings.
type FreightService struct {
	ID          int64  `json:"id"`
	Route       string `json:"route"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Capacity    int    `json:"capacity"`
	Available   int    `json:"available"`
	PricePerTon int64  `json:"price_per_ton"`
	Contact     string `json:"contact"`
	ServiceDate string `json:"service_date"`
}

// ServiceUpdate supports PATCH-style updates via key presence.
type ServiceUpdate struct {
	Route       *string `json:"route"`
	Departure   *string `json:"departure"`
	Arrival     *string `json:"arrival"`
	Capacity    *int    `json:"capacity"`
	Available   *int    `json:"available"`
	PricePerTon *int64  `json:"price_per_ton"`
	Contact     *string `json:"contact"`
	ServiceDate *string `json:"service_date"`
}
