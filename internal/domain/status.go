package domain

// BookingStatus represents the current state of a booking in its lifecycle.
// The string literals are part of the API contract; clients filter on them
// verbatim.
type BookingStatus string

const (
	StatusPending               BookingStatus = "Pending"
	StatusConfirmed             BookingStatus = "Confirmed"
	StatusCancelled             BookingStatus = "Cancelled"
	StatusDeclined              BookingStatus = "Declined"
	StatusCancellationRequested BookingStatus = "Cancellation Requested"
	StatusGoodsReceived         BookingStatus = "Goods Received at Origin"
	StatusInTransit             BookingStatus = "In Transit"
	StatusArrived               BookingStatus = "Arrived at Destination"
	StatusReadyForPickup        BookingStatus = "Ready for Pickup"
	StatusOutForDelivery        BookingStatus = "Out for Delivery"
	StatusDelivered             BookingStatus = "Delivered"
)

// validTransitions defines the state machine for booking status transitions.
// The delivery chain is strictly ordered; Cancelled and Cancellation
// Requested are reachable from every non-terminal state. A booking in
// Cancellation Requested may be resolved to Cancelled or restored to the
// status it held before the request (the service checks the recorded prior
// status on restore).
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:        {StatusConfirmed, StatusDeclined, StatusCancelled, StatusCancellationRequested},
	StatusConfirmed:      {StatusGoodsReceived, StatusCancelled, StatusCancellationRequested},
	StatusGoodsReceived:  {StatusInTransit, StatusCancelled, StatusCancellationRequested},
	StatusInTransit:      {StatusArrived, StatusCancelled, StatusCancellationRequested},
	StatusArrived:        {StatusReadyForPickup, StatusCancelled, StatusCancellationRequested},
	StatusReadyForPickup: {StatusOutForDelivery, StatusCancelled, StatusCancellationRequested},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled, StatusCancellationRequested},
	StatusCancellationRequested: {
		StatusCancelled, StatusPending, StatusConfirmed, StatusGoodsReceived,
		StatusInTransit, StatusArrived, StatusReadyForPickup, StatusOutForDelivery,
	},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusDeclined:  {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// ReleasesCapacity reports whether entering this status returns the booked
// tonnage to the service's available capacity.
func (s BookingStatus) ReleasesCapacity() bool {
	return s == StatusCancelled || s == StatusDeclined
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, rejecting values
// outside the closed enum.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", ValidationError{Field: "status", Msg: "unknown booking status: " + s}
	}
	return status, nil
}
