package models

import "time"

// Payment statuses persisted on a booking's payment sub-record.
const (
	PaymentStatusNone    = ""
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
)

// Payment is the gateway-facing sub-record embedded in a booking. Amount is
// in minor units (paise); OrderID references the gateway-side order.
type Payment struct {
	OrderID   string     `json:"order_id,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	Amount    int64      `json:"amount,omitempty"`
	Status    string     `json:"status,omitempty"`
	PaymentID string     `json:"payment_id,omitempty"`
	Signature string     `json:"signature,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}
