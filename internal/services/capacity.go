package services

import (
	"fmt"

	"freightapi/internal/domain"
	"freightapi/internal/domain/models"
	"freightapi/internal/metrics"
	"freightapi/internal/utils"
)

// CapacityLedger enforces 0 <= available <= capacity for every service. The
// invariant lives in the store's conditional updates; the ledger only adds
// validation, logging and metrics around them.
type CapacityLedger struct {
	Services  ServiceStore
	RequestID string
}

// Reserve debits qty tons from the service and returns the service as read
// before the debit (for price and route denormalization).
func (l CapacityLedger) Reserve(serviceID int64, qty int) (models.FreightService, error) {
	if qty <= 0 {
		return models.FreightService{}, domain.ValidationError{Field: "quantity", Msg: "must be positive"}
	}
	svc, err := l.Services.GetByID(serviceID)
	if err != nil {
		return models.FreightService{}, err
	}
	if err := l.Services.ReserveCapacity(serviceID, qty); err != nil {
		if domain.IsCapacity(err) {
			metrics.CapacityRejectionsTotal.Inc()
			utils.LogEvent(l.RequestID, "ledger", "reserve",
				fmt.Sprintf("service_id=%d qty=%d rejected: insufficient capacity", serviceID, qty))
		}
		return models.FreightService{}, err
	}
	svc.Available -= qty
	return svc, nil
}

// Release credits qty tons back to the service, clamped at capacity.
func (l CapacityLedger) Release(serviceID int64, qty int) error {
	if err := l.Services.ReleaseCapacity(serviceID, qty); err != nil {
		utils.LogEvent(l.RequestID, "ledger", "release",
			fmt.Sprintf("service_id=%d qty=%d failed: %v", serviceID, qty, err))
		return err
	}
	return nil
}
