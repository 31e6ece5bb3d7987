package domain

import "testing"

func TestDeliveryChainIsOrdered(t *testing.T) {
	chain := []BookingStatus{
		StatusConfirmed,
		StatusGoodsReceived,
		StatusInTransit,
		StatusArrived,
		StatusReadyForPickup,
		StatusOutForDelivery,
		StatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		if !chain[i].CanTransitionTo(chain[i+1]) {
			t.Fatalf("%s should transition to %s", chain[i], chain[i+1])
		}
	}
	// skipping a step is not allowed
	if StatusConfirmed.CanTransitionTo(StatusInTransit) {
		t.Fatalf("Confirmed must not jump straight to In Transit")
	}
	if StatusGoodsReceived.CanTransitionTo(StatusDelivered) {
		t.Fatalf("Goods Received must not jump straight to Delivered")
	}
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	for _, terminal := range []BookingStatus{StatusDelivered, StatusCancelled, StatusDeclined} {
		if !terminal.IsTerminal() {
			t.Fatalf("%s should be terminal", terminal)
		}
		for target := range validTransitions {
			if terminal.CanTransitionTo(target) {
				t.Fatalf("%s should not transition to %s", terminal, target)
			}
		}
	}
}

func TestCancellationReachableFromEveryNonTerminalState(t *testing.T) {
	for status := range validTransitions {
		if status.IsTerminal() || status == StatusCancellationRequested {
			continue
		}
		if !status.CanTransitionTo(StatusCancelled) {
			t.Fatalf("%s should allow direct cancellation", status)
		}
		if !status.CanTransitionTo(StatusCancellationRequested) {
			t.Fatalf("%s should allow a cancellation request", status)
		}
	}
}

func TestCancellationRequestedResolution(t *testing.T) {
	if !StatusCancellationRequested.CanTransitionTo(StatusCancelled) {
		t.Fatalf("cancellation request should resolve to Cancelled")
	}
	if !StatusCancellationRequested.CanTransitionTo(StatusInTransit) {
		t.Fatalf("cancellation request should restore to a prior delivery state")
	}
	if StatusCancellationRequested.CanTransitionTo(StatusDelivered) {
		t.Fatalf("cancellation request must not resolve to Delivered")
	}
	if StatusCancellationRequested.CanTransitionTo(StatusDeclined) {
		t.Fatalf("cancellation request must not resolve to Declined")
	}
}

func TestParseBookingStatus(t *testing.T) {
	got, err := ParseBookingStatus("Goods Received at Origin")
	if err != nil {
		t.Fatalf("expected valid status, got %v", err)
	}
	if got != StatusGoodsReceived {
		t.Fatalf("parsed wrong status: %s", got)
	}

	if _, err := ParseBookingStatus("Shipped"); err == nil {
		t.Fatalf("unknown status should be rejected")
	} else if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReleasesCapacity(t *testing.T) {
	if !StatusCancelled.ReleasesCapacity() || !StatusDeclined.ReleasesCapacity() {
		t.Fatalf("cancelled and declined should release capacity")
	}
	if StatusDelivered.ReleasesCapacity() || StatusConfirmed.ReleasesCapacity() {
		t.Fatalf("delivered/confirmed must not release capacity")
	}
}
