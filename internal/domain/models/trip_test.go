package models

import "testing"

func TestTripTransitions(t *testing.T) {
	cases := []struct {
		from, to TripStatus
		allowed  bool
	}{
		{TripDraft, TripDispatched, true},
		{TripDraft, TripCancelled, true},
		{TripDraft, TripCompleted, false},
		{TripDispatched, TripCompleted, true},
		{TripDispatched, TripCancelled, true},
		{TripDispatched, TripDraft, false},
		{TripCompleted, TripCancelled, false},
		{TripCompleted, TripDispatched, false},
		{TripCancelled, TripDispatched, false},
		{TripCancelled, TripCompleted, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if TripDraft.Terminal() || TripDispatched.Terminal() {
		t.Fatal("Draft and Dispatched must not be terminal")
	}
	if !TripCompleted.Terminal() || !TripCancelled.Terminal() {
		t.Fatal("Completed and Cancelled must be terminal")
	}
}
