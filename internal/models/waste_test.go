package models

import "testing"

func TestCanTransitionTo(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusScheduled},
		{StatusPending, StatusCancelled},
		{StatusScheduled, StatusCompleted},
		{StatusScheduled, StatusCancelled},
	}
	for _, tr := range allowed {
		if !CanTransitionTo(tr.from, tr.to) {
			t.Errorf("transition %s -> %s should be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to string }{
		{StatusPending, StatusCompleted}, // must be scheduled first
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusScheduled},
		{StatusScheduled, StatusPending}, // no going backwards
		{"", StatusPending},
	}
	for _, tr := range denied {
		if CanTransitionTo(tr.from, tr.to) {
			t.Errorf("transition %s -> %s should be denied", tr.from, tr.to)
		}
	}
}
