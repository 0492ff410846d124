package enums

import "testing"

func TestOrderStatusTransitionTable(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected allowed=%v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestOrderStatusTerminalStates(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		if !status.IsTerminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
		if next := status.AllowedNextStatuses(); len(next) != 0 {
			t.Fatalf("expected no successors for %s, got %v", status, next)
		}
	}

	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped} {
		if status.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", status)
		}
	}
}

func TestOrderStatusAllowedNextStatusesUnknown(t *testing.T) {
	unknown := OrderStatus("Archived")
	if next := unknown.AllowedNextStatuses(); len(next) != 0 {
		t.Fatalf("unknown status should have an empty successor set, got %v", next)
	}
	if unknown.CanTransitionTo(OrderStatusPending) {
		t.Fatal("unknown status must not transition anywhere")
	}
	if unknown.IsTerminal() {
		t.Fatal("unknown status must not report as terminal")
	}
}

func TestOrderStatusAllowedNextStatusesIsCopy(t *testing.T) {
	next := OrderStatusPending.AllowedNextStatuses()
	if len(next) != 2 {
		t.Fatalf("expected two successors for Pending, got %v", next)
	}
	next[0] = OrderStatusDelivered

	again := OrderStatusPending.AllowedNextStatuses()
	if again[0] != OrderStatusConfirmed {
		t.Fatalf("mutating the returned slice must not affect the table, got %v", again)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Shipped")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("status values are case sensitive, expected error")
	}
}
